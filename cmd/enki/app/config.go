package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/enkigen/enki/compiler/gen"
)

// FileConfig is the YAML configuration file. Keys mirror the generator
// options; relative paths are resolved against the file's directory.
type FileConfig struct {
	Model               string   `yaml:"model"`
	Target              string   `yaml:"target"`
	TablePrefix         string   `yaml:"tablePrefix"`
	DefaultStringLength int      `yaml:"defaultStringLength"`
	IdentifierLimit     int      `yaml:"identifierLimit"`
	IncludedPackages    string   `yaml:"includedPackages"`
	Plugin              bool     `yaml:"plugin"`
	Views               bool     `yaml:"views"`
	Dialects            []string `yaml:"dialects"`
	ExtentName          string   `yaml:"extentName"`
	Initializer         string   `yaml:"initializer"`
	TransientPackages   []string `yaml:"transientPackages"`
	ImplSuffix          string   `yaml:"implSuffix"`
	StoragePackage      string   `yaml:"storagePackage"`
	Catalog             string   `yaml:"catalog"`
	Workers             int      `yaml:"workers"`
}

// ReadConfig reads the configuration file at path. An empty path yields an
// empty configuration.
func ReadConfig(path string) (*FileConfig, error) {
	fc := &FileConfig{}
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	fc.Model = resolve(dir, fc.Model)
	fc.Target = resolve(dir, fc.Target)
	return fc, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Options returns the generator options for the configuration. Zero values
// keep the generator defaults.
func (fc *FileConfig) Options(log *slog.Logger) []gen.Option {
	opts := []gen.Option{
		gen.WithLogger(log),
		gen.WithTablePrefix(fc.TablePrefix),
		gen.WithPlugin(fc.Plugin),
		gen.WithViews(fc.Views),
		gen.WithExtentName(fc.ExtentName),
		gen.WithInitializer(fc.Initializer),
	}
	if fc.Target != "" {
		opts = append(opts, gen.WithTarget(fc.Target))
	}
	if fc.DefaultStringLength != 0 {
		opts = append(opts, gen.WithDefaultStringLength(fc.DefaultStringLength))
	}
	if fc.IdentifierLimit != 0 {
		opts = append(opts, gen.WithIdentifierLimit(fc.IdentifierLimit))
	}
	if fc.IncludedPackages != "" {
		opts = append(opts, gen.WithIncludedPackages(fc.IncludedPackages))
	}
	if len(fc.Dialects) > 0 {
		opts = append(opts, gen.WithDialects(fc.Dialects...))
	}
	if len(fc.TransientPackages) > 0 {
		opts = append(opts, gen.WithTransientPackages(fc.TransientPackages...))
	}
	if fc.ImplSuffix != "" {
		opts = append(opts, gen.WithImplSuffix(fc.ImplSuffix))
	}
	if fc.StoragePackage != "" {
		opts = append(opts, gen.WithStoragePackage(fc.StoragePackage))
	}
	if fc.Catalog != "" {
		opts = append(opts, gen.WithCatalog(fc.Catalog))
	}
	if fc.Workers != 0 {
		opts = append(opts, gen.WithWorkers(fc.Workers))
	}
	return opts
}
