package gen

import (
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"github.com/enkigen/enki/dialect"
	"github.com/enkigen/enki/metamodel"
)

// Defaults applied by NewConfig.
const (
	DefaultStringLength    = 128
	DefaultIdentifierLimit = 64
	DefaultImplSuffix      = "Impl"
	DefaultStoragePackage  = "org.eigenbase.enki.hibernate.storage"
)

// Config holds the configuration of a generation run.
type Config struct {
	// Target is the directory artifacts are written to.
	Target string
	// TablePrefix is prepended to every table, cache region, index and
	// view name. Leaving it empty limits a schema to one metamodel.
	TablePrefix string
	// DefaultStringLength is the column length of string attributes
	// without a max length tag.
	DefaultStringLength int
	// IdentifierLimit truncates generated table, index and view names.
	// Zero disables truncation.
	IdentifierLimit int
	// IncludedPackages restricts generation to classes contained in one of
	// the package paths. Empty includes everything.
	IncludedPackages [][]string
	// Plugin assumes a base model already supplies the association
	// archetypes, their indexes and the initializer.
	Plugin bool
	// Views enables VC_ and VT_ view generation.
	Views bool
	// Dialects receive index and view DDL, in order.
	Dialects []dialect.Dialect
	// ExtentName is recorded in the properties file. Defaults to the model name.
	ExtentName string
	// Initializer is the generated initializer class name. Derived from
	// the root package when empty, except in plugin mode.
	Initializer string
	// TransientPackages marks classes in packages with these names transient.
	TransientPackages []string
	// ImplSuffix is appended to interface names to name implementations.
	ImplSuffix string
	// StoragePackage is the Java package of the association archetypes.
	StoragePackage string
	// Catalog is the Go package name of the catalog artifact. Empty
	// disables the catalog.
	Catalog string
	// Logger receives progress and warnings. Defaults to slog.Default().
	Logger *slog.Logger
	// Workers bounds the number of artifacts written concurrently.
	Workers int
}

// NewConfig creates a new Config with defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		DefaultStringLength: DefaultStringLength,
		IdentifierLimit:     DefaultIdentifierLimit,
		Dialects:            dialect.All(),
		ImplSuffix:          DefaultImplSuffix,
		StoragePackage:      DefaultStoragePackage,
		Workers:             runtime.GOMAXPROCS(0),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Includes reports whether classes of package p are generated.
func (c *Config) Includes(p *metamodel.Package) bool {
	if len(c.IncludedPackages) == 0 {
		return true
	}
	path := p.Path()
	for _, inc := range c.IncludedPackages {
		if len(inc) <= len(path) && slices.Equal(inc, path[:len(inc)]) {
			return true
		}
	}
	return false
}

// IsTransient reports whether c is tagged transient, directly or through a
// containing package, or lives in one of the configured transient packages.
func (c *Config) IsTransient(cl *metamodel.Classifier) bool {
	if cl.Tags.Bool(metamodel.TagTransient) {
		return true
	}
	for p := cl.Container; p != nil; p = p.Container {
		if p.Tags.Bool(metamodel.TagTransient) {
			return true
		}
		if slices.Contains(c.TransientPackages, p.Name) {
			return true
		}
	}
	return false
}

// generated reports whether mappings are emitted for cl.
func (c *Config) generated(cl *metamodel.Classifier) bool {
	return c.Includes(cl.Container) && !c.IsTransient(cl)
}

// parsePackagePaths parses a comma separated list of slash separated
// package paths.
func parsePackagePaths(s string) ([][]string, bool) {
	var out [][]string
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		path := strings.Split(strings.Trim(entry, "/"), "/")
		if slices.Contains(path, "") {
			return nil, false
		}
		out = append(out, path)
	}
	return out, true
}
