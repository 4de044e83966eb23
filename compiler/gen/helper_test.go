package gen

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/enkigen/enki/compiler/load"
	"github.com/enkigen/enki/metamodel"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// testConfig returns a config writing into a temporary directory with the
// ENKI_ table prefix.
func testConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	base := []Option{
		WithTarget(t.TempDir()),
		WithTablePrefix("ENKI_"),
		WithLogger(discard),
	}
	cfg, err := NewConfig(append(base, opts...)...)
	require.NoError(t, err)
	return cfg
}

// sampleModel loads the Sample model shared with the loader tests.
func sampleModel(t *testing.T) *metamodel.Model {
	t.Helper()
	m, err := load.LoadFile(filepath.Join("..", "load", "testdata", "sample.yaml"))
	require.NoError(t, err)
	return m
}

// buildModel builds a model from a YAML document.
func buildModel(t *testing.T, src string) *metamodel.Model {
	t.Helper()
	doc, err := load.Decode([]byte(src), load.FormatYAML)
	require.NoError(t, err)
	m, err := load.Build(doc)
	require.NoError(t, err)
	return m
}

func emitModel(t *testing.T, m *metamodel.Model, cfg *Config) *Artifacts {
	t.Helper()
	md, err := Collect(m, cfg)
	require.NoError(t, err)
	arts, err := Emit(m, md, cfg)
	require.NoError(t, err)
	return arts
}

func lookup(t *testing.T, m *metamodel.Model, name string) *metamodel.Classifier {
	t.Helper()
	c := m.Lookup(name)
	require.NotNil(t, c, name)
	return c
}

func attribute(t *testing.T, c *metamodel.Classifier, name string) *metamodel.Attribute {
	t.Helper()
	for _, a := range c.AllAttributes() {
		if a.Name == name {
			return a
		}
	}
	t.Fatalf("no attribute %s on %s", name, c.QualifiedName())
	return nil
}

func association(t *testing.T, m *metamodel.Model, name string) *metamodel.Association {
	t.Helper()
	for _, a := range m.Associations() {
		if a.Name == name {
			return a
		}
	}
	t.Fatalf("no association %s", name)
	return nil
}
