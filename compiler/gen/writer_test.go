package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enkigen/enki/dialect/hbm"
)

func TestWriter(t *testing.T) {
	arts := emitModel(t, sampleModel(t), testConfig(t, WithCatalog("catalog")))
	dir := filepath.Join(t.TempDir(), "out")

	w := NewWriter(dir).WithWorkers(2)
	require.NoError(t, w.Write(context.Background(), arts))

	for _, name := range arts.Files() {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	mapping, err := os.ReadFile(filepath.Join(dir, MappingFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(mapping), hbm.Header))
	assert.Contains(t, string(mapping), `<class name="org.example.shop.BoxImpl" table="`+"`ENKI_Shop_Box`"+`"`)

	want, err := hbm.Marshal(arts.Mapping)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(mapping))

	props, err := os.ReadFile(filepath.Join(dir, PropertiesFile))
	require.NoError(t, err)
	assert.Contains(t, string(props), "enki.topLevelPackage=org.example.shop\n")

	catalog, err := os.ReadFile(filepath.Join(dir, "catalog", CatalogFile))
	require.NoError(t, err)
	assert.Contains(t, string(catalog), "package catalog")

	m := w.Metrics()
	assert.Equal(t, 4, m.FilesWritten)
	var total int64
	for _, name := range arts.Files() {
		fi, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		total += fi.Size()
	}
	assert.Equal(t, total, m.TotalBytes)
}

func TestWriterErrors(t *testing.T) {
	arts := emitModel(t, sampleModel(t), testConfig(t))

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Write(ctx, arts, t.TempDir())
		assert.ErrorIs(t, err, context.Canceled)
	})
	t.Run("output is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		err := Write(context.Background(), arts, filepath.Join(file, "out"))
		require.Error(t, err)
		var gerr *GenerationError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, PhaseWriting.String(), gerr.Phase)
	})
	t.Run("artifact path is a directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, PropertiesFile), 0o755))
		err := Write(context.Background(), arts, dir)
		require.Error(t, err)
		var gerr *GenerationError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, PropertiesFile, gerr.File)
	})
}
