package gen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/enkigen/enki/dialect/hbm"
)

// Artifact file names.
const (
	MappingFile    = "mapping.hbm.xml"
	IndexesFile    = "indexes.hbm.xml"
	PropertiesFile = "enki.properties"
	CatalogFile    = "catalog.go"
)

// Writer writes artifacts to a directory, one file per worker.
type Writer struct {
	outDir  string
	workers int

	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks what a Writer produced.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter returns a writer into outDir.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the write metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.metrics
}

// artifactFile is one output file and how to render it.
type artifactFile struct {
	name   string // relative to the output directory
	render func(io.Writer) error
}

// Files returns the relative paths of the artifact files, in write order.
func (a *Artifacts) Files() []string {
	files := a.files()
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	return names
}

func (a *Artifacts) files() []artifactFile {
	files := []artifactFile{
		{name: MappingFile, render: mappingRenderer(a.Mapping)},
		{name: IndexesFile, render: mappingRenderer(a.Indexes)},
		{name: PropertiesFile, render: func(w io.Writer) error {
			_, err := a.Properties.WriteTo(w)
			return err
		}},
	}
	if a.Catalog != nil {
		files = append(files, artifactFile{
			name:   filepath.Join(a.CatalogPackage, CatalogFile),
			render: a.Catalog.Render,
		})
	}
	return files
}

func mappingRenderer(m *hbm.Mapping) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := m.WriteTo(w)
		return err
	}
}

// Write writes every artifact file in parallel.
func (w *Writer) Write(ctx context.Context, arts *Artifacts) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return NewGenerationError(PhaseWriting.String(), w.outDir, "create output directory", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range arts.files() {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				if err := w.writeFile(f); err != nil {
					return NewGenerationError(PhaseWriting.String(), f.name, "", err)
				}
				return nil
			}
		})
	}
	return eg.Wait()
}

// writeFile renders f and writes it. The file is closed on every path.
func (w *Writer) writeFile(f artifactFile) (err error) {
	var buf bytes.Buffer
	if err := f.render(&buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	path := filepath.Join(w.outDir, f.name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	n, err := buf.WriteTo(out)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += n
	w.mu.Unlock()
	return nil
}

// Write writes arts into dir.
func Write(ctx context.Context, arts *Artifacts, dir string) error {
	return NewWriter(dir).Write(ctx, arts)
}
