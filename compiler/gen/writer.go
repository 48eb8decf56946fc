package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Writer writes generated files to a directory. Go sources are formatted
// with goimports in parallel before anything touches the disk, so a file
// that fails to format leaves the directory as it was.
type Writer struct {
	dir     string
	workers int
}

// WriterMetrics tracks one write.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a writer for dir. A non-positive workers count uses
// GOMAXPROCS.
func NewWriter(dir string, workers int) *Writer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Writer{dir: dir, workers: workers}
}

// Write formats and writes the files.
func (w *Writer) Write(ctx context.Context, files []File) (*WriterMetrics, error) {
	formatted, err := w.formatAll(ctx, files)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return w.writeAll(ctx, files, formatted)
}

// formatAll formats the Go files in parallel. Other files pass through.
func (w *Writer) formatAll(ctx context.Context, files []File) ([][]byte, error) {
	formatted := make([][]byte, len(files))
	eg, fctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for i, f := range files {
		eg.Go(func() error {
			if err := fctx.Err(); err != nil {
				return err
			}
			if !f.IsGo() {
				formatted[i] = f.Content
				return nil
			}
			out, err := w.format(f)
			if err != nil {
				return err
			}
			formatted[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return formatted, nil
}

// writeAll writes the formatted contents to disk.
func (w *Writer) writeAll(ctx context.Context, files []File, formatted [][]byte) (*WriterMetrics, error) {
	var (
		mu      sync.Mutex
		metrics = &WriterMetrics{}
	)
	eg, wctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for i, f := range files {
		eg.Go(func() error {
			if err := wctx.Err(); err != nil {
				return err
			}
			fullPath := filepath.Join(w.dir, f.Name)
			if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
				return fmt.Errorf("create directory for %s: %w", f.Name, err)
			}
			if err := os.WriteFile(fullPath, formatted[i], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", f.Name, err)
			}
			mu.Lock()
			metrics.FilesWritten++
			metrics.TotalBytes += int64(len(formatted[i]))
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return metrics, nil
}

// format runs goimports over a Go file. On failure the unformatted source
// is written next to the target as <name>.error.
func (w *Writer) format(f File) ([]byte, error) {
	fullPath := filepath.Join(w.dir, f.Name)
	out, err := imports.Process(fullPath, f.Content, nil)
	if err != nil {
		debugPath := fullPath + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, f.Content, 0o644)
		return nil, NewGenerationError("format", f.Name, fmt.Sprintf("unformatted written to %s", debugPath), err)
	}
	return out, nil
}
