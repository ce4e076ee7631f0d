package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/logger"
)

// ErrLocked is returned when another process is exporting to the same path.
var ErrLocked = errors.New("corpus output is locked by another process")

// lockRetry is how often a held lock is polled while waiting.
const lockRetry = 50 * time.Millisecond

// fileWriter writes JSON or YAML payloads atomically via rename.
type fileWriter struct {
	path   string
	format domain.CorpusFormat
}

func newFileWriter(path string, format domain.CorpusFormat) *fileWriter {
	return &fileWriter{path: path, format: format}
}

func (w *fileWriter) Write(ctx context.Context, works []domain.Work) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if w.format == domain.CorpusFormatYAML {
		data, err = EncodeYAML(works)
	} else {
		data, err = EncodeJSON(works)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), "."+filepath.Base(w.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return os.Rename(tmp.Name(), w.path)
}

func (w *fileWriter) Close() error {
	return nil
}

// lockedWriter serialises writers of one output path across processes with
// an advisory lock on "<path>.lock".
type lockedWriter struct {
	inner driven.CorpusWriter
	lock  *flock.Flock
}

func newLockedWriter(path string, inner driven.CorpusWriter) *lockedWriter {
	return &lockedWriter{inner: inner, lock: flock.New(path + ".lock")}
}

// Write waits for the lock until ctx is done, then writes.
func (w *lockedWriter) Write(ctx context.Context, works []domain.Work) error {
	locked, err := w.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s", ErrLocked, w.lock.Path())
		}
		return fmt.Errorf("lock %s: %w", w.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, w.lock.Path())
	}
	defer func() {
		if err := w.lock.Unlock(); err != nil {
			logger.Warn("Releasing %s: %v", w.lock.Path(), err)
		}
	}()

	logger.Debug("Acquired %s", w.lock.Path())
	return w.inner.Write(ctx, works)
}

// Close closes the underlying writer.
func (w *lockedWriter) Close() error {
	return w.inner.Close()
}
