package corpus

import (
	"fmt"

	"github.com/custodia-labs/litarchive/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
)

// Open returns the loader for path, chosen by file extension.
// An empty path selects the bundled sample.
func Open(path string) (driven.CorpusLoader, error) {
	format, err := domain.FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}

	switch format {
	case domain.CorpusFormatJSON:
		return NewJSONLoader(path), nil
	case domain.CorpusFormatYAML:
		return NewYAMLLoader(path), nil
	case domain.CorpusFormatSQLite:
		return sqlite.NewCorpusLoader(path), nil
	default:
		return NewSampleLoader(), nil
	}
}

// NewWriter returns a locked writer for path, chosen by file extension.
func NewWriter(path string) (driven.CorpusWriter, error) {
	format, err := domain.FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", path, err)
	}

	var inner driven.CorpusWriter
	switch format {
	case domain.CorpusFormatJSON, domain.CorpusFormatYAML:
		inner = newFileWriter(path, format)
	case domain.CorpusFormatSQLite:
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", path, err)
		}
		inner = store
	default:
		return nil, fmt.Errorf("export: %w: an output path is required", domain.ErrInvalidInput)
	}
	return newLockedWriter(path, inner), nil
}
