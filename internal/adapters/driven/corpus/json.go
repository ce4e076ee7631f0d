package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/logger"
)

// Ensure JSONLoader implements the interface.
var _ driven.CorpusLoader = (*JSONLoader)(nil)

// JSONLoader reads works from a JSON file.
type JSONLoader struct {
	path string
}

// NewJSONLoader creates a loader for the JSON file at path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{path: path}
}

// Load reads and decodes the file.
func (l *JSONLoader) Load(ctx context.Context) ([]domain.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}
	works, err := DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", l.path, err)
	}
	logger.Debug("Decoded %d works from %s", len(works), l.path)
	return works, nil
}

// Format returns the payload format.
func (l *JSONLoader) Format() domain.CorpusFormat {
	return domain.CorpusFormatJSON
}

// Source returns the file path.
func (l *JSONLoader) Source() string {
	return l.path
}

// DecodeJSON decodes a bare list or a processed envelope.
func DecodeJSON(data []byte) ([]domain.Work, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrInvalidCorpus)
	}

	switch trimmed[0] {
	case '[':
		var records []record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCorpus, err)
		}
		return toWorks(records), nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCorpus, err)
		}
		if env.GeneratedDate != "" {
			logger.Debug("Envelope generated %s", env.GeneratedDate)
		}
		return toWorks(env.Works), nil
	default:
		return nil, fmt.Errorf("%w: expected a JSON array or object", domain.ErrInvalidCorpus)
	}
}

// EncodeJSON writes works as an indented bare list, the shape DecodeJSON
// reads back unchanged.
func EncodeJSON(works []domain.Work) ([]byte, error) {
	return json.MarshalIndent(toRecords(works), "", "  ")
}
