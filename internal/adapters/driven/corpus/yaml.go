package corpus

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/logger"
)

// Ensure YAMLLoader implements the interface.
var _ driven.CorpusLoader = (*YAMLLoader)(nil)

// YAMLLoader reads works from a YAML file.
type YAMLLoader struct {
	path string
}

// NewYAMLLoader creates a loader for the YAML file at path.
func NewYAMLLoader(path string) *YAMLLoader {
	return &YAMLLoader{path: path}
}

// Load reads and decodes the file.
func (l *YAMLLoader) Load(ctx context.Context) ([]domain.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}
	works, err := DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", l.path, err)
	}
	logger.Debug("Decoded %d works from %s", len(works), l.path)
	return works, nil
}

// Format returns the payload format.
func (l *YAMLLoader) Format() domain.CorpusFormat {
	return domain.CorpusFormatYAML
}

// Source returns the file path.
func (l *YAMLLoader) Source() string {
	return l.path
}

// DecodeYAML decodes a bare list or a processed envelope.
func DecodeYAML(data []byte) ([]domain.Work, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCorpus, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrInvalidCorpus)
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var records []record
		if err := root.Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCorpus, err)
		}
		return toWorks(records), nil
	case yaml.MappingNode:
		var env envelope
		if err := root.Decode(&env); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCorpus, err)
		}
		if env.GeneratedDate != "" {
			logger.Debug("Envelope generated %s", env.GeneratedDate)
		}
		return toWorks(env.Works), nil
	default:
		return nil, fmt.Errorf("%w: expected a YAML sequence or mapping", domain.ErrInvalidCorpus)
	}
}

// EncodeYAML writes works as a bare list.
func EncodeYAML(works []domain.Work) ([]byte, error) {
	return yaml.Marshal(toRecords(works))
}
