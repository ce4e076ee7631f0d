package corpus

import (
	"context"
	_ "embed"

	"github.com/custodia-labs/litarchive/internal/core/domain"
	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
)

//go:embed sample.json
var sampleJSON []byte

// Ensure SampleLoader implements the interface.
var _ driven.CorpusLoader = (*SampleLoader)(nil)

// SampleLoader serves the corpus bundled with the binary. It is used when
// no corpus path is configured.
type SampleLoader struct{}

// NewSampleLoader creates a loader for the bundled corpus.
func NewSampleLoader() *SampleLoader {
	return &SampleLoader{}
}

// Load decodes the bundled corpus.
func (l *SampleLoader) Load(ctx context.Context) ([]domain.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DecodeJSON(sampleJSON)
}

// Format returns the payload format.
func (l *SampleLoader) Format() domain.CorpusFormat {
	return domain.CorpusFormatSample
}

// Source describes the bundled corpus.
func (l *SampleLoader) Source() string {
	return "bundled sample"
}
