package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrInvalidCorpus,
		ErrUnsupportedFormat,
		ErrCorpusUnavailable,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestCorpusError(t *testing.T) {
	err := &CorpusError{Index: 3, Field: "author.name", Reason: "is empty"}

	assert.Equal(t, "invalid corpus: work 3: author.name is empty", err.Error())
	assert.ErrorIs(t, err, ErrInvalidCorpus)

	wrapped := fmt.Errorf("load: %w", err)
	var ce *CorpusError
	assert.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, 3, ce.Index)
}

func TestSettingsError(t *testing.T) {
	err := &SettingsError{Key: "mcp.port", Reason: "out of range"}

	assert.Equal(t, "invalid setting mcp.port: out of range", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
}
