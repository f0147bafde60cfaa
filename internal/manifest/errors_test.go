package manifest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	engineErr := errors.New("XML syntax error on line 1: unexpected EOF")

	t.Run("with path", func(t *testing.T) {
		err := NewParseError("/work/tiapp.xml", engineErr)

		assert.Equal(t, "malformed tiapp.xml: /work/tiapp.xml: XML syntax error on line 1: unexpected EOF", err.Error())
		assert.ErrorIs(t, err, ErrParse)
		assert.ErrorIs(t, err, engineErr)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("without path", func(t *testing.T) {
		err := NewParseError("", engineErr)
		assert.Equal(t, "malformed tiapp.xml: XML syntax error on line 1: unexpected EOF", err.Error())
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", NewParseError("x", engineErr))

		var parseErr *ParseError
		assert.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "x", parseErr.Path)
		assert.ErrorIs(t, err, ErrParse)
	})
}
