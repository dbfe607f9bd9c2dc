package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	t.Run("valid png URI", func(t *testing.T) {
		format, data, err := decodeDataURI("data:image/png;base64,aGVsbG8=")
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("missing comma", func(t *testing.T) {
		_, _, err := decodeDataURI("data:image/png;base64")
		assert.Error(t, err)
	})

	t.Run("bad base64 payload", func(t *testing.T) {
		_, _, err := decodeDataURI("data:image/png;base64,%%%")
		assert.Error(t, err)
	})
}
