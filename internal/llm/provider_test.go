package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplyNormalize(t *testing.T) {
	t.Run("plain text passes through", func(t *testing.T) {
		r := Reply{PlainText: "hello"}
		assert.Equal(t, "hello", r.Normalize())
	})

	t.Run("fragments join text entries with newlines", func(t *testing.T) {
		r := Reply{Fragments: []Fragment{
			TextFragment("one"),
			TextFragment("two"),
		}}
		assert.Equal(t, "one\ntwo", r.Normalize())
	})

	t.Run("non-text fragments are dropped", func(t *testing.T) {
		r := Reply{Fragments: []Fragment{
			TextFragment("keep"),
			ImageFragment("data:image/png;base64,xx"),
		}}
		assert.Equal(t, "keep", r.Normalize())
	})

	t.Run("fragments take precedence over plain text", func(t *testing.T) {
		r := Reply{PlainText: "ignored", Fragments: []Fragment{TextFragment("used")}}
		assert.Equal(t, "used", r.Normalize())
	})

	t.Run("empty fragment list yields empty text", func(t *testing.T) {
		r := Reply{PlainText: "ignored", Fragments: []Fragment{}}
		assert.Equal(t, "", r.Normalize())
	})
}
