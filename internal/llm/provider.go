package llm

import (
	"context"
	"strings"
)

// FragmentKind identifies the type of a content fragment
type FragmentKind string

const (
	FragmentText  FragmentKind = "text"
	FragmentImage FragmentKind = "image"
)

// Fragment is one typed unit of model input or output: plain text or an
// image data URI.
type Fragment struct {
	Kind FragmentKind
	Text string // set when Kind == FragmentText
	URI  string // set when Kind == FragmentImage
}

// TextFragment builds a text fragment
func TextFragment(text string) Fragment {
	return Fragment{Kind: FragmentText, Text: text}
}

// ImageFragment builds an image fragment from a data URI
func ImageFragment(uri string) Fragment {
	return Fragment{Kind: FragmentImage, URI: uri}
}

// Reply is what a provider returns. Upstream APIs answer with either plain
// text or a list of typed fragments; Fragments takes precedence when set.
type Reply struct {
	PlainText string
	Fragments []Fragment
}

// Normalize reduces either reply variant to plain text. Text fragments are
// concatenated with newlines; non-text fragments are dropped.
func (r Reply) Normalize() string {
	if r.Fragments == nil {
		return r.PlainText
	}
	parts := make([]string, 0, len(r.Fragments))
	for _, f := range r.Fragments {
		if f.Kind == FragmentText {
			parts = append(parts, f.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// Invoke sends the ordered fragment list to the model and returns its
	// reply. Invoke performs no retries; a failed call surfaces once.
	Invoke(ctx context.Context, fragments []Fragment) (Reply, error)
}
