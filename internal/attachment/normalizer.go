package attachment

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aldisaputra17/chatbot-backend/internal/domain"
	"github.com/aldisaputra17/chatbot-backend/internal/llm"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// Normalizer converts inbound attachments into model-ready fragments plus
// redacted records for persistence.
type Normalizer struct{}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize builds the ordered model-input fragments for a message and its
// attachments, and the redacted attachment records to persist. A non-empty
// message becomes the first fragment. Attachment failures degrade to inline
// error text and are logged; they never abort the request. Every input
// attachment produces a redacted record, whether or not normalization
// succeeded for it.
func (n *Normalizer) Normalize(message string, attachments []domain.Attachment) ([]llm.Fragment, []domain.Attachment) {
	var fragments []llm.Fragment
	if message != "" {
		fragments = append(fragments, llm.TextFragment(message))
	}

	var redacted []domain.Attachment
	for _, att := range attachments {
		switch {
		case att.ContentType == "application/pdf":
			text, err := extractPDFText(att.Data)
			if err != nil {
				log.Warn().Err(err).Str("filename", att.Filename).Msg("Failed to read PDF attachment")
				fragments = append(fragments, llm.TextFragment(fmt.Sprintf("[Error reading %s]", att.Filename)))
			} else {
				fragments = append(fragments, llm.TextFragment(fmt.Sprintf("[Content from PDF %s]: %s", att.Filename, text)))
			}

		case strings.HasPrefix(att.ContentType, "image/"):
			uri := fmt.Sprintf("data:%s;base64,%s", att.ContentType, att.Data)
			fragments = append(fragments, llm.ImageFragment(uri))

		default:
			log.Warn().Str("filename", att.Filename).Str("content_type", att.ContentType).Msg("Unsupported attachment content type")
			fragments = append(fragments, llm.TextFragment(fmt.Sprintf("[Unsupported attachment %s (%s)]", att.Filename, att.ContentType)))
		}

		redacted = append(redacted, att.Redacted())
	}

	return fragments, redacted
}

// extractPDFText decodes a base64 PDF payload and extracts text per page,
// joined with newlines.
func extractPDFText(encoded string) (text string, err error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	// The pdf package panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}
