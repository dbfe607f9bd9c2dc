package attachment

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/aldisaputra17/chatbot-backend/internal/domain"
	"github.com/aldisaputra17/chatbot-backend/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onePagePDF assembles a minimal single-page PDF drawing the given text.
// Object offsets in the xref table are computed from the actual byte
// positions, so the fixture stays well-formed whatever the text.
func onePagePDF(text string) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 6)

	buf.WriteString("%PDF-1.4\n")
	writeObj := func(n int, body string) {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}

	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>")
	writeObj(4, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj(5, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))

	xref := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)

	return buf.Bytes()
}

func TestNormalize_MessageOnly(t *testing.T) {
	n := NewNormalizer()

	fragments, redacted := n.Normalize("Hello", nil)

	require.Len(t, fragments, 1)
	assert.Equal(t, llm.FragmentText, fragments[0].Kind)
	assert.Equal(t, "Hello", fragments[0].Text)
	assert.Empty(t, redacted)
}

func TestNormalize_EmptyMessageEmitsNoTextFragment(t *testing.T) {
	n := NewNormalizer()

	fragments, _ := n.Normalize("", []domain.Attachment{
		{Filename: "pic.png", ContentType: "image/png", Data: "aGVsbG8="},
	})

	require.Len(t, fragments, 1)
	assert.Equal(t, llm.FragmentImage, fragments[0].Kind)
}

func TestNormalize_ImageBecomesDataURI(t *testing.T) {
	n := NewNormalizer()

	fragments, redacted := n.Normalize("look", []domain.Attachment{
		{Filename: "pic.jpg", ContentType: "image/jpeg", Data: "aGVsbG8="},
	})

	require.Len(t, fragments, 2)
	assert.Equal(t, "look", fragments[0].Text)
	assert.Equal(t, llm.FragmentImage, fragments[1].Kind)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", fragments[1].URI)

	require.Len(t, redacted, 1)
	assert.Equal(t, "pic.jpg", redacted[0].Filename)
	assert.Equal(t, "image/jpeg", redacted[0].ContentType)
	assert.Equal(t, domain.RedactedPayload, redacted[0].Data)
}

func TestNormalize_PDFTextExtraction(t *testing.T) {
	n := NewNormalizer()

	payload := base64.StdEncoding.EncodeToString(onePagePDF("Invoice #42"))
	fragments, redacted := n.Normalize("", []domain.Attachment{
		{Filename: "invoice.pdf", ContentType: "application/pdf", Data: payload},
	})

	require.Len(t, fragments, 1)
	assert.Equal(t, llm.FragmentText, fragments[0].Kind)
	assert.True(t, strings.HasPrefix(fragments[0].Text, "[Content from PDF invoice.pdf]: "))
	assert.Contains(t, fragments[0].Text, "Invoice #42")

	require.Len(t, redacted, 1)
	assert.Equal(t, domain.RedactedPayload, redacted[0].Data)
}

func TestNormalize_PDFDecodeFailureDegrades(t *testing.T) {
	n := NewNormalizer()

	fragments, redacted := n.Normalize("", []domain.Attachment{
		{Filename: "doc.pdf", ContentType: "application/pdf", Data: "not-base64!!!"},
	})

	require.Len(t, fragments, 1)
	assert.Equal(t, llm.FragmentText, fragments[0].Kind)
	assert.Equal(t, "[Error reading doc.pdf]", fragments[0].Text)

	// The redacted record is still saved on failure
	require.Len(t, redacted, 1)
	assert.Equal(t, domain.RedactedPayload, redacted[0].Data)
}

func TestNormalize_MalformedPDFDegrades(t *testing.T) {
	n := NewNormalizer()

	garbage := base64.StdEncoding.EncodeToString([]byte("this is not a pdf"))
	fragments, _ := n.Normalize("", []domain.Attachment{
		{Filename: "broken.pdf", ContentType: "application/pdf", Data: garbage},
	})

	require.Len(t, fragments, 1)
	assert.Equal(t, "[Error reading broken.pdf]", fragments[0].Text)
}

func TestNormalize_UnknownTypeEmitsWarningFragment(t *testing.T) {
	n := NewNormalizer()

	fragments, redacted := n.Normalize("", []domain.Attachment{
		{Filename: "data.csv", ContentType: "text/csv", Data: "YSxi"},
	})

	require.Len(t, fragments, 1)
	assert.Equal(t, "[Unsupported attachment data.csv (text/csv)]", fragments[0].Text)

	require.Len(t, redacted, 1)
	assert.Equal(t, domain.RedactedPayload, redacted[0].Data)
}

func TestNormalize_PreservesInputOrder(t *testing.T) {
	n := NewNormalizer()

	fragments, redacted := n.Normalize("intro", []domain.Attachment{
		{Filename: "a.png", ContentType: "image/png", Data: "YQ=="},
		{Filename: "b.csv", ContentType: "text/csv", Data: "Yg=="},
		{Filename: "c.gif", ContentType: "image/gif", Data: "Yw=="},
	})

	require.Len(t, fragments, 4)
	assert.Equal(t, "intro", fragments[0].Text)
	assert.Equal(t, "data:image/png;base64,YQ==", fragments[1].URI)
	assert.Equal(t, "[Unsupported attachment b.csv (text/csv)]", fragments[2].Text)
	assert.Equal(t, "data:image/gif;base64,Yw==", fragments[3].URI)

	require.Len(t, redacted, 3)
	assert.Equal(t, "a.png", redacted[0].Filename)
	assert.Equal(t, "b.csv", redacted[1].Filename)
	assert.Equal(t, "c.gif", redacted[2].Filename)
}
