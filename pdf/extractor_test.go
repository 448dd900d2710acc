package pdf_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/kmitrowski/paperparse"
	"github.com/kmitrowski/paperparse/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements paperparse.TextExtractor at compile time.
var _ paperparse.TextExtractor = (*pdf.Extractor)(nil)

// buildPDF assembles a minimal single-font PDF with one page per entry in
// pageTexts, computing the cross-reference table from the real byte offsets.
func buildPDF(t *testing.T, pageTexts ...string) []byte {
	t.Helper()

	n := len(pageTexts)

	var kids bytes.Buffer
	for i := 0; i < n; i++ {
		if i > 0 {
			kids.WriteByte(' ')
		}
		fmt.Fprintf(&kids, "%d 0 R", 4+2*i)
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	for i, text := range pageTexts {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return buf.Bytes()
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts body and first-line title", func(t *testing.T) {
		t.Parallel()

		data := buildPDF(t, "Deep Learning Survey")

		fields, err := pdf.NewExtractor().Extract(data)
		require.NoError(t, err)

		assert.Equal(t, "Deep Learning Survey", fields.Title)
		assert.Contains(t, fields.Body, "Deep Learning Survey")
		assert.Empty(t, fields.Abstract)
		assert.True(t, fields.HasContent())
	})

	t.Run("concatenates pages in order", func(t *testing.T) {
		t.Parallel()

		data := buildPDF(t, "Page one text", "Page two text")

		fields, err := pdf.NewExtractor().Extract(data)
		require.NoError(t, err)

		assert.Equal(t, "Page one text", fields.Title)
		one := bytes.Index([]byte(fields.Body), []byte("Page one text"))
		two := bytes.Index([]byte(fields.Body), []byte("Page two text"))
		require.GreaterOrEqual(t, one, 0)
		require.GreaterOrEqual(t, two, 0)
		assert.Less(t, one, two)
	})

	t.Run("empty payload is EINVALID", func(t *testing.T) {
		t.Parallel()

		_, err := pdf.NewExtractor().Extract(nil)
		require.Error(t, err)
		assert.Equal(t, paperparse.EINVALID, paperparse.ErrorCode(err))
	})

	t.Run("garbage bytes are EINVALID", func(t *testing.T) {
		t.Parallel()

		_, err := pdf.NewExtractor().Extract([]byte("definitely not a pdf"))
		require.Error(t, err)
		assert.Equal(t, paperparse.EINVALID, paperparse.ErrorCode(err))
	})

	t.Run("truncated pdf is EINVALID", func(t *testing.T) {
		t.Parallel()

		data := buildPDF(t, "Deep Learning Survey")

		_, err := pdf.NewExtractor().Extract(data[:len(data)/2])
		require.Error(t, err)
		assert.Equal(t, paperparse.EINVALID, paperparse.ErrorCode(err))
	})
}
