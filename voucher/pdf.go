package voucher

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pageMarginLeft = 20.0
	lineHeight     = 8.0
	startY         = 30.0
)

// RenderPDF writes the document to a single-page A4 PDF. The PDF creation
// date is pinned to the document's date, so rendering the same order
// twice produces identical bytes.
func RenderPDF(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(doc.CreatedAt)
	pdf.SetModificationDate(doc.CreatedAt)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	y := startY
	for _, line := range doc.Lines {
		if line.Text != "" {
			pdf.SetFont("Helvetica", "", line.Size)
			pdf.Text(pageMarginLeft, y, tr(line.Text))
		}
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render voucher pdf: %w", err)
	}
	return buf.Bytes(), nil
}
