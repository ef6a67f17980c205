// Package receipt renders booking receipts as single page PDF documents.
package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/summary"

	"github.com/go-pdf/fpdf"
)

const (
	margin      = 20.0
	rowHeight   = 10.0
	labelWidth  = 60.0
	valueWidth  = 110.0
	codeSize    = 35.0
	coreFont    = "Helvetica"
	utf8Font    = "Receipt"
	headerLabel = "Field"
	headerValue = "Details"
)

var ErrNoBooking = errors.New("receipt requires a booking id")

type Renderer interface {
	Render(booking model.Booking, fields []summary.Field) ([]byte, error)
}

// Font holds TrueType data per style. Bold and Italic fall back to Regular when empty.
type Font struct {
	Regular []byte
	Bold    []byte
	Italic  []byte
}

type Option func(*pdfRenderer)

// WithUTF8Font embeds font so any script prints as written.
// Without it the built-in Helvetica is used and characters outside cp1252 print as '.'.
func WithUTF8Font(font Font) Option {
	return func(r *pdfRenderer) {
		if len(font.Regular) > 0 {
			r.font = &font
		}
	}
}

type pdfRenderer struct {
	hotelName string
	font      *Font
}

func New(hotelName string, opts ...Option) Renderer {
	r := &pdfRenderer{hotelName: hotelName}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// typeface registers the configured font and returns its family with a text encoder for it.
func (r *pdfRenderer) typeface(pdf *fpdf.Fpdf) (string, func(string) string) {
	if r.font == nil {
		return coreFont, pdf.UnicodeTranslatorFromDescriptor("")
	}

	styles := []struct {
		name string
		data []byte
	}{{"", r.font.Regular}, {"B", r.font.Bold}, {"I", r.font.Italic}}

	for _, style := range styles {
		data := style.data
		if len(data) == 0 {
			data = r.font.Regular
		}

		pdf.AddUTF8FontFromBytes(utf8Font, style.name, data)
	}

	return utf8Font, func(s string) string { return s }
}

func FileName(bookingID string) string {
	return fmt.Sprintf("receipt-%s.pdf", bookingID)
}

// Render lays out the title block, one table row per field, a reserved code area and a closing line.
// Output depends only on its inputs: document dates are pinned to the booking's creation time.
func (r *pdfRenderer) Render(booking model.Booking, fields []summary.Field) ([]byte, error) {
	if booking.ID == "" {
		return nil, ErrNoBooking
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCompression(false)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(booking.CreatedAt)
	pdf.SetModificationDate(booking.CreatedAt)
	pdf.SetTitle("Booking Receipt "+booking.ID, true)
	pdf.SetAuthor(r.hotelName, true)

	fontFamily, tr := r.typeface(pdf)

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 12, tr(r.hotelName), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 14)
	pdf.CellFormat(0, 8, tr("Booking Receipt"), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, 6, tr("Receipt No: "+booking.ID), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont(fontFamily, "B", 11)
	pdf.SetFillColor(74, 144, 226)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(labelWidth, rowHeight, tr(headerLabel), "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueWidth, rowHeight, tr(headerValue), "1", 1, "L", true, 0, "")

	pdf.SetFont(fontFamily, "", 11)
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFillColor(240, 248, 255)

	for i, field := range fields {
		fill := i%2 == 0
		pdf.CellFormat(labelWidth, rowHeight, tr(field.Label), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(valueWidth, rowHeight, tr(field.Value), "1", 1, "L", fill, 0, "")
	}

	pdf.Ln(10)

	// Reserved for a scannable code.
	pageWidth, _ := pdf.GetPageSize()
	pdf.Rect((pageWidth-codeSize)/2, pdf.GetY(), codeSize, codeSize, "D")
	pdf.SetY(pdf.GetY() + codeSize + 8)

	pdf.SetFont(fontFamily, "I", 12)
	pdf.CellFormat(0, 8, tr("Thank you for choosing "+r.hotelName+"!"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}

	return buf.Bytes(), nil
}
