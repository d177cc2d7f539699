// Package pdfdoc merender dokumen TOR dan LPJ program TJSL dengan layout tetap.
package pdfdoc

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pageMarginMM = 15.0
	lineH        = 6.0
	labelW       = 55.0
)

type doc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDoc(title string) *doc {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.SetTitle(title, true)
	pdf.SetCreator("tjsl_backend", true)
	d := &doc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Halaman %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return d
}

func (d *doc) heading(text string) {
	d.pdf.SetFont("Helvetica", "B", 15)
	d.pdf.MultiCell(0, 8, d.tr(text), "", "C", false)
	d.pdf.Ln(2)
}

func (d *doc) section(text string) {
	d.pdf.Ln(3)
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.SetFillColor(230, 236, 245)
	d.pdf.CellFormat(0, 7, d.tr(text), "", 1, "L", true, 0, "")
	d.pdf.Ln(1)
}

func (d *doc) field(label, value string) {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	d.pdf.SetFont("Helvetica", "B", 10)
	x, y := d.pdf.GetX(), d.pdf.GetY()
	d.pdf.MultiCell(labelW, lineH, d.tr(label), "", "L", false)
	d.pdf.SetXY(x+labelW, y)
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(0, lineH, d.tr(value), "", "L", false)
}

func (d *doc) paragraph(text string) {
	if strings.TrimSpace(text) == "" {
		text = "-"
	}
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(0, lineH, d.tr(text), "", "J", false)
}

func (d *doc) stamp(at time.Time) {
	d.pdf.Ln(4)
	d.pdf.SetFont("Helvetica", "I", 8)
	d.pdf.CellFormat(0, 5, d.tr("Dibuat otomatis pada "+at.Format("02-01-2006 15:04")), "", 1, "R", false, 0, "")
}

func (d *doc) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatRupiah: 1500000.5 → "Rp 1.500.001"
func FormatRupiah(v float64) string {
	neg := v < 0
	n := int64(math.Round(math.Abs(v)))
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i, ch := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, ch)
	}
	if neg {
		return "-Rp " + string(out)
	}
	return "Rp " + string(out)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02-01-2006")
}

func sortedCounts(m map[string]int) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", strings.ReplaceAll(k, "_", " "), m[k]))
	}
	return strings.Join(parts, ", ")
}
