package report

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"example.com/igcgate/internal/scan"
)

// pdfText localizes labels and transcodes every rendered string to the
// single-byte code page of the built-in Helvetica font. The cp1254 page
// covers both locales; strings must never reach the PDF cell writers as raw
// UTF-8.
type pdfText struct {
	tr  Translator
	enc func(string) string
}

func (t pdfText) T(key string) string {
	return t.enc(t.tr.T(key))
}

func (t pdfText) Format(key string, args ...any) string {
	return t.enc(t.tr.Format(key, args...))
}

// val transcodes a non-localized value such as a file path or a finding
// message.
func (t pdfText) val(s string) string {
	return t.enc(s)
}

// SaveScanPDF renders the given scan report into a PDF document, with the
// trace digest stamped as a QR code in the header.
func SaveScanPDF(rep scan.Report, lang Language, out string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdfText{
		tr:  NewTranslator(lang),
		enc: pdf.UnicodeTranslatorFromDescriptor("cp1254"),
	}
	pdf.SetTitle(tr.tr.T("report.title"), true)
	pdf.SetAuthor("igcctl", false)
	pdf.SetCreator("igcctl", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addPDFTitle(pdf, tr.T("report.title"))
	addDigestQR(pdf, rep.Digest)
	addSummarySection(pdf, tr, rep)
	addKindMatrixSection(pdf, tr, rep.KindCounts)
	addDeclaredSection(pdf, tr, rep.Declared)
	addFindingsSection(pdf, tr, rep.Findings)

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func addPDFTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addDigestQR(pdf *gofpdf.Fpdf, digest string) {
	png, err := TraceDigestQR(digest, 256)
	if err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("trace-digest-qr", opts, bytes.NewReader(png))
	pageWidth, _ := pdf.GetPageSize()
	pdf.ImageOptions("trace-digest-qr", pageWidth-45, 12, 30, 30, false, opts, 0, "")
}

func addSummarySection(pdf *gofpdf.Fpdf, tr pdfText, rep scan.Report) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr.T("summary.heading"))
	pdf.Ln(8)

	overall := tr.T("summary.fail")
	if rep.Summary.Pass {
		overall = tr.T("summary.pass")
	}
	pdf.SetFont("Helvetica", "", 11)
	items := []struct {
		label string
		value string
	}{
		{label: tr.T("summary.file"), value: tr.val(emptyFallback(rep.File, "-"))},
		{label: tr.T("summary.digest"), value: emptyFallback(rep.Digest, "-")},
		{label: tr.T("summary.lines"), value: strconv.Itoa(rep.Summary.Lines)},
		{label: tr.T("summary.records"), value: strconv.Itoa(rep.Summary.Records)},
		{label: tr.T("summary.errors"), value: strconv.Itoa(rep.Summary.Errors)},
		{label: tr.T("summary.warnings"), value: strconv.Itoa(rep.Summary.Warnings)},
		{label: tr.T("summary.unrecognized"), value: strconv.Itoa(rep.Summary.Unrecognized)},
		{label: tr.T("summary.overall"), value: overall},
	}
	for _, item := range items {
		pdf.CellFormat(50, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, item.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addKindMatrixSection(pdf *gofpdf.Fpdf, tr pdfText, counts map[string]int) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr.T("matrix.heading"))
	pdf.Ln(9)

	headers := []string{tr.T("matrix.kind"), tr.T("matrix.count"), tr.T("matrix.description")}
	widths := []float64{25, 25, 130}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	pdf.SetFont("Helvetica", "", 9)
	lineHeight := 5.0
	for _, kind := range kinds {
		values := []string{
			kind,
			strconv.Itoa(counts[kind]),
			tr.T("kind." + kind),
		}
		renderTableRow(pdf, widths, values, lineHeight)
	}
	pdf.Ln(4)
}

func addDeclaredSection(pdf *gofpdf.Fpdf, tr pdfText, declared []string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr.T("declared.heading"))
	pdf.Ln(9)

	if len(declared) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr.T("declared.none"), "", "L", false)
		pdf.Ln(2)
		return
	}
	pdf.SetFont("Courier", "", 10)
	for _, line := range declared {
		pdf.MultiCell(0, 5, tr.val(line), "", "L", false)
	}
	pdf.Ln(2)
}

func addFindingsSection(pdf *gofpdf.Fpdf, tr pdfText, findings []scan.Diagnostic) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr.T("findings.heading"))
	pdf.Ln(9)

	if len(findings) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr.T("findings.none"), "", "L", false)
		return
	}

	for i, d := range findings {
		pdf.SetFont("Helvetica", "B", 10)
		header := fmt.Sprintf("%d. %s (%s)", i+1, tr.Format("finding.line", d.Line), string(d.Severity))
		pdf.MultiCell(0, 5, header, "", "L", false)

		if msg := strings.TrimSpace(d.Message); msg != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr.val(msg), "", "L", false)
		}

		meta := findingMetadata(d)
		if meta != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(0, 4, tr.val(meta), "", "L", false)
		}

		pdf.Ln(2)
	}
}

func renderTableRow(pdf *gofpdf.Fpdf, widths []float64, values []string, lineHeight float64) {
	xStart := pdf.GetX()
	yStart := pdf.GetY()
	maxLines := 1
	splitCols := make([][]string, len(values))
	for i, val := range values {
		text := strings.TrimSpace(val)
		if text == "" {
			text = "-"
		}
		lines := pdf.SplitText(text, widths[i]-2)
		if len(lines) == 0 {
			lines = []string{""}
		}
		splitCols[i] = lines
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	rowHeight := float64(maxLines) * lineHeight
	x := xStart
	for i, lines := range splitCols {
		pdf.SetXY(x, yStart)
		cellText := strings.Join(lines, "\n")
		pdf.MultiCell(widths[i], lineHeight, cellText, "1", "L", false)
		x += widths[i]
	}
	pdf.SetXY(xStart, yStart+rowHeight)
}

func emptyFallback(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

func findingMetadata(d scan.Diagnostic) string {
	parts := make([]string, 0, 4)
	if !d.Ts.IsZero() {
		parts = append(parts, d.Ts.Format(time.RFC3339))
	}
	if d.File != "" {
		parts = append(parts, d.File)
	}
	if d.Kind != "" {
		parts = append(parts, d.Kind)
	}
	if d.Err != "" {
		parts = append(parts, d.Err)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " | ")
}
