// Package export renders a report as a single-page PDF.
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/pmoquiz/internal/report"
)

// DefaultFileName is the name used when the caller does not choose one.
const DefaultFileName = "pmo-maturity-report.pdf"

// Page geometry in millimetres. The width is fixed; the height follows
// the content.
const (
	PageWidth    = 210.0
	margin       = 15.0
	contentWidth = PageWidth - 2*margin
	lineHeight   = 5.0
	chartHeight  = 95.0
	chartRadius  = 35.0

	// scratchHeight is the page used for the measuring pass.
	scratchHeight = 3000.0
)

type rgb struct{ r, g, b int }

var (
	colorTitle  = rgb{30, 41, 59}
	colorMuted  = rgb{100, 116, 139}
	colorAccent = rgb{79, 70, 229}
	colorGrid   = rgb{203, 213, 225}
	colorTrack  = rgb{226, 232, 240}
)

// WritePDF renders r to w.
func WritePDF(w io.Writer, r report.Report) error {
	pdf, err := render(r)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// SaveFile renders r to path, creating parent directories as needed.
func SaveFile(path string, r report.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	pdf, err := render(r)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save pdf %s: %w", path, err)
	}
	return nil
}

// render lays r out twice: once on a scratch page to find the content
// height, then on a page of exactly that height.
func render(r report.Report) (*fpdf.Fpdf, error) {
	scratch := newDoc(scratchHeight)
	height := scratch.draw(r) + margin
	if err := scratch.pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}

	d := newDoc(height)
	d.draw(r)
	if err := d.pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return d.pdf, nil
}

type doc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDoc(height float64) *doc {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: height},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(report.Title, true)
	pdf.AddPage()
	return &doc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// draw renders the whole report and returns the final y position.
func (d *doc) draw(r report.Report) float64 {
	p := d.pdf

	d.text(colorTitle)
	p.SetFont("Helvetica", "B", 20)
	p.CellFormat(contentWidth, 10, d.tr(r.Title), "", 1, "C", false, 0, "")

	d.text(colorMuted)
	p.SetFont("Helvetica", "", 11)
	p.CellFormat(contentWidth, 7, fmt.Sprintf("Overall maturity: %d%%", r.Overall()), "", 1, "C", false, 0, "")

	d.radar(r, p.GetY()+2)
	p.SetY(p.GetY() + 2 + chartHeight)

	if !r.HasFeedback {
		d.text(colorMuted)
		p.SetFont("Helvetica", "I", 10)
		p.MultiCell(contentWidth, lineHeight, "Personalized recommendations were not available for this assessment.", "", "C", false)
		p.Ln(3)
	}

	for _, c := range r.Categories {
		d.card(c)
	}
	return p.GetY()
}

func (d *doc) radar(r report.Report, top float64) {
	p := d.pdf
	n := len(r.Categories)
	if n < 3 {
		return
	}
	cx := PageWidth / 2
	cy := top + chartHeight/2

	point := func(i int, frac float64) fpdf.PointType {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		return fpdf.PointType{
			X: cx + chartRadius*frac*math.Cos(angle),
			Y: cy + chartRadius*frac*math.Sin(angle),
		}
	}

	p.SetLineWidth(0.2)
	d.stroke(colorGrid)
	for _, ring := range []float64{0.25, 0.5, 0.75, 1} {
		pts := make([]fpdf.PointType, n)
		for i := range pts {
			pts[i] = point(i, ring)
		}
		p.Polygon(pts, "D")
	}
	for i := 0; i < n; i++ {
		edge := point(i, 1)
		p.Line(cx, cy, edge.X, edge.Y)
	}

	data := make([]fpdf.PointType, n)
	for i, c := range r.Categories {
		data[i] = point(i, float64(c.Percent)/100)
	}
	d.fill(colorAccent)
	d.stroke(colorAccent)
	p.SetAlpha(0.3, "Normal")
	p.Polygon(data, "F")
	p.SetAlpha(1, "Normal")
	p.SetLineWidth(0.6)
	p.Polygon(data, "D")

	d.text(colorTitle)
	p.SetFont("Helvetica", "B", 9)
	for i, c := range r.Categories {
		at := point(i, 1.18)
		label := d.tr(c.Short)
		w := p.GetStringWidth(label)
		p.Text(at.X-w/2, at.Y+1.5, label)
	}
}

func (d *doc) card(c report.CategoryResult) {
	p := d.pdf
	y := p.GetY()

	d.stroke(colorGrid)
	p.SetLineWidth(0.2)
	p.Line(margin, y, margin+contentWidth, y)
	p.SetY(y + 3)

	d.text(colorTitle)
	p.SetFont("Helvetica", "B", 12)
	score := fmt.Sprintf("%d / %d  (%d%%)", c.Score, c.Max, c.Percent)
	scoreWidth := p.GetStringWidth(score) + 2
	p.CellFormat(contentWidth-scoreWidth, 7, d.tr(c.Label), "", 0, "L", false, 0, "")
	d.text(colorAccent)
	p.CellFormat(scoreWidth, 7, score, "", 1, "R", false, 0, "")

	barY := p.GetY() + 1
	d.fill(colorTrack)
	p.Rect(margin, barY, contentWidth, 2.5, "F")
	if c.Percent > 0 {
		d.fill(colorAccent)
		p.Rect(margin, barY, contentWidth*float64(min(c.Percent, 100))/100, 2.5, "F")
	}
	p.SetY(barY + 5)

	switch {
	case c.Fallback:
		d.body(c.Raw)
	case c.Raw != "":
		d.section("Insight", c.Sections.Insight)
		d.section("Follow-up Questions", c.Sections.FollowUp)
		d.section("Next Step", c.Sections.NextStep)
	}
	p.Ln(3)
}

func (d *doc) section(label, text string) {
	if text == "" {
		return
	}
	d.text(colorAccent)
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(contentWidth, lineHeight, d.tr(label), "", 1, "L", false, 0, "")
	d.body(text)
	d.pdf.Ln(1)
}

func (d *doc) body(text string) {
	d.text(colorTitle)
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(contentWidth, lineHeight, d.tr(plain(text)), "", "L", false)
}

func (d *doc) text(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }
func (d *doc) fill(c rgb) { d.pdf.SetFillColor(c.r, c.g, c.b) }
func (d *doc) stroke(c rgb) { d.pdf.SetDrawColor(c.r, c.g, c.b) }

// plain drops markdown emphasis markers, which the core fonts cannot show.
func plain(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
