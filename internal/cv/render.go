package cv

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ignatij/folio/internal/models"
)

type rgb struct{ r, g, b int }

// Dark chrome palette.
var (
	colorBackground    = rgb{17, 17, 27}
	colorSurface       = rgb{30, 30, 46}
	colorAccent        = rgb{242, 180, 135}
	colorTextPrimary   = rgb{205, 214, 244}
	colorTextSecondary = rgb{166, 173, 200}
)

// Layout in points on an A4 page.
const (
	marginX      = 48.0
	startY       = 92.0
	lineHeight   = 16.0
	bottomMargin = 60.0
	bandHeight   = 150.0
	fontFamily   = "Helvetica"
)

// epoch stamps every document so identical input yields identical bytes.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Renderer writes CV documents for one profile. It is safe for concurrent use;
// each Render builds its own document.
type Renderer struct {
	profile Profile
}

// NewRenderer creates a Renderer for profile.
func NewRenderer(profile Profile) *Renderer {
	return &Renderer{profile: profile}
}

// Profile returns the configured profile.
func (r *Renderer) Profile() Profile {
	return r.profile
}

// Render writes the PDF for the given ordered projects to w.
func (r *Renderer) Render(w io.Writer, projects []models.Project) error {
	pdf, err := r.build(NewInput(projects))
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("cv: write pdf: %w", err)
	}
	return nil
}

// document is the cursor state of one rendering.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	y   float64
	w   float64
	h   float64
}

func (r *Renderer) build(in Input) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(marginX, startY, marginX)
	pdf.SetCreationDate(epoch)
	pdf.SetModificationDate(epoch)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(r.profile.Name+" CV", true)
	pdf.SetAuthor(r.profile.Name, true)
	pdf.SetCreator("folio", false)

	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	d.w, d.h = pdf.GetPageSize()
	pdf.SetHeaderFunc(d.drawChrome)
	pdf.AddPage()

	d.drawHeader(r.profile)

	d.y = d.sectionTitle("Summary", d.y+6)
	d.y = d.paragraph(r.profile.Summary, d.y, 12, "")
	d.y += 4

	if len(r.profile.Education) > 0 {
		d.y = d.sectionTitle("Education", d.y)
		for _, e := range r.profile.Education {
			d.education(e)
		}
	}
	if len(r.profile.Skills) > 0 {
		d.y = d.sectionTitle("Skills", d.y)
		for _, s := range r.profile.Skills {
			d.skill(s)
		}
	}

	if len(in.Projects) > 0 {
		d.y = d.sectionTitle("Projects", d.y)
		for _, p := range in.Projects {
			d.project(p)
		}
	}
	if len(in.SideProjects) > 0 {
		d.y = d.sectionTitle("Open Source & Side Projects", d.y)
		for _, p := range in.SideProjects {
			d.project(p)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("cv: layout: %w", err)
	}
	return pdf, nil
}

func (d *document) fill(c rgb) { d.pdf.SetFillColor(c.r, c.g, c.b) }
func (d *document) ink(c rgb)  { d.pdf.SetTextColor(c.r, c.g, c.b) }

func (d *document) text(x, y float64, s string) {
	d.pdf.Text(x, y, d.tr(s))
}

func (d *document) width(s string) float64 {
	return d.pdf.GetStringWidth(d.tr(s))
}

// drawChrome paints the page background, the content panel and the header
// band. fpdf calls it at the start of every page.
func (d *document) drawChrome() {
	d.fill(colorBackground)
	d.pdf.Rect(0, 0, d.w, d.h, "F")

	d.fill(colorSurface)
	inset := marginX - 24
	d.pdf.Rect(inset, marginX-52, d.w-inset*2, d.h-(marginX-40), "F")
	d.pdf.Rect(0, 0, d.w, bandHeight, "F")
}

// ensureSpace moves to a new page once y passes the bottom margin and returns
// the y to continue at.
func (d *document) ensureSpace(y float64) float64 {
	if y > d.h-bottomMargin {
		d.pdf.AddPage()
		return startY
	}
	return y
}

func (d *document) drawHeader(p Profile) {
	d.y = 88

	d.ink(colorTextPrimary)
	d.pdf.SetFont(fontFamily, "B", 26)
	d.text(marginX, d.y, p.Name)
	d.y += 26

	d.pdf.SetFont(fontFamily, "", 13)
	d.ink(colorAccent)
	d.text(marginX, d.y, p.Title)
	d.y += lineHeight + 6

	var meta []string
	for _, s := range []string{p.Location, p.Email, p.Website} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	d.ink(colorTextSecondary)
	d.pdf.SetFont(fontFamily, "", 10)
	d.text(marginX, d.y, strings.Join(meta, "  •  "))
	d.y += 24

	d.ink(colorTextPrimary)
}

func (d *document) sectionTitle(title string, y float64) float64 {
	y = d.ensureSpace(y + 8)
	d.pdf.SetFont(fontFamily, "B", 12)
	d.ink(colorAccent)
	d.text(marginX, y, strings.ToUpper(title))

	d.pdf.SetDrawColor(colorAccent.r, colorAccent.g, colorAccent.b)
	d.pdf.SetLineWidth(1)
	d.pdf.Line(marginX, y+4, d.w-marginX, y+4)
	d.ink(colorTextPrimary)
	return y + lineHeight
}

// paragraph wraps text to the content width and returns the y below it.
func (d *document) paragraph(text string, y, size float64, style string) float64 {
	if strings.TrimSpace(text) == "" {
		return y
	}
	y = d.ensureSpace(y)
	d.pdf.SetFont(fontFamily, style, size)
	for _, line := range d.pdf.SplitLines([]byte(d.tr(text)), d.w-marginX*2) {
		d.pdf.Text(marginX, y, string(line))
		y += size + 2
	}
	return y
}

func (d *document) education(e Education) {
	d.y = d.ensureSpace(d.y + 4)
	d.pdf.SetFont(fontFamily, "B", 11)
	heading := e.Institution
	if e.Period != "" {
		heading += " — " + e.Period
	}
	d.text(marginX, d.y, heading)
	d.y += lineHeight - 4
	d.y = d.paragraph(e.Degree, d.y, 10, "")
	d.y += 4
}

func (d *document) skill(s Skill) {
	d.y = d.ensureSpace(d.y + 4)
	d.pdf.SetFont(fontFamily, "B", 10)
	label := s.Label + ":"
	labelWidth := d.width(label) + 6
	d.text(marginX, d.y, label)

	d.pdf.SetFont(fontFamily, "", 10)
	lines := d.pdf.SplitLines([]byte(d.tr(s.Value)), d.w-marginX*2-labelWidth)
	for i, line := range lines {
		if i > 0 {
			d.y = d.ensureSpace(d.y + lineHeight - 6)
		}
		d.pdf.Text(marginX+labelWidth, d.y, string(line))
	}
	d.y += lineHeight - 4
}

func (d *document) project(p models.Project) {
	d.y = d.ensureSpace(d.y + 4)
	d.pdf.SetFont(fontFamily, "B", 11)
	heading := projectTitle(p)
	if period := p.Period.Label(); period != "" {
		heading += " — " + period
	}
	d.text(marginX, d.y, heading)

	if p.GitHub != "" {
		x := marginX + d.width(heading) + 6
		d.pdf.SetFont(fontFamily, "", 9)
		d.ink(colorAccent)
		d.text(x, d.y, "GitHub")
		d.pdf.LinkString(x, d.y-9, d.width("GitHub"), 12, p.GitHub)
		d.ink(colorTextPrimary)
	}
	d.y += lineHeight

	d.y = d.paragraph(p.Description, d.y, 10, "")
	if p.MyRole != "" {
		d.y = d.paragraph("My role: "+p.MyRole, d.y, 10, "")
	}
	if len(p.Technologies) > 0 {
		d.y = d.paragraph("Tech: "+strings.Join(p.Technologies, ", "), d.y, 9, "")
	}
	d.y += 2
}
