// Package layout lays resumes out as print-ready HTML documents sized for
// a fixed page, ready to be printed to PDF by a headless browser.
package layout

import (
	"bytes"
	_ "embed"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/resumekit"
)

// DefaultMargin is the page margin in points.
const DefaultMargin = 40

//go:embed resume.html.tmpl
var resumeTemplate string

var colorRe = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)$`)

// Ensure Engine implements resumekit.LayoutEngine at compile time.
var _ resumekit.LayoutEngine = (*Engine)(nil)

// Engine renders a resumekit.Resume into a print HTML document.
//
// Every bullet is a single paragraph whose symbol is an absolutely
// positioned span inside that paragraph, and the paragraph may not break
// across pages. The symbol and its text therefore always land on the same
// page.
type Engine struct {
	style  resumekit.BulletStyle
	page   resumekit.PageSize
	margin float64
	tmpl   *template.Template
}

// Option configures an Engine.
type Option func(*Engine)

// WithBulletStyle sets the bullet style.
// Defaults to resumekit.DefaultBulletStyle().
func WithBulletStyle(s resumekit.BulletStyle) Option {
	return func(e *Engine) {
		e.style = s
	}
}

// WithPageSize sets the page size. Defaults to resumekit.A4.
func WithPageSize(p resumekit.PageSize) Option {
	return func(e *Engine) {
		e.page = p
	}
}

// WithMargin sets the page margin in points. Defaults to DefaultMargin.
func WithMargin(pt float64) Option {
	return func(e *Engine) {
		e.margin = pt
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		style:  resumekit.DefaultBulletStyle(),
		page:   resumekit.A4,
		margin: DefaultMargin,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.tmpl = template.Must(template.New("layout").Funcs(template.FuncMap{
		"pt":     pt,
		"num":    num,
		"color":  color,
		"join":   strings.Join,
		"bullet": e.bullet,
	}).Parse(resumeTemplate))

	return e
}

// Style returns the bullet style the engine was built with.
func (e *Engine) Style() resumekit.BulletStyle {
	return e.style
}

type layoutData struct {
	Resume *resumekit.Resume
	Style  resumekit.BulletStyle
	Page   resumekit.PageSize
	Margin float64
}

type bulletData struct {
	Symbol string
	Text   string
}

func (e *Engine) bullet(text string) bulletData {
	return bulletData{Symbol: e.style.Symbol, Text: text}
}

// Layout returns the complete HTML document for r.
func (e *Engine) Layout(r *resumekit.Resume) (string, error) {
	if r == nil {
		return "", resumekit.Errorf(resumekit.EINVALID, "Nothing to lay out.")
	}
	var buf bytes.Buffer
	err := e.tmpl.ExecuteTemplate(&buf, "resume", layoutData{
		Resume: r,
		Style:  e.style,
		Page:   e.page,
		Margin: e.margin,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SectionHeader renders the heading primitive for a section title.
func (e *Engine) SectionHeader(title string) (template.HTML, error) {
	return e.fragment("section-header", title)
}

// BulletBlock renders the bullet primitive for one bullet text.
func (e *Engine) BulletBlock(text string) (template.HTML, error) {
	return e.fragment("bullet-block", e.bullet(text))
}

func (e *Engine) fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func num(v float64) template.CSS {
	return template.CSS(strconv.FormatFloat(v, 'f', -1, 64))
}

func pt(v float64) template.CSS {
	return num(v) + "pt"
}

// color passes through hex and named colors and replaces anything else
// with inherit.
func color(s string) template.CSS {
	if !colorRe.MatchString(s) {
		return "inherit"
	}
	return template.CSS(s)
}
