package pages

import (
	"fmt"
	"strings"

	"github.com/otherdev/site/internal/site"
	"github.com/otherdev/site/internal/view"
	"github.com/otherdev/site/web/src/templates/layouts"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// HTMXScript is the htmx build loaded by the preview page.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

// CursorPreview is a generated cursor file as shown on the preview page.
type CursorPreview struct {
	Name   string
	URL    string
	Markup string
}

// PreviewData is everything the preview page shows.
type PreviewData struct {
	Metadata site.Metadata
	Icons    site.IconSet
	Cursors  []CursorPreview
	// Poll makes the grid refresh itself every two seconds.
	Poll bool
}

var titleCaser = cases.Title(language.English)

// DisplayName turns an icon name such as "brand-linkedin" into "Brand Linkedin".
func DisplayName(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "-", " "))
}

// Preview renders the full preview page.
func Preview(data PreviewData) gomponents.Node {
	meta := data.Metadata
	gridAttrs := []gomponents.Node{ID("grid")}
	if data.Poll {
		gridAttrs = append(gridAttrs,
			hx.Get("/preview/grid"),
			hx.Trigger("every 2s"),
			hx.Swap("innerHTML"),
		)
	}

	return Doctype(
		HTML(
			Lang(meta.Language),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(gomponents.Text(layouts.CalculateTitle("Icons", meta.Title))),
				Link(Rel("stylesheet"), Href("/static/preview.css")),
				gomponents.If(data.Poll, Script(Src(HTMXScript))),
			),
			Body(
				H1(gomponents.Text(meta.Title)),
				P(gomponents.Text(meta.Description)),
				Div(append(gridAttrs, Grid(data))...),
				metadataSection(meta),
			),
		),
	)
}

// Grid renders the icon and cursor tiles. It is also served on its own for
// htmx polling.
func Grid(data PreviewData) gomponents.Node {
	return gomponents.Group{
		H2(gomponents.Text("Icons")),
		Div(Class("grid"),
			gomponents.Map(data.Icons.Entries(), func(e site.IconEntry) gomponents.Node {
				return iconTile(e, data.Icons)
			}),
		),
		H2(gomponents.Text("Cursors")),
		Div(Class("grid"),
			gomponents.Map(data.Cursors, cursorTile),
		),
	}
}

func iconTile(e site.IconEntry, set site.IconSet) gomponents.Node {
	missing := e.Markup == ""
	return Div(
		Class(tileClass(missing)),
		Strong(gomponents.Text(DisplayName(e.Icon))),
		Div(Code(gomponents.Text(e.Key))),
		gomponents.If(!missing, view.AdaptTemplToGomponent(set.Component(e.Key))),
		gomponents.If(missing, P(gomponents.Textf("%s.svg is missing", e.Icon))),
	)
}

func cursorTile(c CursorPreview) gomponents.Node {
	return Div(
		Class(tileClass(c.Markup == "")),
		Strong(gomponents.Text(c.Name)),
		Div(Code(gomponents.Text(c.URL))),
		gomponents.Raw(c.Markup),
		Div(
			Class("cursor-target"),
			Style(fmt.Sprintf("cursor: url(%s) 16 16, auto", c.URL)),
			gomponents.Text("Hover here"),
		),
	)
}

func tileClass(missing bool) string {
	if missing {
		return "tile missing"
	}
	return "tile"
}

func metadataSection(meta site.Metadata) gomponents.Node {
	locales := meta.LocaleNames()
	return Section(
		H2(gomponents.Text("Metadata")),
		Dl(
			Dt(gomponents.Text("URL")), Dd(A(Href(meta.URL), gomponents.Text(meta.URL))),
			Dt(gomponents.Text("Contact")), Dd(gomponents.Textf("%s, %s", meta.ContactEmail, meta.ContactPhone)),
			Dt(gomponents.Text("Twitter")), Dd(gomponents.Text(meta.Twitter)),
			Dt(gomponents.Text("Languages")), Dd(
				Ul(gomponents.Map(meta.Languages, func(code string) gomponents.Node {
					return Li(gomponents.Textf("%s (%s)", locales[code], code))
				})),
			),
			Dt(gomponents.Text("Service areas")), Dd(gomponents.Text(strings.Join(meta.ServiceAreas, ", "))),
			Dt(gomponents.Text("Author")), Dd(gomponents.Textf("%s <%s>", meta.Author.Name, meta.Author.Email)),
		),
	)
}
