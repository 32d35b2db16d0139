// Package pages renders the landing page and the HTML fragments the demo and
// chat endpoints send back to the browser.
package pages

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
	OGImage     string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Twins Digital.IA | Automatiza tu Negocio"
	}
	if config.Description == "" {
		config.Description = "Automatiza el 80% de tu operación con empleados IA, bots de WhatsApp e integraciones a medida."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("es"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				g.If(config.OGImage != "", Meta(g.Attr("property", "og:image"), Content(config.OGImage))),

				Script(Src("https://cdn.tailwindcss.com")),
				Link(Rel("stylesheet"), Href("/static/styles.css")),
			),
			Body(
				Class("bg-dark text-white antialiased"),
				g.Group(content),

				Script(Src(FormEmbedJS), g.Attr("async")),
				Script(Src("/static/app.js"), g.Attr("defer")),
			),
		),
	})
}

func sectionHeading(kicker, line1, highlight string) g.Node {
	return Div(
		Class("text-center max-w-3xl mx-auto mb-16"),
		g.If(kicker != "", Span(Class("inline-block px-3 py-1 rounded-full bg-primary/10 border border-primary/30 text-primary text-xs font-bold uppercase tracking-wider"), g.Text(kicker))),
		H2(
			Class("mt-4 text-4xl md:text-5xl font-extrabold leading-tight"),
			g.Text(line1),
			g.If(highlight != "", g.Group([]g.Node{
				Br(),
				Span(Class("text-transparent bg-clip-text bg-gradient-to-r from-primary to-secondary"), g.Text(highlight)),
			})),
		),
	)
}

func externalLink(href string, children ...g.Node) g.Node {
	return A(Href(href), Target("_blank"), Rel("noopener noreferrer"), g.Group(children))
}
