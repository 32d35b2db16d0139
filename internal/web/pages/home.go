package pages

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"twins-digital-web/internal/assistant"
	"twins-digital-web/internal/catalog"
	"twins-digital-web/internal/staging"
)

// Home is the full landing page.
func Home(cat *catalog.Catalog, snap staging.Snapshot, turns []assistant.Turn) g.Node {
	return Layout(
		PageConfig{},
		Navbar(),
		Main(
			Hero(),
			Problem(),
			Concept(),
			Employees(),
			Services(),
			DemoSection(cat, snap),
			Portfolio(),
			Testimonials(),
			Contact(),
		),
		PageFooter(),
		ChatWidget(turns),
		LeadModal(),
	)
}
