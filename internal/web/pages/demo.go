package pages

import (
	"fmt"
	"net/url"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"twins-digital-web/internal/catalog"
	"twins-digital-web/internal/staging"
)

const (
	DemoImagesID  = "demo-images"
	DemoResultsID = "demo-results"
)

var badgeLabels = map[staging.Badge]struct{ Text, Class string }{
	staging.BadgeProcessing: {"PROCESANDO...", "bg-yellow-500"},
	staging.BadgeError:      {"ERROR IA", "bg-red-600"},
	staging.BadgeStaging:    {"VIRTUAL STAGING", "bg-primary"},
	staging.BadgeCleanup:    {"LIMPIEZA IA", "bg-secondary"},
	staging.BadgeOriginal:   {"ORIGINAL", "bg-gray-600"},
}

var actionLabels = []struct {
	Action staging.Action
	Label  string
}{
	{staging.ActionFurnish, "Amueblar"},
	{staging.ActionEmpty, "Vaciar"},
	{staging.ActionNone, "Nada"},
}

// ImageURL addresses one side of a staged image; variant is "original" or
// "shown".
func ImageURL(id, variant string) string {
	return "/api/demo/images/" + url.PathEscape(id) + "/" + variant
}

func DemoSection(cat *catalog.Catalog, snap staging.Snapshot) g.Node {
	return Section(
		ID("demo-ia"),
		Class("py-24 container mx-auto px-6"),
		sectionHeading("Demo Interactiva Real", "Crea Anuncios Inmobiliarios", "En Segundos"),
		Div(
			Class("grid lg:grid-cols-2 gap-8"),
			Div(
				Class("space-y-6"),
				Div(
					Class("p-6 rounded-2xl bg-white/5 border border-white/10"),
					H3(Class("font-bold mb-4"), g.Text("1. Configuración Visual")),
					Input(
						ID("demo-file"),
						Type("file"),
						Accept("image/*"),
						g.Attr("multiple"),
						Class("hidden"),
					),
					Div(ID(DemoImagesID), DemoImages(snap)),
					Label(Class("block mt-4 text-sm text-gray-400"), For("demo-style"), g.Text("Estilo de amueblado")),
					selectField("demo-style", "style", cat.StyleOptions(), string(snap.Settings.Style)),
				),
				Div(
					Class("p-6 rounded-2xl bg-white/5 border border-white/10 space-y-3"),
					H3(Class("font-bold"), g.Text("2. Configuración del Anuncio")),
					Label(Class("block text-sm text-gray-400"), For("demo-audience"), g.Text("Público objetivo")),
					selectField("demo-audience", "audience", cat.AudienceOptions(), string(snap.Settings.Audience)),
					Label(Class("block text-sm text-gray-400"), For("demo-tone"), g.Text("Tono")),
					selectField("demo-tone", "tone", cat.ToneOptions(), string(snap.Settings.Tone)),
					Label(Class("block text-sm text-gray-400"), For("demo-length"), g.Text("Longitud")),
					selectField("demo-length", "length", cat.LengthOptions(), string(snap.Settings.Length)),
				),
				Button(
					ID("demo-generate"),
					Type("button"),
					g.Attr("data-action", "generate"),
					g.If(snap.Running || len(snap.Images) == 0, g.Attr("disabled")),
					Class("w-full py-4 rounded-xl bg-gradient-to-r from-primary to-secondary font-bold disabled:opacity-50"),
					g.If(snap.Running, g.Text("Generando con IA...")),
					g.If(!snap.Running, g.Text("Transformar Fotos")),
				),
				P(Class("text-xs text-gray-500"), g.Text("*Este proceso usa Google Gemini y puede tardar 10-15 segundos por foto.")),
			),
			Div(ID(DemoResultsID), DemoResults(snap)),
		),
	)
}

func selectField(id, name string, options []catalog.NamedOption, selected string) g.Node {
	return Select(
		ID(id),
		Name(name),
		g.Attr("data-setting", name),
		Class("w-full rounded-lg bg-dark border border-white/20 px-3 py-2"),
		g.Group(g.Map(options, func(o catalog.NamedOption) g.Node {
			return Option(Value(o.Key), g.If(o.Key == selected, Selected()), g.Text(o.Name))
		})),
	)
}

// DemoImages renders the uploaded list with its per-image action picker, or
// the upload prompt when the list is empty.
func DemoImages(snap staging.Snapshot) g.Node {
	if len(snap.Images) == 0 {
		return Div(
			Class("text-center p-10 rounded-xl border-2 border-dashed border-white/20"),
			Button(
				Type("button"),
				g.Attr("data-action", "pick-files"),
				Class("block mx-auto font-bold"),
				g.Text("Haz clic para subir fotos"),
			),
			P(Class("text-xs text-gray-500 mt-1"), g.Text("Soporta múltiples archivos")),
			Button(
				Type("button"),
				g.Attr("data-action", "sample"),
				Class("mt-4 text-sm text-primary underline"),
				g.Text("O usa un ejemplo"),
			),
		)
	}

	return Div(
		Div(
			Class("grid grid-cols-2 gap-4"),
			g.Group(g.Map(snap.Images, func(img staging.Image) g.Node {
				return imageCard(img, snap.Running)
			})),
		),
		Button(
			Type("button"),
			g.Attr("data-action", "pick-files"),
			g.If(snap.Running, g.Attr("disabled")),
			Class("mt-4 w-full py-2 rounded-lg border border-dashed border-white/20 text-sm disabled:opacity-50"),
			g.Text("Subir más fotos"),
		),
	)
}

func imageCard(img staging.Image, running bool) g.Node {
	return Div(
		Class("relative rounded-xl overflow-hidden bg-black/40 border border-white/10"),
		g.Attr("data-image-id", img.ID),
		Img(Src(ImageURL(img.ID, "original")), Alt(img.Name), Class("w-full h-32 object-cover")),
		Button(
			Type("button"),
			g.Attr("data-action", "remove"),
			g.Attr("data-id", img.ID),
			g.Attr("aria-label", "Eliminar"),
			Class("absolute top-2 right-2 w-7 h-7 rounded-full bg-black/70 text-sm"),
			g.Text("×"),
		),
		g.If(img.Status == staging.StatusProcessing, Div(
			Class("absolute inset-0 flex items-center justify-center bg-black/60 text-xs font-bold"),
			g.Text("PROCESANDO..."),
		)),
		Div(
			Class("p-2"),
			P(Class("text-xs text-gray-400 mb-1"), g.Text("¿Qué debe hacer la IA?")),
			Select(
				g.Attr("data-action", "set-action"),
				g.Attr("data-id", img.ID),
				g.If(running, g.Attr("disabled")),
				Class("w-full rounded bg-dark border border-white/20 text-xs px-2 py-1"),
				g.Group(g.Map(actionLabels, func(a struct {
					Action staging.Action
					Label  string
				}) g.Node {
					return Option(Value(string(a.Action)), g.If(a.Action == img.Action, Selected()), g.Text(a.Label))
				})),
			),
		),
	)
}

// DemoResults renders the result viewer: the waiting placeholder, the
// generating state, or the revealed results with caption and navigation.
func DemoResults(snap staging.Snapshot) g.Node {
	return Div(
		Class("p-6 rounded-2xl bg-white/5 border border-white/10 min-h-[420px] flex flex-col"),
		g.If(snap.Error != "", errorBanner(snap.Error)),
		resultsBody(snap),
	)
}

func resultsBody(snap staging.Snapshot) g.Node {
	if snap.Running && !snap.ShowResult {
		done := 0
		for _, img := range snap.Images {
			if img.Status == staging.StatusDone || img.Status == staging.StatusError {
				done++
			}
		}
		return Div(
			Class("flex-1 flex flex-col items-center justify-center text-center"),
			Div(Class("w-12 h-12 rounded-full border-4 border-primary border-t-transparent animate-spin")),
			P(Class("mt-4 font-bold"), g.Text("IA Regenerando Píxeles...")),
			P(Class("text-xs text-gray-400"), g.Textf("%d / %d", done, len(snap.Images))),
		)
	}
	if !snap.ShowResult || len(snap.Images) == 0 {
		return Div(
			Class("flex-1 flex items-center justify-center text-gray-500"),
			g.Text("Esperando input..."),
		)
	}

	index := snap.Index
	if index >= len(snap.Images) {
		index = len(snap.Images) - 1
	}
	img := snap.Images[index]
	badge := badgeLabels[img.Badge()]
	transformed := img.Status == staging.StatusDone && img.Result != nil

	status := "Visualizando imagen original."
	if transformed {
		status = "Imagen generada exitosamente con Gemini Vision."
	}

	return Div(
		Class("flex-1 flex flex-col gap-4"),
		Div(
			Class("flex items-center justify-between"),
			H3(Class("font-bold"), g.Text("Imagen Generada")),
			Span(Class("text-xs text-gray-400"), g.Textf("%d / %d", index+1, len(snap.Images))),
		),
		Div(
			Class("relative rounded-xl overflow-hidden bg-black"),
			Img(
				Src(fmt.Sprintf("%s?v=%s", ImageURL(img.ID, "shown"), img.Status)),
				Alt(img.Name),
				Class("w-full max-h-96 object-contain"),
			),
			Span(Class("absolute top-3 left-3 px-2 py-1 rounded text-xs font-bold "+badge.Class), g.Text(badge.Text)),
			g.If(index > 0, navButton("prev", "‹", "left-3")),
			g.If(index < len(snap.Images)-1, navButton("next", "›", "right-3")),
		),
		Div(
			Class("flex items-center justify-between text-xs"),
			P(Class("text-gray-400"), g.Text(status)),
			A(Href("/api/demo/download"), g.Attr("download"), Class("px-3 py-1 rounded bg-white/10 hover:bg-white/20 font-bold"), g.Text("Descargar")),
		),
		g.If(snap.Caption != "", Div(
			Class("p-4 rounded-xl bg-black/40 border border-white/10"),
			Div(
				Class("flex justify-between items-center mb-2"),
				Span(Class("text-xs font-bold text-primary"), g.Text("Copy Sugerido")),
				Button(
					Type("button"),
					g.Attr("data-action", "copy-caption"),
					Class("text-xs underline"),
					g.Text("Copiar texto"),
				),
			),
			P(ID("demo-caption"), Class("text-sm text-gray-300 whitespace-pre-line"), g.Text(snap.Caption)),
		)),
		externalLink(WhatsAppURL+"?text=Quiero%20implementar%20la%20IA%20inmobiliaria.",
			Class("mt-auto block text-center py-3 rounded-xl bg-[#25D366] font-bold"),
			g.Text("Implementar ahora"),
		),
	)
}

func navButton(direction, glyph, position string) g.Node {
	return Button(
		Type("button"),
		g.Attr("data-action", direction),
		g.Attr("aria-label", direction),
		Class("absolute top-1/2 -translate-y-1/2 "+position+" w-9 h-9 rounded-full bg-black/60 text-xl"),
		g.Text(glyph),
	)
}

func errorBanner(msg string) g.Node {
	return Div(
		Class("mb-4 p-3 rounded-lg bg-red-500/10 border border-red-500/40 text-sm text-red-300 flex justify-between gap-3"),
		g.Attr("role", "alert"),
		Span(g.Text(msg)),
		Button(
			Type("button"),
			g.Attr("data-action", "dismiss-error"),
			g.Attr("aria-label", "Cerrar"),
			g.Text("×"),
		),
	)
}
