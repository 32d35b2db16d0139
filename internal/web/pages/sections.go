package pages

import (
	"net/url"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func Navbar() g.Node {
	return Nav(
		ID("navbar"),
		Class("fixed w-full z-50 bg-dark/90 backdrop-blur-md py-4 border-b border-white/10"),
		Div(
			Class("container mx-auto px-6 flex items-center justify-between"),
			A(Href("#"), Class("font-extrabold text-xl tracking-tight"),
				g.Text("TWINS DIGITAL"), Span(Class("text-primary"), g.Text(".IA")),
			),
			Div(
				Class("hidden md:flex items-center gap-8 text-sm"),
				g.Group(g.Map(navLinks, func(l navLink) g.Node {
					return A(Href(l.Href), Class("text-gray-300 hover:text-white transition-colors"), g.Text(l.Label))
				})),
				Button(
					ID("btn-form-nav"),
					Type("button"),
					g.Attr("data-action", "open-lead"),
					Class("px-5 py-2 rounded-full bg-primary hover:bg-primary/80 font-bold"),
					g.Text("Agendar Demo"),
				),
			),
		),
	)
}

func Hero() g.Node {
	return Section(
		ID("hero"),
		Class("relative min-h-screen flex items-center pt-24"),
		Div(
			Class("container mx-auto px-6 text-center"),
			H1(
				Class("text-5xl md:text-7xl font-extrabold leading-tight"),
				Span(Class("block"), g.Text("Automatiza el 80% de tu Operación.")),
				Span(Class("block text-transparent bg-clip-text bg-gradient-to-r from-primary to-secondary"), g.Text("Duplica tus Ingresos.")),
			),
			Div(
				Class("mt-10 flex flex-col sm:flex-row gap-4 justify-center"),
				externalLink(WhatsAppURL+"?text="+url.PathEscape("Hola Twins, quiero mi demo IA personalizada"),
					ID("btn-whatsapp"),
					Class("px-8 py-4 rounded-full bg-[#25D366] hover:bg-[#20bd5a] font-bold"),
					g.Text("📱 WhatsApp Demo Gratis"),
				),
				Button(
					ID("btn-form"),
					Type("button"),
					g.Attr("data-action", "open-lead"),
					Class("px-8 py-4 rounded-full border border-white/20 hover:bg-white/10 font-bold"),
					g.Text("Ver Diagnóstico IA Personalizado"),
				),
			),
		),
	)
}

func Problem() g.Node {
	item := func(text string) g.Node {
		return Li(Class("flex gap-3 text-gray-300"), Span(Class("text-red-400"), g.Text("✕")), P(g.Text(text)))
	}
	check := func(text string) g.Node {
		return Li(Class("flex gap-3"), Span(Class("text-green-400"), g.Text("✓")), P(g.Text(text)))
	}

	return Section(
		ID("problema"),
		Class("py-24 container mx-auto px-6"),
		sectionHeading("", "¿Por qué los cursos genéricos", "no te dan resultados?"),
		P(Class("text-center text-gray-400 -mt-10 mb-12"),
			g.Text("La diferencia entre \"saber usar la herramienta\" y tener un negocio automatizado."),
		),
		Div(
			Class("grid md:grid-cols-3 gap-8"),
			Div(
				Class("p-8 rounded-2xl bg-white/5 border border-white/10"),
				H3(Class("text-2xl font-bold"), g.Text("Cursos")),
				P(Class("text-sm text-red-400 mb-6"), g.Text("La Trampa")),
				Ul(Class("space-y-4"),
					item("Pasas semanas aprendiendo prompt engineering en lugar de vender."),
					item("Templates genéricos de \"ChatGPT\" que alucinan y queman a tus leads."),
					item("Cuando la API falla (y fallará), estás completamente solo."),
				),
			),
			Div(
				Class("p-8 rounded-2xl bg-gradient-to-br from-primary/30 to-secondary/20 border border-primary/40 md:scale-105"),
				H3(Class("text-2xl font-bold"), g.Text("Twins Digital.IA")),
				P(Class("text-sm text-primary mb-2"), g.Text("Partner de Crecimiento")),
				Span(Class("inline-block mb-6 px-2 py-1 text-xs rounded bg-primary/20"), g.Text("Done-For-You")),
				Ul(Class("space-y-4"),
					check("Implementación más segura."),
					check("Facturas desde el Día 1. Nosotros configuramos, tú cobras."),
					check("Soporte Técnico VIP directo por WhatsApp con ingenieros."),
				),
			),
			Div(
				Class("p-8 rounded-2xl bg-white/5 border border-white/10"),
				H3(Class("text-2xl font-bold"), g.Text("Costo de Esperar")),
				P(Class("text-sm text-yellow-400 mb-6"), g.Text("La Realidad")),
				Ul(Class("space-y-4"),
					item("Sigues perdiendo 15+ horas/semana en tareas de \"copy-paste\"."),
					item("Tu competencia responde en segundos con IA, tú tardas horas."),
				),
				Div(Class("mt-6 p-4 rounded-xl bg-red-500/10 border border-red-500/30 flex justify-between"),
					Span(g.Text("Dinero dejado en la mesa")),
					Span(Class("font-bold text-red-400"), g.Text("-$20,000 USD/año")),
				),
			),
		),
	)
}

func Concept() g.Node {
	steps := []struct{ Title, Caption string }{
		{"Entrada", "WhatsApp / Email / API"},
		{"Twin Engine IA", "Cerebro Digital"},
		{"Automatización", "Ejecución 24/7"},
		{"Dashboard ROI", "Ventas & Ahorro"},
	}
	stats := []struct{ Value, Label string }{
		{"+200", "Procesos Automatizados"},
		{"85%", "Reducción Tiempo Operativo"},
		{"+$2.0M", "Ahorrados a Clientes"},
	}

	return Section(
		ID("motor"),
		Class("py-24 container mx-auto px-6"),
		sectionHeading("", "Cómo Nuestra IA Twin", "Clona tu Mejor Ejecutivo"),
		Div(Class("flex flex-wrap justify-center gap-3 -mt-8 mb-12"),
			g.Group(g.Map([]string{"GoHighLevel", "N8N", "Make", "WhatsApp API"}, func(s string) g.Node {
				return Span(Class("px-4 py-1 rounded-full bg-white/5 border border-white/10 text-sm"), g.Text(s))
			})),
		),
		Div(Class("grid grid-cols-2 md:grid-cols-4 gap-6"),
			g.Group(g.Map(steps, func(s struct{ Title, Caption string }) g.Node {
				return Div(Class("text-center p-6 rounded-2xl bg-white/5 border border-white/10"),
					Span(Class("block font-bold"), g.Text(s.Title)),
					Span(Class("block text-xs text-gray-400 mt-1"), g.Text(s.Caption)),
				)
			})),
		),
		Div(Class("grid md:grid-cols-3 gap-6 mt-12 text-center"),
			g.Group(g.Map(stats, func(s struct{ Value, Label string }) g.Node {
				return Div(
					Span(Class("block text-4xl font-extrabold text-primary"), g.Text(s.Value)),
					Span(Class("block text-sm text-gray-400"), g.Text(s.Label)),
				)
			})),
		),
	)
}

func Employees() g.Node {
	return Section(
		ID("equipo"),
		Class("py-24 container mx-auto px-6"),
		sectionHeading("STAFF DIGITAL ON-DEMAND", "Contrata a tu Nuevo", "Equipo Digital"),
		P(Class("text-center text-gray-400 max-w-2xl mx-auto -mt-10 mb-12"),
			g.Text("Olvídate de las cargas sociales, las vacaciones y las bajas médicas. Nuestros empleados IA trabajan 24/7, aprenden de tu negocio y escalan infinitamente."),
		),
		Div(Class("grid md:grid-cols-2 xl:grid-cols-4 gap-6"),
			g.Group(g.Map(employees, employeeCard)),
		),
	)
}

func employeeCard(e employee) g.Node {
	first := strings.Fields(e.Name)[0]
	hire := WhatsAppURL + "?text=" + url.PathEscape("Hola Twins, estoy interesado en contratar a "+e.Name)

	return Div(
		Class("relative p-6 rounded-2xl bg-white/5 border border-white/10 flex flex-col"),
		Div(Class("flex items-center gap-3"),
			Div(Class("w-14 h-14 rounded-xl bg-gradient-to-br "+e.Gradient)),
			Div(
				H3(Class("font-bold text-lg"), g.Text(e.Name)),
				Span(Class("text-xs font-bold px-2 py-1 rounded-full bg-white/10 uppercase"), g.Text(e.Role)),
			),
			Span(Class("ml-auto text-xs text-green-400"), g.Text("ONLINE")),
		),
		P(Class("mt-4 text-sm text-gray-300"), g.Text(e.Description)),
		P(Class("mt-4 text-xs font-bold text-gray-400"), g.Text("Capacidades:")),
		Ul(Class("mt-2 space-y-1 text-sm"),
			g.Group(g.Map(e.Skills, func(s string) g.Node { return Li(g.Text("✓ " + s)) })),
		),
		Div(Class("mt-auto pt-6 flex justify-between text-xs"),
			Span(Class("text-gray-400"), g.Text("Costo Humano Promedio:")),
			Span(Class("line-through text-red-400"), g.Text(e.Salary+"/mes")),
		),
		externalLink(hire,
			Class("mt-4 block text-center py-2 rounded-lg bg-white/10 hover:bg-white/20 font-bold text-sm"),
			g.Textf("Contratar a %s →", first),
		),
	)
}

func Services() g.Node {
	return Section(
		ID("servicios"),
		Class("py-24 container mx-auto px-6"),
		sectionHeading("Nuestro Arsenal", "Soluciones de", "Alto Impacto"),
		Div(Class("grid md:grid-cols-2 lg:grid-cols-3 gap-6"),
			g.Group(g.Map(services, func(s service) g.Node {
				return Div(
					Class("p-8 rounded-2xl bg-white/5 border border-white/10 flex flex-col"),
					Div(Class("h-1 w-12 rounded bg-gradient-to-r "+s.Gradient)),
					H3(Class("mt-4 text-xl font-bold"), g.Text(s.Title)),
					P(Class("mt-2 text-sm text-gray-400"), g.Text(s.Description)),
					g.If(s.VideoEmbed != "", Div(Class("mt-4 relative rounded-xl overflow-hidden"), g.Attr("style", "padding-top: 56.25%"),
						IFrame(Src(s.VideoEmbed), Class("absolute inset-0 w-full h-full"), g.Attr("allow", "autoplay; encrypted-media"), g.Attr("loading", "lazy"), g.Attr("title", s.Title)),
					)),
					Div(Class("mt-auto pt-4 flex flex-wrap gap-2"),
						g.Group(g.Map(s.Tags, func(t string) g.Node {
							return Span(Class("px-2 py-1 text-xs rounded bg-white/5 border border-white/10"), g.Text(t))
						})),
					),
				)
			})),
		),
	)
}

func Portfolio() g.Node {
	return Section(
		ID("portafolio"),
		Class("py-24 container mx-auto px-6"),
		sectionHeading("", "Resultados Reales", ""),
		P(Class("text-center text-gray-400 -mt-10 mb-12"), g.Text("Soluciones probadas en múltiples industrias. Sin teoría, solo facturación.")),
		Div(Class("grid md:grid-cols-2 lg:grid-cols-3 gap-6"),
			g.Group(g.Map(portfolio, func(c portfolioCase) g.Node {
				return Div(
					Class("rounded-2xl overflow-hidden bg-white/5 border border-white/10 flex flex-col"),
					Div(Class("relative h-48"),
						Img(Src(c.Image), Alt(c.Client), Class("w-full h-full object-cover"), g.Attr("loading", "lazy")),
						Span(Class("absolute top-3 left-3 px-2 py-1 text-xs rounded bg-dark/80"), g.Text(c.Category)),
						Span(Class("absolute bottom-3 left-3 font-bold"), g.Text(c.Client)),
					),
					Div(Class("p-6 flex flex-col gap-3 flex-1"),
						P(Class("text-xs font-bold text-red-400"), g.Text("PROBLEMA:")),
						P(Class("text-sm text-gray-300"), g.Text(c.Problem)),
						P(Class("text-xs font-bold text-green-400"), g.Text("SOLUCIÓN TWINS:")),
						P(Class("text-sm text-gray-300"), g.Text(c.Solution)),
						Div(Class("flex flex-wrap gap-2"),
							g.Group(g.Map(c.Metrics, func(m string) g.Node {
								return Span(Class("px-2 py-1 text-xs rounded bg-primary/20 text-primary font-bold"), g.Text(m))
							})),
						),
						externalLink(c.CTALink,
							Class("mt-auto block text-center py-3 rounded-lg bg-white/10 hover:bg-white/20 font-bold text-sm"),
							g.Text(c.CTAText),
						),
					),
				)
			})),
		),
	)
}

func Testimonials() g.Node {
	return Section(
		ID("testimonials"),
		Class("py-24 container mx-auto px-6"),
		sectionHeading("Confianza Total", "Latin Power ⚡", ""),
		P(Class("text-center text-gray-400 max-w-2xl mx-auto -mt-10 mb-12"),
			g.Text("No somos una agencia gringa traducida. Entendemos el mercado latino, sus retos y cómo vender aquí."),
		),
		Div(Class("grid md:grid-cols-3 gap-6"),
			g.Group(g.Map(testimonials, func(t testimonial) g.Node {
				return Div(
					Class("p-8 rounded-2xl bg-white/5 border border-white/10 flex flex-col"),
					Div(Class("text-yellow-400"), g.Text("★★★★★")),
					P(Class("mt-4 text-gray-300 italic"), g.Text("“"+t.Quote+"”")),
					Div(Class("mt-6 flex items-center gap-3"),
						Img(Src(t.Image), Alt(t.Author), Class("w-12 h-12 rounded-full")),
						Div(
							H4(Class("font-bold"), g.Text(t.Author)),
							Span(Class("text-xs text-gray-400"), g.Text(t.Role)),
						),
					),
					Span(Class("mt-4 self-start px-2 py-1 text-xs rounded bg-primary/20 text-primary"), g.Text(t.Highlight)),
				)
			})),
		),
		Div(Class("mt-16 p-8 rounded-2xl bg-white/5 border border-white/10 flex flex-col md:flex-row items-center justify-between gap-4"),
			Div(
				H4(Class("font-bold text-xl"), g.Text("Únete a la comunidad")),
				P(Class("text-gray-400"), g.Text("Más de 3,200 emprendedores automatizando en LATAM.")),
			),
			Div(Class("flex gap-3"),
				externalLink(InstagramURL, Class("px-4 py-2 rounded-lg bg-white/10"), g.Text("Instagram")),
				externalLink(LinkedInURL, Class("px-4 py-2 rounded-lg bg-white/10"), g.Text("LinkedIn")),
			),
		),
	)
}

func leadForm() g.Node {
	return IFrame(
		Src(LeadFormURL),
		ID(LeadFormID),
		g.Attr("title", "Web- Cliente potencial OR"),
		g.Attr("style", "width: 100%; height: 518px; border: none; border-radius: 12px"),
	)
}

func Contact() g.Node {
	return Section(
		ID("contact"),
		Class("py-24 container mx-auto px-6 grid md:grid-cols-2 gap-12 items-center"),
		Div(
			H2(Class("text-4xl md:text-5xl font-extrabold"),
				g.Text("¿Listo para"), Br(),
				Span(Class("text-primary"), g.Text("Automatizar?")),
			),
			P(Class("mt-4 text-gray-300"),
				g.Text("Agenda tu diagnóstico de automatización gratuito. Te entregaremos un roadmap claro de cómo ahorrar tiempo y dinero en 7 días."),
			),
			Ul(Class("mt-6 space-y-3"),
				g.Group(g.Map([]string{
					"Diagnóstico IA de tu negocio en 48h",
					"Demo personalizada por WhatsApp",
					"Plan de implementación 100% gratis",
				}, func(s string) g.Node { return Li(g.Text("✓ " + s)) })),
			),
		),
		Div(Class("rounded-2xl bg-white p-2"), leadForm()),
	)
}

func PageFooter() g.Node {
	return Footer(
		Class("py-12 border-t border-white/10"),
		Div(
			Class("container mx-auto px-6 flex flex-col md:flex-row justify-between gap-6"),
			Div(
				H3(Class("font-extrabold text-xl"), g.Text("TWINS DIGITAL"), Span(Class("text-primary"), g.Text(".IA"))),
				P(Class("text-gray-400 text-sm"), g.Text("Automatiza tu Negocio. Multiplica tus Resultados.")),
			),
			Div(Class("flex gap-4 text-sm"),
				externalLink(InstagramURL, g.Text("Instagram")),
				externalLink(FacebookURL, g.Text("Facebook")),
				externalLink(LinkedInURL, g.Text("LinkedIn")),
			),
		),
		Div(
			Class("container mx-auto px-6 mt-8 flex justify-between text-xs text-gray-500"),
			P(g.Raw("&copy; 2024 Twins Digital.IA. Todos los derechos reservados.")),
			A(Href(WhatsAppURL), g.Text("Contacto Directo")),
		),
	)
}

// LeadModal is the hidden dialog the "Agendar Demo" buttons open.
func LeadModal() g.Node {
	return Div(
		ID("lead-modal"),
		Class("fixed inset-0 z-[60] hidden items-center justify-center bg-black/70 p-4"),
		g.Attr("role", "dialog"),
		g.Attr("aria-modal", "true"),
		Div(
			Class("relative w-full max-w-lg rounded-2xl bg-white p-2"),
			Button(
				Type("button"),
				g.Attr("data-action", "close-lead"),
				g.Attr("aria-label", "Cerrar"),
				Class("absolute -top-10 right-0 text-white text-2xl"),
				g.Text("×"),
			),
			leadForm(),
		),
	)
}
