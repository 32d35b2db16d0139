package pages

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"twins-digital-web/internal/assistant"
)

const ChatMessagesID = "chat-messages"

func ChatWidget(turns []assistant.Turn) g.Node {
	return Div(
		ID("chat-widget"),
		Class("fixed bottom-6 right-6 z-50"),
		Div(
			ID("chat-panel"),
			Class("hidden mb-4 w-80 sm:w-96 h-[480px] rounded-2xl bg-dark border border-white/10 shadow-2xl flex-col overflow-hidden"),
			Div(
				Class("flex items-center justify-between px-4 py-3 bg-gradient-to-r from-primary to-secondary"),
				Div(
					P(Class("font-bold text-sm"), g.Text("Asistente Twins")),
					P(Class("text-xs opacity-80"), g.Text("En línea")),
				),
				Div(
					Class("flex gap-2"),
					Button(Type("button"), g.Attr("data-action", "chat-reset"), g.Attr("aria-label", "Reiniciar"), Class("text-sm"), g.Text("↺")),
					Button(Type("button"), g.Attr("data-action", "chat-toggle"), g.Attr("aria-label", "Cerrar"), Class("text-lg"), g.Text("×")),
				),
			),
			Div(
				ID(ChatMessagesID),
				Class("flex-1 overflow-y-auto p-4 space-y-3"),
				ChatMessages(turns, false),
			),
			Form(
				ID("chat-form"),
				Class("p-3 border-t border-white/10 flex gap-2"),
				Input(
					Name("message"),
					Type("text"),
					g.Attr("autocomplete", "off"),
					Placeholder("Escribe tu pregunta..."),
					Class("flex-1 rounded-lg bg-white/5 border border-white/10 px-3 py-2 text-sm"),
				),
				Button(Type("submit"), Class("px-3 py-2 rounded-lg bg-primary text-sm font-bold"), g.Text("Enviar")),
			),
		),
		Button(
			Type("button"),
			g.Attr("data-action", "chat-toggle"),
			g.Attr("aria-label", "Abrir chat"),
			Class("ml-auto block w-14 h-14 rounded-full bg-gradient-to-br from-primary to-secondary shadow-lg text-2xl"),
			g.Text("💬"),
		),
	)
}

// ChatMessages renders the transcript; typing adds the pending indicator.
func ChatMessages(turns []assistant.Turn, typing bool) g.Node {
	return g.Group([]g.Node{
		g.Group(g.Map(turns, chatBubble)),
		g.If(typing, Div(
			ID("chat-typing"),
			Class("flex"),
			Span(Class("px-3 py-2 rounded-2xl bg-white/10 text-sm animate-pulse"), g.Text("...")),
		)),
	})
}

func chatBubble(t assistant.Turn) g.Node {
	user := t.Role == assistant.RoleUser
	row := "flex"
	bubble := "max-w-[85%] px-3 py-2 rounded-2xl text-sm whitespace-pre-line "
	if user {
		row += " justify-end"
		bubble += "bg-primary text-white rounded-br-sm"
	} else {
		bubble += "bg-white/10 text-gray-100 rounded-bl-sm"
	}

	return Div(
		Class(row),
		g.Attr("data-role", t.Role),
		P(Class(bubble), g.Group(g.Map(assistant.Segments(t.Text), func(s assistant.Segment) g.Node {
			if s.Href == "" {
				return g.Text(s.Text)
			}
			return externalLink(s.Href, Class("underline break-all"), g.Text(s.Text))
		}))),
	)
}
