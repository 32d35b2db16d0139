package pages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"twins-digital-web/internal/assistant"
	"twins-digital-web/internal/catalog"
	"twins-digital-web/internal/staging"
)

func renderString(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func jpeg(b byte) staging.Payload {
	return staging.Payload{Data: []byte{0xff, 0xd8, 0xff, b}, MimeType: "image/jpeg"}
}

func TestHome_RendersEverySection(t *testing.T) {
	welcome := []assistant.Turn{{Role: assistant.RoleModel, Text: assistant.WelcomeMessage, Local: true}}
	snap := staging.Snapshot{Settings: staging.DefaultSettings()}

	out := renderString(t, Home(catalog.Default(), snap, welcome))

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	for _, id := range []string{"navbar", "hero", "problema", "motor", "equipo", "servicios", "demo-ia", "portafolio", "testimonials", "contact", "chat-widget", "lead-modal"} {
		assert.Contains(t, out, `id="`+id+`"`, id)
	}
	assert.Contains(t, out, "Transformar Fotos")
	assert.Contains(t, out, "Esperando input...")
	assert.Contains(t, out, "Haz clic para subir fotos")
	assert.Contains(t, out, assistant.WelcomeMessage)
	assert.Contains(t, out, `src="/static/app.js"`)
	assert.Contains(t, out, LeadFormURL)
}

func TestDemoSection_SelectsCurrentSettings(t *testing.T) {
	snap := staging.Snapshot{Settings: staging.Settings{
		Audience: catalog.AudienceInvestor,
		Tone:     catalog.ToneLuxury,
		Length:   catalog.LengthLong,
		Style:    catalog.StyleIndustrial,
	}}

	out := renderString(t, DemoSection(catalog.Default(), snap))

	assert.Contains(t, out, `value="investor" selected`)
	assert.Contains(t, out, `value="luxury" selected`)
	assert.Contains(t, out, `value="long" selected`)
	assert.Contains(t, out, `value="industrial" selected`)
	assert.Contains(t, out, "disabled", "generate is disabled without images")
}

func TestDemoImages_EmptyShowsUploadPrompt(t *testing.T) {
	out := renderString(t, DemoImages(staging.Snapshot{}))

	assert.Contains(t, out, "O usa un ejemplo")
	assert.Contains(t, out, `data-action="sample"`)
	assert.NotContains(t, out, "Subir más fotos")
}

func TestDemoImages_ListsImagesWithActions(t *testing.T) {
	snap := staging.Snapshot{Images: []staging.Image{
		{ID: "a", Name: "sala.jpg", Original: jpeg(1), Action: staging.ActionEmpty, Status: staging.StatusPending},
		{ID: "b", Name: "cocina.jpg", Original: jpeg(2), Action: staging.ActionFurnish, Status: staging.StatusProcessing},
	}}

	out := renderString(t, DemoImages(snap))

	assert.Contains(t, out, `data-image-id="a"`)
	assert.Contains(t, out, `data-image-id="b"`)
	assert.Contains(t, out, `src="/api/demo/images/a/original"`)
	assert.Contains(t, out, `value="empty" selected`)
	assert.Contains(t, out, "¿Qué debe hacer la IA?")
	assert.Contains(t, out, "PROCESANDO...")
	assert.Contains(t, out, "Subir más fotos")
}

func TestDemoResults(t *testing.T) {
	result := jpeg(9)
	tests := []struct {
		name   string
		snap   staging.Snapshot
		want   []string
		absent []string
	}{
		{
			name: "waiting",
			snap: staging.Snapshot{},
			want: []string{"Esperando input..."},
		},
		{
			name: "generating before reveal",
			snap: staging.Snapshot{
				Running: true,
				Images:  []staging.Image{{ID: "a", Status: staging.StatusDone}, {ID: "b", Status: staging.StatusPending}},
			},
			want:   []string{"IA Regenerando Píxeles...", "1 / 2"},
			absent: []string{"Imagen Generada"},
		},
		{
			name: "transformed",
			snap: staging.Snapshot{
				ShowResult: true,
				Caption:    "Hermoso apartamento.",
				Images: []staging.Image{
					{ID: "a", Action: staging.ActionFurnish, Status: staging.StatusDone, Result: &result},
				},
			},
			want:   []string{"Imagen Generada", "VIRTUAL STAGING", "Imagen generada exitosamente con Gemini Vision.", "Copy Sugerido", "Hermoso apartamento.", "Implementar ahora", "/api/demo/download"},
			absent: []string{`data-action="prev"`, `data-action="next"`},
		},
		{
			name: "original shown with navigation",
			snap: staging.Snapshot{
				ShowResult: true,
				Index:      1,
				Images: []staging.Image{
					{ID: "a", Action: staging.ActionFurnish, Status: staging.StatusDone, Result: &result},
					{ID: "b", Action: staging.ActionNone, Status: staging.StatusDone},
					{ID: "c", Action: staging.ActionEmpty, Status: staging.StatusError},
				},
			},
			want: []string{"ORIGINAL", "Visualizando imagen original.", "2 / 3", `data-action="prev"`, `data-action="next"`, "/api/demo/images/b/shown"},
		},
		{
			name: "failed item",
			snap: staging.Snapshot{
				ShowResult: true,
				Images:     []staging.Image{{ID: "a", Action: staging.ActionEmpty, Status: staging.StatusError}},
			},
			want: []string{"ERROR IA"},
		},
		{
			name: "run error",
			snap: staging.Snapshot{Error: "No pudimos conectar con la IA. Por favor verifica tu conexión."},
			want: []string{`role="alert"`, "No pudimos conectar con la IA.", `data-action="dismiss-error"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderString(t, DemoResults(tt.snap))
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out, a)
			}
		})
	}
}

func TestChatMessages_LinksURLs(t *testing.T) {
	turns := []assistant.Turn{
		{Role: assistant.RoleUser, Text: "hola"},
		{Role: assistant.RoleModel, Text: "Escríbenos: https://wa.me/573024310220 ahora"},
	}

	out := renderString(t, ChatMessages(turns, true))

	assert.Contains(t, out, `data-role="user"`)
	assert.Contains(t, out, `data-role="model"`)
	assert.Contains(t, out, `href="https://wa.me/573024310220"`)
	assert.Contains(t, out, "Escríbenos: ")
	assert.Contains(t, out, `id="chat-typing"`)
}

func TestChatMessages_EscapesText(t *testing.T) {
	out := renderString(t, ChatMessages([]assistant.Turn{{Role: assistant.RoleUser, Text: "<script>x</script>"}}, false))

	assert.NotContains(t, out, "<script>x")
	assert.Contains(t, out, "&lt;script&gt;")
}
