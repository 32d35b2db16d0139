package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twins-digital-web/internal/assistant"
	"twins-digital-web/internal/catalog"
	"twins-digital-web/internal/gemini"
	"twins-digital-web/internal/mediagroup"
	"twins-digital-web/internal/staging"
)

var (
	jpegBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngBytes  = []byte("\x89PNG\r\n\x1a\nresult")
)

type sentPhoto struct {
	Data    []byte
	Caption string
}

type fakeMessenger struct {
	mu     sync.Mutex
	texts  []string
	photos []sentPhoto
	files  map[string][]byte
}

func (f *fakeMessenger) SendText(_ int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeMessenger) SendPhoto(_ int64, data []byte, _ string, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos = append(f.photos, sentPhoto{Data: data, Caption: caption})
	return nil
}

func (f *fakeMessenger) SendTyping(int64) {}

func (f *fakeMessenger) sent() ([]string, []sentPhoto) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...), append([]sentPhoto(nil), f.photos...)
}

func (f *fakeMessenger) DownloadFile(_ context.Context, fileID string) ([]byte, string, error) {
	data, ok := f.files[fileID]
	if !ok {
		return nil, "", errors.New("file not found")
	}
	return data, "application/octet-stream", nil
}

type fakeChatter struct {
	reply string
	err   error
}

func (f fakeChatter) Chat(context.Context, gemini.ChatRequest) (gemini.Response, error) {
	return gemini.Response{Text: f.reply}, f.err
}

type instructionLog struct {
	mu           sync.Mutex
	instructions []string
}

func (l *instructionLog) transformer() staging.Transformer {
	return staging.TransformerFunc(func(_ context.Context, _ staging.Payload, instruction string) (staging.Payload, error) {
		l.mu.Lock()
		l.instructions = append(l.instructions, instruction)
		l.mu.Unlock()
		return staging.Payload{Data: pngBytes, MimeType: "image/png"}, nil
	})
}

func newHandler(t *testing.T, chatter assistant.Chatter, transformer staging.Transformer) (*Handler, *fakeMessenger) {
	t.Helper()
	tg := &fakeMessenger{files: map[string][]byte{"f1": jpegBytes, "f2": jpegBytes, "doc": []byte("plain text")}}
	h := New(Options{
		Telegram:   tg,
		Chats:      assistant.NewStore(assistant.Options{Chatter: chatter}),
		Workspaces: staging.NewStore(staging.Options{Transformer: transformer}),
		Catalog:    catalog.Default(),
	})
	return h, tg
}

func command(text string) tgbotapi.Update {
	cmdLen := len(text)
	for i, r := range text {
		if r == ' ' {
			cmdLen = i
			break
		}
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 10},
		From:     &tgbotapi.User{ID: 20},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}}
}

func TestAnuncio_BuildsCaption(t *testing.T) {
	h, tg := newHandler(t, fakeChatter{}, nil)

	require.NoError(t, h.HandleUpdate(context.Background(), command("/anuncio inversionista lujo corto")))

	require.Len(t, tg.texts, 1)
	assert.Equal(t, catalog.Default().Caption(catalog.AudienceInvestor, catalog.ToneLuxury, catalog.LengthShort), tg.texts[0])
}

func TestAnuncio_DefaultsAndUnknownWords(t *testing.T) {
	h, tg := newHandler(t, fakeChatter{}, nil)

	require.NoError(t, h.HandleUpdate(context.Background(), command("/anuncio")))
	require.NoError(t, h.HandleUpdate(context.Background(), command("/anuncio marciano")))

	require.Len(t, tg.texts, 2)
	assert.Equal(t, catalog.Default().Caption(catalog.DefaultAudience, catalog.DefaultTone, catalog.DefaultLength), tg.texts[0])
	assert.Contains(t, tg.texts[1], "marciano")
	assert.Contains(t, tg.texts[1], "Uso: /anuncio")
}

func TestText_RepliesThroughAssistant(t *testing.T) {
	h, tg := newHandler(t, fakeChatter{reply: "Te ayudamos con eso."}, nil)

	update := tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "Quiero automatizar mi inmobiliaria",
		Chat: &tgbotapi.Chat{ID: 10},
		From: &tgbotapi.User{ID: 20},
	}}
	require.NoError(t, h.HandleUpdate(context.Background(), update))

	assert.Equal(t, []string{"Te ayudamos con eso."}, tg.texts)
	assert.Len(t, h.chats.Get(userKey(20)).Transcript(), 3)
}

func TestText_FailureSendsFallback(t *testing.T) {
	var outcomes []string
	h, tg := newHandler(t, fakeChatter{err: errors.New("boom")}, nil)
	h.chatAnswered = func(o string) { outcomes = append(outcomes, o) }

	update := tgbotapi.Update{Message: &tgbotapi.Message{Text: "hola", Chat: &tgbotapi.Chat{ID: 10}, From: &tgbotapi.User{ID: 20}}}
	require.NoError(t, h.HandleUpdate(context.Background(), update))

	assert.Equal(t, []string{assistant.FallbackErrorReply}, tg.texts)
	assert.Equal(t, []string{"error"}, outcomes)
}

func TestClear_ResetsConversation(t *testing.T) {
	h, tg := newHandler(t, fakeChatter{reply: "ok"}, nil)
	_, _ = h.chats.Get(userKey(20)).Send(context.Background(), "hola")

	require.NoError(t, h.HandleUpdate(context.Background(), command("/clear")))

	assert.Len(t, h.chats.Get(userKey(20)).Transcript(), 1)
	assert.Contains(t, tg.texts[len(tg.texts)-1], "reiniciada")
}

func TestPhoto_RunsStagingWithCaptionDirectives(t *testing.T) {
	var log instructionLog
	h, tg := newHandler(t, fakeChatter{}, log.transformer())

	update := tgbotapi.Update{Message: &tgbotapi.Message{
		Caption: "vaciar, público inversionista",
		Chat:    &tgbotapi.Chat{ID: 10},
		From:    &tgbotapi.User{ID: 20},
		Photo:   []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "f1"}},
	}}
	require.NoError(t, h.HandleUpdate(context.Background(), update))

	require.Len(t, log.instructions, 1)
	assert.Equal(t, catalog.Default().EmptyInstruction(), log.instructions[0])

	require.Len(t, tg.photos, 1)
	assert.Equal(t, pngBytes, tg.photos[0].Data)
	assert.Equal(t, "LIMPIEZA IA · 1/1", tg.photos[0].Caption)

	last := tg.texts[len(tg.texts)-1]
	assert.Contains(t, last, catalog.Default().Caption(catalog.AudienceInvestor, catalog.DefaultTone, catalog.DefaultLength))

	_, ok := h.workspaces.Lookup(userKey(20))
	assert.False(t, ok, "workspace is released after the run")
}

func TestMediaGroup_FurnishesEveryPhotoWithStyle(t *testing.T) {
	var log instructionLog
	h, tg := newHandler(t, fakeChatter{}, log.transformer())

	h.HandleMediaGroup(context.Background(), mediagroup.Group{
		ChatID:  10,
		UserID:  20,
		Caption: "estilo industrial",
		FileIDs: []string{"f1", "f2"},
	})

	want := catalog.Default().FurnishInstruction(catalog.StyleIndustrial)
	assert.Equal(t, []string{want, want}, log.instructions)
	require.Len(t, tg.photos, 2)
	assert.Equal(t, "VIRTUAL STAGING · 2/2", tg.photos[1].Caption)
}

func TestPhoto_OriginalSkipsRemoteCalls(t *testing.T) {
	var log instructionLog
	h, tg := newHandler(t, fakeChatter{}, log.transformer())

	h.HandleMediaGroup(context.Background(), mediagroup.Group{ChatID: 10, UserID: 20, Caption: "original", FileIDs: []string{"f1"}})

	assert.Empty(t, log.instructions)
	require.Len(t, tg.photos, 1)
	assert.Equal(t, jpegBytes, tg.photos[0].Data)
	assert.Equal(t, "ORIGINAL · 1/1", tg.photos[0].Caption)
}

func TestPhoto_RejectsNonImage(t *testing.T) {
	var log instructionLog
	h, tg := newHandler(t, fakeChatter{}, log.transformer())

	h.HandleMediaGroup(context.Background(), mediagroup.Group{ChatID: 10, UserID: 20, FileIDs: []string{"doc"}})

	assert.Empty(t, log.instructions)
	assert.Empty(t, tg.photos)
	assert.Contains(t, tg.texts[0], "no es una imagen")
}

func TestPhoto_FailedItemReported(t *testing.T) {
	failing := staging.TransformerFunc(func(context.Context, staging.Payload, string) (staging.Payload, error) {
		return staging.Payload{}, staging.ErrNoImage
	})
	h, tg := newHandler(t, fakeChatter{}, failing)

	h.HandleMediaGroup(context.Background(), mediagroup.Group{ChatID: 10, UserID: 20, FileIDs: []string{"f1"}})

	assert.Empty(t, tg.photos)
	assert.Contains(t, tg.texts, "❌ ERROR IA · 1/1")
}

func TestPhoto_SecondJobFromSameUserIsRefused(t *testing.T) {
	called := make(chan struct{}, 4)
	release := make(chan struct{})
	gated := staging.TransformerFunc(func(ctx context.Context, _ staging.Payload, _ string) (staging.Payload, error) {
		called <- struct{}{}
		select {
		case <-release:
		case <-ctx.Done():
			return staging.Payload{}, ctx.Err()
		}
		return staging.Payload{Data: pngBytes, MimeType: "image/png"}, nil
	})
	h, tg := newHandler(t, fakeChatter{}, gated)

	done := make(chan error, 1)
	go func() {
		done <- h.processPhotos(context.Background(), 10, 20, "", []string{"f1"})
	}()
	<-called

	require.NoError(t, h.processPhotos(context.Background(), 10, 20, "", []string{"f2"}))
	texts, photos := tg.sent()
	assert.Contains(t, texts, busyText)
	assert.Empty(t, photos)

	assert.True(t, h.reserve(userKey(21)), "other users are not blocked")
	h.release(userKey(21))

	close(release)
	require.NoError(t, <-done)

	texts, photos = tg.sent()
	require.Len(t, photos, 1)
	assert.Equal(t, "VIRTUAL STAGING · 1/1", photos[0].Caption)
	copies := 0
	for _, text := range texts {
		if strings.HasPrefix(text, "📝 Copy Sugerido") {
			copies++
		}
	}
	assert.Equal(t, 1, copies)

	require.NoError(t, h.processPhotos(context.Background(), 10, 20, "", []string{"f2"}))
	_, photos = tg.sent()
	assert.Len(t, photos, 2, "the slot is released once the job ends")
}

func TestPhoto_ClearMidRunDoesNotLeakIntoNextJob(t *testing.T) {
	called := make(chan struct{}, 4)
	gated := staging.TransformerFunc(func(ctx context.Context, _ staging.Payload, _ string) (staging.Payload, error) {
		called <- struct{}{}
		<-ctx.Done()
		return staging.Payload{}, ctx.Err()
	})
	h, tg := newHandler(t, fakeChatter{}, gated)

	done := make(chan error, 1)
	go func() {
		done <- h.processPhotos(context.Background(), 10, 20, "", []string{"f1"})
	}()
	<-called

	require.NoError(t, h.HandleUpdate(context.Background(), command("/clear")))
	require.NoError(t, <-done)

	_, photos := tg.sent()
	assert.Empty(t, photos)
	_, ok := h.workspaces.Lookup(userKey(20))
	assert.False(t, ok)
}

func TestParseRequest(t *testing.T) {
	req := parseRequest("Vacía la sala, estilo Nórdico, tono PROFESIONAL largo")

	assert.Equal(t, staging.ActionEmpty, req.Action)
	assert.Equal(t, catalog.StyleNordic, req.Settings.Style)
	assert.Equal(t, catalog.ToneProfessional, req.Settings.Tone)
	assert.Equal(t, catalog.LengthLong, req.Settings.Length)
	assert.Equal(t, catalog.DefaultAudience, req.Settings.Audience)
	assert.Equal(t, []string{"la", "sala", "estilo", "tono"}, req.Unknown)

	assert.Equal(t, staging.ActionFurnish, parseRequest("").Action)
}
