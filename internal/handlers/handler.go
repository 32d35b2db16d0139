// Package handlers turns Telegram updates into assistant conversations and
// staging runs.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"twins-digital-web/internal/assistant"
	"twins-digital-web/internal/catalog"
	"twins-digital-web/internal/intake"
	"twins-digital-web/internal/mediagroup"
	"twins-digital-web/internal/staging"
	"twins-digital-web/internal/telegram"
)

// Messenger is the part of the Telegram client the handlers use.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendPhoto(chatID int64, data []byte, mimeType string, caption string) error
	SendTyping(chatID int64)
	DownloadFile(ctx context.Context, fileID string) ([]byte, string, error)
}

var _ Messenger = (*telegram.Client)(nil)

type Options struct {
	Telegram   Messenger
	Chats      *assistant.Store
	Workspaces *staging.Store
	Catalog    *catalog.Catalog
	Logger     *slog.Logger
	// ChatAnswered, when set, is told the outcome of every assistant reply.
	ChatAnswered func(outcome string)
}

type Handler struct {
	tg           Messenger
	chats        *assistant.Store
	workspaces   *staging.Store
	catalog      *catalog.Catalog
	logger       *slog.Logger
	chatAnswered func(string)
	aggregator   *mediagroup.Aggregator

	jobsMu sync.Mutex
	jobs   map[string]struct{}
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	return &Handler{
		tg:           opts.Telegram,
		chats:        opts.Chats,
		workspaces:   opts.Workspaces,
		catalog:      cat,
		logger:       logger,
		chatAnswered: opts.ChatAnswered,
		jobs:         make(map[string]struct{}),
	}
}

func (h *Handler) SetMediaGroupAggregator(ag *mediagroup.Aggregator) {
	h.aggregator = ag
}

// reserve claims the single photo job slot of a user. It reports false when
// a job for key is already underway.
func (h *Handler) reserve(key string) bool {
	h.jobsMu.Lock()
	defer h.jobsMu.Unlock()

	if _, busy := h.jobs[key]; busy {
		return false
	}
	h.jobs[key] = struct{}{}
	return true
}

func (h *Handler) release(key string) {
	h.jobsMu.Lock()
	defer h.jobsMu.Unlock()
	delete(h.jobs, key)
}

func userKey(userID int64) string {
	return "tg:" + strconv.FormatInt(userID, 10)
}

func (h *Handler) HandleUpdate(ctx context.Context, update telegram.Update) error {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.From == nil {
		return nil
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.IsCommand() {
		return h.handleCommand(chatID, userID, msg)
	}

	if len(msg.Photo) > 0 {
		return h.handlePhoto(ctx, chatID, userID, msg)
	}

	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return h.processPhotos(ctx, chatID, userID, msg.Caption, []string{msg.Document.FileID})
	}

	if msg.Text != "" {
		return h.handleText(ctx, chatID, userID, msg.Text)
	}

	return nil
}

// HandleMediaGroup processes one flushed album.
func (h *Handler) HandleMediaGroup(ctx context.Context, group mediagroup.Group) {
	if err := h.processPhotos(ctx, group.ChatID, group.UserID, group.Caption, group.FileIDs); err != nil {
		h.logger.Error("media group processing failed", "chat_id", group.ChatID, "err", err)
	}
}

func (h *Handler) handleCommand(chatID, userID int64, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return h.tg.SendText(chatID, assistant.WelcomeMessage+"\n\n"+helpText)
	case "help":
		return h.tg.SendText(chatID, helpText)
	case "clear":
		key := userKey(userID)
		h.chats.Reset(key)
		h.workspaces.Drop(key)
		return h.tg.SendText(chatID, "✅ Conversación reiniciada.")
	case "anuncio":
		req := parseRequest(msg.CommandArguments())
		if len(req.Unknown) > 0 {
			return h.tg.SendText(chatID, fmt.Sprintf("❌ No entendí: %s\n\n%s", strings.Join(req.Unknown, ", "), anuncioUsage))
		}
		s := req.Settings
		return h.tg.SendText(chatID, h.catalog.Caption(s.Audience, s.Tone, s.Length))
	default:
		return h.tg.SendText(chatID, "❌ Comando desconocido. Usa /help.")
	}
}

func (h *Handler) handleText(ctx context.Context, chatID, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	h.tg.SendTyping(chatID)

	reply, err := h.chats.Get(userKey(userID)).Send(ctx, text)
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		return nil
	case err != nil:
		h.logger.Error("assistant reply failed", "chat_id", chatID, "err", err)
		h.recordChat("error")
	case reply == assistant.FallbackEmptyReply:
		h.recordChat("empty")
	default:
		h.recordChat("ok")
	}

	return h.tg.SendText(chatID, reply)
}

func (h *Handler) recordChat(outcome string) {
	if h.chatAnswered != nil {
		h.chatAnswered(outcome)
	}
}

func (h *Handler) handlePhoto(ctx context.Context, chatID, userID int64, msg *tgbotapi.Message) error {
	photo := msg.Photo[len(msg.Photo)-1]
	fileID := photo.FileID

	if msg.MediaGroupID != "" && h.aggregator != nil {
		h.aggregator.Add(mediagroup.Item{
			ChatID:       chatID,
			UserID:       userID,
			MediaGroupID: msg.MediaGroupID,
			Caption:      msg.Caption,
			FileID:       fileID,
		})
		return nil
	}

	return h.processPhotos(ctx, chatID, userID, msg.Caption, []string{fileID})
}

// processPhotos runs one staging pass over the photos. Every photo gets the
// action and style parsed from the caption; results go back one photo per
// message and the ad copy is sent last.
func (h *Handler) processPhotos(ctx context.Context, chatID, userID int64, caption string, fileIDs []string) error {
	key := userKey(userID)
	if !h.reserve(key) {
		return h.tg.SendText(chatID, busyText)
	}
	defer h.release(key)

	h.tg.SendTyping(chatID)

	downloads := make([]staging.Input, len(fileIDs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, fileID := range fileIDs {
		i, fileID := i, fileID
		eg.Go(func() error {
			data, declared, err := h.tg.DownloadFile(egCtx, fileID)
			if err != nil {
				return err
			}
			in, err := intake.FromBytes(fmt.Sprintf("Foto %d", i+1), data, declared)
			if err != nil {
				return err
			}
			downloads[i] = in
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		h.logger.Error("photo download failed", "chat_id", chatID, "err", err)
		if errors.Is(err, intake.ErrNotImage) {
			return h.tg.SendText(chatID, "❌ Uno de los archivos no es una imagen válida.")
		}
		return h.tg.SendText(chatID, "❌ No pude descargar tus fotos. Intenta de nuevo.")
	}

	req := parseRequest(caption)

	// Each album starts from a clean workspace. /clear may still close it
	// mid-run, so cleanup only drops the one created here.
	ws := h.workspaces.Replace(key)
	defer h.workspaces.DropIf(key, ws)

	for _, img := range ws.Add(downloads...) {
		ws.SetAction(img.ID, req.Action)
	}

	_ = h.tg.SendText(chatID, fmt.Sprintf("🎨 Generando con IA %d foto(s)... puede tardar 10-15 segundos por foto.", len(downloads)))

	copyText, err := ws.Generate(ctx, req.Settings)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		h.logger.Error("staging run failed", "chat_id", chatID, "err", err)
		return h.tg.SendText(chatID, "❌ No pude iniciar la generación.")
	}

	snap := ws.Snapshot()
	for i, img := range snap.Images {
		label := fmt.Sprintf("%s · %d/%d", badgeText[img.Badge()], i+1, len(snap.Images))
		if img.Status == staging.StatusError {
			if sendErr := h.tg.SendText(chatID, "❌ "+label); sendErr != nil {
				return sendErr
			}
			continue
		}
		shown := img.Shown()
		if sendErr := h.tg.SendPhoto(chatID, shown.Data, shown.MimeType, label); sendErr != nil {
			return sendErr
		}
	}

	if snap.Error != "" {
		_ = h.tg.SendText(chatID, "⚠️ "+snap.Error)
	}
	return h.tg.SendText(chatID, "📝 Copy Sugerido:\n\n"+copyText)
}

var badgeText = map[staging.Badge]string{
	staging.BadgeProcessing: "PROCESANDO",
	staging.BadgeError:      "ERROR IA",
	staging.BadgeStaging:    "VIRTUAL STAGING",
	staging.BadgeCleanup:    "LIMPIEZA IA",
	staging.BadgeOriginal:   "ORIGINAL",
}

const busyText = "⏳ Ya estoy procesando tus fotos anteriores. Espera un momento."

const anuncioUsage = "Uso: /anuncio <público> <tono> <longitud>\n" +
	"Público: familia, inversionista, soltero\n" +
	"Tono: profesional, emocional, lujo\n" +
	"Longitud: corto, medio, largo"

const helpText = "🏠 Twins Digital.IA\n\n" +
	"Escríbeme y te cuento cómo automatizar tu negocio.\n\n" +
	"📸 Envía una o varias fotos de un inmueble y las transformo con IA.\n" +
	"En el texto de la foto puedes indicar:\n" +
	"• acción: amueblar (por defecto), vaciar u original\n" +
	"• estilo: nórdico, moderno o industrial\n" +
	"• público, tono y longitud del anuncio\n\n" +
	"Comandos:\n" +
	"/anuncio <público> <tono> <longitud> - Genera el copy del anuncio\n" +
	"/clear - Reinicia la conversación\n" +
	"/help - Muestra esta ayuda"
