package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	g "maragu.dev/gomponents"

	"twins-digital-web/internal/apperror"
	"twins-digital-web/internal/catalog"
	"twins-digital-web/internal/intake"
	"twins-digital-web/internal/sse"
	"twins-digital-web/internal/staging"
	"twins-digital-web/internal/web/pages"
)

type imageView struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Sample   bool           `json:"sample"`
	Action   staging.Action `json:"action"`
	Status   staging.Status `json:"status"`
	Badge    staging.Badge  `json:"badge"`
	Original string         `json:"original_url"`
	Shown    string         `json:"shown_url"`
}

type settingsView struct {
	Audience catalog.Audience `json:"audience"`
	Tone     catalog.Tone     `json:"tone"`
	Length   catalog.Length   `json:"length"`
	Style    catalog.Style    `json:"style"`
}

type fragments struct {
	Images  string `json:"images"`
	Results string `json:"results"`
}

type demoState struct {
	Images     []imageView       `json:"images"`
	Index      int               `json:"index"`
	Running    bool              `json:"running"`
	ShowResult bool              `json:"show_result"`
	Caption    string            `json:"caption,omitempty"`
	Error      string            `json:"error,omitempty"`
	Settings   settingsView      `json:"settings"`
	HTML       fragments         `json:"html"`
	Rejected   []intake.Rejected `json:"rejected,omitempty"`
}

func (s *Server) state(snap staging.Snapshot) demoState {
	images := make([]imageView, len(snap.Images))
	for i, img := range snap.Images {
		images[i] = imageView{
			ID:       img.ID,
			Name:     img.Name,
			Sample:   img.Sample,
			Action:   img.Action,
			Status:   img.Status,
			Badge:    img.Badge(),
			Original: pages.ImageURL(img.ID, "original"),
			Shown:    pages.ImageURL(img.ID, "shown"),
		}
	}
	return demoState{
		Images:     images,
		Index:      snap.Index,
		Running:    snap.Running,
		ShowResult: snap.ShowResult,
		Caption:    snap.Caption,
		Error:      snap.Error,
		Settings: settingsView{
			Audience: snap.Settings.Audience,
			Tone:     snap.Settings.Tone,
			Length:   snap.Settings.Length,
			Style:    snap.Settings.Style,
		},
		HTML: fragments{
			Images:  render(pages.DemoImages(snap)),
			Results: render(pages.DemoResults(snap)),
		},
	}
}

func render(n g.Node) string {
	var b strings.Builder
	_ = n.Render(&b)
	return b.String()
}

func (s *Server) workspace(r *http.Request) *staging.Workspace {
	return s.workspaces.Get(visitorFrom(r.Context()))
}

func (s *Server) writeState(w http.ResponseWriter, status int, ws *staging.Workspace) {
	writeJSON(w, status, s.state(ws.Snapshot()))
}

func (s *Server) handleDemoState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, http.StatusOK, s.workspace(r))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Multipart framing overhead on top of the per-file limit.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes*8+(1<<20))
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apperror.Write(w, r, s.logger, apperror.ErrPayloadTooLarge)
			return
		}
		apperror.Write(w, r, s.logger, apperror.NewBadRequest("Formulario de carga inválido"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		apperror.Write(w, r, s.logger, apperror.NewBadRequest("No se recibió ninguna foto"))
		return
	}

	inputs, rejected := intake.FromMultipart(r.Context(), files, intake.Options{
		MaxBytes:    s.maxUploadBytes,
		Concurrency: s.uploadConcurrency,
		Logger:      s.logger,
	})

	ws := s.workspace(r)
	ws.Add(inputs...)

	state := s.state(ws.Snapshot())
	state.Rejected = rejected
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	if s.sample == nil || s.sampleURL == "" {
		apperror.Write(w, r, s.logger, apperror.ErrNotFound.WithMessage("No hay imagen de ejemplo configurada"))
		return
	}
	in, err := s.sample.FetchSample(r.Context(), s.sampleURL)
	if err != nil {
		apperror.Write(w, r, s.logger, apperror.ErrUpstream.WithMessage("No pudimos descargar la imagen de ejemplo").WithInternal(err))
		return
	}

	ws := s.workspace(r)
	ws.Add(in)
	s.writeState(w, http.StatusOK, ws)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	img, ok := s.workspace(r).Image(id)
	if !ok {
		apperror.Write(w, r, s.logger, apperror.NewNotFound("Imagen", id))
		return
	}

	var p staging.Payload
	switch chi.URLParam(r, "variant") {
	case "original":
		p = img.Original
	case "shown":
		p = img.Shown()
	default:
		apperror.Write(w, r, s.logger, apperror.NewBadRequest("Variante desconocida"))
		return
	}
	writeImage(w, p)
}

// writeImage only labels payloads with a raster image type; anything else
// goes out as an opaque octet stream.
func writeImage(w http.ResponseWriter, p staging.Payload) {
	mimeType := "image/png"
	if p.MimeType != "" {
		if canonical, ok := intake.Supported(p.MimeType); ok {
			mimeType = canonical
		} else {
			mimeType = "application/octet-stream"
		}
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Length", strconv.Itoa(len(p.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(p.Data)
}

type actionRequest struct {
	Action string `json:"action"`
}

func (s *Server) handleSetAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		apperror.Write(w, r, s.logger, apperror.NewBadRequest("JSON inválido"))
		return
	}
	action, err := staging.ParseAction(req.Action)
	if err != nil {
		apperror.Write(w, r, s.logger, apperror.NewBadRequest("Acción desconocida").WithInternal(err))
		return
	}

	id := chi.URLParam(r, "id")
	ws := s.workspace(r)
	if !ws.SetAction(id, action) {
		apperror.Write(w, r, s.logger, apperror.NewNotFound("Imagen", id))
		return
	}
	s.writeState(w, http.StatusOK, ws)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ws := s.workspace(r)
	if !ws.Remove(id) {
		apperror.Write(w, r, s.logger, apperror.NewNotFound("Imagen", id))
		return
	}
	s.writeState(w, http.StatusOK, ws)
}

type settingsRequest struct {
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
	Length   string `json:"length"`
	Style    string `json:"style"`
}

// settings parses the selectors; empty fields fall back to the defaults.
func (req settingsRequest) settings() (staging.Settings, error) {
	out := staging.DefaultSettings()
	var err error
	if strings.TrimSpace(req.Audience) != "" {
		if out.Audience, err = catalog.ParseAudience(req.Audience); err != nil {
			return out, err
		}
	}
	if strings.TrimSpace(req.Tone) != "" {
		if out.Tone, err = catalog.ParseTone(req.Tone); err != nil {
			return out, err
		}
	}
	if strings.TrimSpace(req.Length) != "" {
		if out.Length, err = catalog.ParseLength(req.Length); err != nil {
			return out, err
		}
	}
	if strings.TrimSpace(req.Style) != "" {
		if out.Style, err = catalog.ParseStyle(req.Style); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apperror.Write(w, r, s.logger, apperror.NewBadRequest("JSON inválido"))
		return
	}
	settings, err := req.settings()
	if err != nil {
		apperror.Write(w, r, s.logger, apperror.NewBadRequest(err.Error()))
		return
	}

	ws := s.workspace(r)
	if _, err := ws.Start(s.baseCtx, settings); err != nil {
		switch {
		case errors.Is(err, staging.ErrEmpty):
			apperror.Write(w, r, s.logger, apperror.ErrNoImages)
		case errors.Is(err, staging.ErrRunInProgress):
			apperror.Write(w, r, s.logger, apperror.ErrRunInProgress)
		default:
			apperror.Write(w, r, s.logger, apperror.ErrInternal.WithInternal(err))
		}
		return
	}

	s.logger.Info("generation started", "visitor", visitorFrom(r.Context()), "images", ws.Len())
	s.writeState(w, http.StatusAccepted, ws)
}

// handleEvents streams a "state" event after every workspace change, with
// keep-alive comments in between.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	stream := sse.NewWriter(w)
	if err := stream.Start(); err != nil {
		apperror.Write(w, r, s.logger, apperror.ErrStreamingUnavail.WithInternal(err))
		return
	}
	defer stream.Close()

	updates, unsubscribe := s.workspace(r).Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(s.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-updates:
			if !ok {
				_ = stream.WriteEvent("closed", map[string]string{"reason": "workspace closed"})
				return
			}
			if err := stream.WriteEvent("state", s.state(snap)); err != nil {
				s.logger.Debug("sse write failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := stream.WriteComment("keep-alive"); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleViewer(forward bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := s.workspace(r)
		if forward {
			ws.Next()
		} else {
			ws.Prev()
		}
		s.writeState(w, http.StatusOK, ws)
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	d, ok := s.workspace(r).Download()
	if !ok {
		apperror.Write(w, r, s.logger, apperror.ErrNoImages.WithMessage("No hay ninguna imagen para descargar"))
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Filename))
	writeImage(w, d.Payload)
}

func (s *Server) handleDismissError(w http.ResponseWriter, r *http.Request) {
	ws := s.workspace(r)
	ws.DismissError()
	s.writeState(w, http.StatusOK, ws)
}

// handleCaption previews the ad copy for a selector triple without running
// the pipeline.
func (s *Server) handleCaption(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apperror.Write(w, r, s.logger, apperror.NewBadRequest("JSON inválido"))
		return
	}
	settings, err := req.settings()
	if err != nil {
		apperror.Write(w, r, s.logger, apperror.NewBadRequest(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"caption": s.catalog.Caption(settings.Audience, settings.Tone, settings.Length)})
}
