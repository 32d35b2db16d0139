package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"twins-digital-web/internal/apperror"
	"twins-digital-web/internal/assistant"
	"twins-digital-web/internal/web/pages"
)

type turnView struct {
	Role     string              `json:"role"`
	Text     string              `json:"text"`
	Segments []assistant.Segment `json:"segments"`
	At       time.Time           `json:"at"`
}

type chatResponse struct {
	Reply      string     `json:"reply,omitempty"`
	Transcript []turnView `json:"transcript"`
	HTML       string     `json:"html"`
}

func chatState(turns []assistant.Turn, reply string) chatResponse {
	views := make([]turnView, len(turns))
	for i, t := range turns {
		views[i] = turnView{Role: t.Role, Text: t.Text, Segments: assistant.Segments(t.Text), At: t.At}
	}
	return chatResponse{
		Reply:      reply,
		Transcript: views,
		HTML:       render(pages.ChatMessages(turns, false)),
	}
}

func (s *Server) session(r *http.Request) *assistant.Session {
	return s.chats.Get(visitorFrom(r.Context()))
}

func (s *Server) handleChatTranscript(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chatState(s.session(r).Transcript(), ""))
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes)).Decode(&req); err != nil {
		apperror.Write(w, r, s.logger, apperror.NewBadRequest("JSON inválido"))
		return
	}

	sess := s.session(r)
	reply, err := sess.Send(r.Context(), req.Message)
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		apperror.Write(w, r, s.logger, apperror.NewBadRequest("El mensaje está vacío"))
		return
	case err != nil:
		// The fallback reply is already in the transcript.
		s.chatAnswered("error")
		s.logger.Warn("chat reply failed", "visitor", visitorFrom(r.Context()), "err", err)
	case reply == assistant.FallbackEmptyReply:
		s.chatAnswered("empty")
	default:
		s.chatAnswered("ok")
	}

	writeJSON(w, http.StatusOK, chatState(sess.Transcript(), reply))
}

func (s *Server) handleChatReset(w http.ResponseWriter, r *http.Request) {
	s.chats.Reset(visitorFrom(r.Context()))
	writeJSON(w, http.StatusOK, chatState(s.session(r).Transcript(), ""))
}

func (s *Server) chatAnswered(outcome string) {
	if s.metrics != nil {
		s.metrics.ChatAnswered(outcome)
	}
}
