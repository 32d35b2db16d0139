package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"twins-digital-web/internal/gemini"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

var ErrEmptyMessage = errors.New("assistant: message is empty")

// Chatter is the chat side of the generative service.
type Chatter interface {
	Chat(ctx context.Context, req gemini.ChatRequest) (gemini.Response, error)
}

// Turn is one line of the transcript. Local turns are shown to the visitor
// but never sent back to the model: the welcome message, fallbacks and the
// user turns that produced them.
type Turn struct {
	Role  string
	Text  string
	Local bool
	At    time.Time
}

type Options struct {
	Chatter           Chatter
	SystemInstruction string
	Temperature       float64
	MaxMessages       int
	Logger            *slog.Logger
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.SystemInstruction) == "" {
		o.SystemInstruction = SystemInstruction
	}
	if o.Temperature <= 0 {
		o.Temperature = Temperature
	}
	if o.MaxMessages <= 0 {
		o.MaxMessages = 20
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Session is one visitor's conversation with Twin Bot. Sends are
// serialized; reads never wait for an in-flight call.
type Session struct {
	opts Options

	sendMu sync.Mutex

	mu           sync.Mutex
	turns        []Turn
	gen          int
	lastActivity time.Time
}

func NewSession(opts Options) *Session {
	s := &Session{opts: opts.withDefaults()}
	s.resetLocked()
	return s
}

// Send appends the user turn, asks the model and appends its reply. The
// returned reply is always displayable: on failure it is a fallback text and
// the error is returned alongside for logging.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.mu.Lock()
	history := s.historyLocked()
	gen := s.gen
	userIdx := len(s.turns)
	s.turns = append(s.turns, Turn{Role: RoleUser, Text: text, At: time.Now()})
	s.lastActivity = time.Now()
	s.mu.Unlock()

	if s.opts.Chatter == nil {
		return s.fail(gen, userIdx, errors.New("assistant: no chat service configured"))
	}

	resp, err := s.opts.Chatter.Chat(ctx, gemini.ChatRequest{
		History:           history,
		Prompt:            text,
		SystemInstruction: s.opts.SystemInstruction,
		Temperature:       s.opts.Temperature,
	})
	if err != nil {
		return s.fail(gen, userIdx, err)
	}

	reply := strings.TrimSpace(resp.Text)
	local := false
	if reply == "" {
		reply = FallbackEmptyReply
		local = true
	}

	s.appendReply(gen, userIdx, reply, local)
	return reply, nil
}

func (s *Session) fail(gen, userIdx int, err error) (string, error) {
	s.opts.Logger.Warn("chat call failed", "err", err)
	s.appendReply(gen, userIdx, FallbackErrorReply, true)
	return FallbackErrorReply, err
}

// appendReply records a reply unless the session was reset meanwhile.
func (s *Session) appendReply(gen, userIdx int, text string, local bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	if local {
		s.turns[userIdx].Local = true
	}
	s.turns = append(s.turns, Turn{Role: RoleModel, Text: text, Local: local, At: time.Now()})
	s.trimLocked()
}

// Transcript returns every displayed turn, welcome message first.
func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Reset drops the conversation and starts again from the welcome message.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) resetLocked() {
	s.gen++
	s.turns = []Turn{{Role: RoleModel, Text: WelcomeMessage, Local: true, At: time.Now()}}
	s.lastActivity = time.Now()
}

func (s *Session) historyLocked() []gemini.Message {
	out := make([]gemini.Message, 0, len(s.turns))
	for _, t := range s.turns {
		if t.Local {
			continue
		}
		out = append(out, gemini.Message{Role: t.Role, Text: t.Text})
	}
	return out
}

// trimLocked keeps the welcome turn plus the newest MaxMessages turns, never
// starting the kept window on a model reply.
func (s *Session) trimLocked() {
	rest := s.turns[1:]
	if len(rest) <= s.opts.MaxMessages {
		return
	}
	rest = rest[len(rest)-s.opts.MaxMessages:]
	for len(rest) > 0 && rest[0].Role != RoleUser {
		rest = rest[1:]
	}
	s.turns = append([]Turn{s.turns[0]}, rest...)
}
