package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twins-digital-web/internal/gemini"
)

type fakeChatter struct {
	requests []gemini.ChatRequest
	replies  []string
	err      error
}

func (f *fakeChatter) Chat(_ context.Context, req gemini.ChatRequest) (gemini.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return gemini.Response{}, f.err
	}
	if len(f.replies) == 0 {
		return gemini.Response{}, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return gemini.Response{Text: reply}, nil
}

func TestNewSession_StartsWithWelcome(t *testing.T) {
	s := NewSession(Options{})
	got := s.Transcript()
	require.Len(t, got, 1)
	assert.Equal(t, RoleModel, got[0].Role)
	assert.Equal(t, WelcomeMessage, got[0].Text)
}

func TestSend_ForwardsInstructionAndHistory(t *testing.T) {
	chat := &fakeChatter{replies: []string{"Podemos usar Make.", "Escríbenos: " + WhatsAppURL}}
	s := NewSession(Options{Chatter: chat})

	reply, err := s.Send(context.Background(), "  agendar citas  ")
	require.NoError(t, err)
	assert.Equal(t, "Podemos usar Make.", reply)

	_, err = s.Send(context.Background(), "¿precio?")
	require.NoError(t, err)

	require.Len(t, chat.requests, 2)
	first := chat.requests[0]
	assert.Equal(t, SystemInstruction, first.SystemInstruction)
	assert.InDelta(t, 0.7, first.Temperature, 1e-9)
	assert.Equal(t, "agendar citas", first.Prompt)
	assert.Empty(t, first.History, "welcome message is never sent")

	second := chat.requests[1]
	assert.Equal(t, []gemini.Message{
		{Role: RoleUser, Text: "agendar citas"},
		{Role: RoleModel, Text: "Podemos usar Make."},
	}, second.History)

	assert.Len(t, s.Transcript(), 5)
}

func TestSend_EmptyReplyFallsBack(t *testing.T) {
	chat := &fakeChatter{}
	s := NewSession(Options{Chatter: chat})

	reply, err := s.Send(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, FallbackEmptyReply, reply)

	_, _ = s.Send(context.Background(), "otra vez")
	assert.Empty(t, chat.requests[1].History)
}

func TestSend_ErrorFallsBackWithWhatsApp(t *testing.T) {
	boom := errors.New("boom")
	s := NewSession(Options{Chatter: &fakeChatter{err: boom}})

	reply, err := s.Send(context.Background(), "hola")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, FallbackErrorReply, reply)
	assert.Contains(t, reply, WhatsAppURL)

	turns := s.Transcript()
	require.Len(t, turns, 3)
	assert.True(t, turns[1].Local)
	assert.True(t, turns[2].Local)
}

func TestSend_RejectsBlank(t *testing.T) {
	chat := &fakeChatter{}
	s := NewSession(Options{Chatter: chat})

	_, err := s.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, chat.requests)
}

func TestSend_HistoryWindow(t *testing.T) {
	chat := &fakeChatter{}
	for i := 0; i < 10; i++ {
		chat.replies = append(chat.replies, fmt.Sprintf("r%d", i))
	}
	s := NewSession(Options{Chatter: chat, MaxMessages: 4})

	for i := 0; i < 5; i++ {
		_, err := s.Send(context.Background(), fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}

	turns := s.Transcript()
	require.Len(t, turns, 5)
	assert.Equal(t, WelcomeMessage, turns[0].Text)
	assert.Equal(t, "q3", turns[1].Text)
	assert.Equal(t, RoleUser, turns[1].Role)
	assert.Equal(t, "r4", turns[4].Text)
}

func TestReset(t *testing.T) {
	chat := &fakeChatter{replies: []string{"ok"}}
	s := NewSession(Options{Chatter: chat})
	_, err := s.Send(context.Background(), "hola")
	require.NoError(t, err)

	s.Reset()
	turns := s.Transcript()
	require.Len(t, turns, 1)
	assert.Equal(t, WelcomeMessage, turns[0].Text)
}

func TestStore_PerKeyAndSweep(t *testing.T) {
	st := NewStore(Options{Chatter: &fakeChatter{replies: []string{"ok"}}})

	a := st.Get("a")
	assert.Same(t, a, st.Get("a"))
	assert.NotSame(t, a, st.Get("b"))

	_, err := a.Send(context.Background(), "hola")
	require.NoError(t, err)
	st.Reset("a")
	assert.Len(t, a.Transcript(), 1)
	st.Reset("missing")

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 2, st.Sweep(time.Millisecond))
	assert.Zero(t, st.Len())
}

func TestSegments(t *testing.T) {
	got := Segments("Cotiza aquí: " + WhatsAppURL + " gracias")
	assert.Equal(t, []Segment{
		{Text: "Cotiza aquí: "},
		{Text: WhatsAppURL, Href: WhatsAppURL},
		{Text: " gracias"},
	}, got)

	assert.Equal(t, []Segment{{Text: "sin enlaces"}}, Segments("sin enlaces"))
	assert.Nil(t, Segments(""))
}
