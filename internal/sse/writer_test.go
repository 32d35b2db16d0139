package sse

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFlusher struct {
	*httptest.ResponseRecorder
	flushes int
}

func (m *mockFlusher) Flush() { m.flushes++ }

type plainWriter struct {
	header http.Header
}

func (p *plainWriter) Header() http.Header { return p.header }
func (p *plainWriter) Write(b []byte) (int, error) { return len(b), nil }
func (p *plainWriter) WriteHeader(int) {}

func TestStart_SetsHeadersOnce(t *testing.T) {
	w := &mockFlusher{ResponseRecorder: httptest.NewRecorder()}
	s := NewWriter(w)

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, 1, w.flushes)
}

func TestStart_RequiresFlusher(t *testing.T) {
	s := NewWriter(&plainWriter{header: http.Header{}})
	assert.ErrorIs(t, s.Start(), ErrNotFlusher)
}

func TestWriteEvent(t *testing.T) {
	w := &mockFlusher{ResponseRecorder: httptest.NewRecorder()}
	s := NewWriter(w)
	require.NoError(t, s.Start())

	require.NoError(t, s.WriteEvent("state", map[string]int{"index": 2}))
	require.NoError(t, s.WriteEvent("", []string{"a"}))
	require.NoError(t, s.WriteComment("ping"))

	assert.Equal(t, "event: state\ndata: {\"index\":2}\n\ndata: [\"a\"]\n\n: ping\n\n", w.Body.String())
	assert.Equal(t, 4, w.flushes)
}

func TestWriteAfterClose(t *testing.T) {
	w := &mockFlusher{ResponseRecorder: httptest.NewRecorder()}
	s := NewWriter(w)
	s.Close()

	assert.ErrorIs(t, s.WriteEvent("state", 1), ErrClosed)
	assert.ErrorIs(t, s.WriteComment("ping"), ErrClosed)
}

func TestWriteEvent_MarshalError(t *testing.T) {
	w := &mockFlusher{ResponseRecorder: httptest.NewRecorder()}
	s := NewWriter(w)
	assert.Error(t, s.WriteEvent("bad", make(chan int)))
	assert.Zero(t, w.Body.Len())
}
