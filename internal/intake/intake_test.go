package intake

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, "image/png", DetectMIME("", pngBytes))
	assert.Equal(t, "image/jpeg", DetectMIME("application/octet-stream", jpegBytes))
	assert.Equal(t, "image/webp", DetectMIME("image/webp; q=1", pngBytes))
	assert.Equal(t, "text/plain", DetectMIME("", []byte("hello world")))
}

func TestFromBytes(t *testing.T) {
	in, err := FromBytes(" sala ", pngBytes, "")
	require.NoError(t, err)
	assert.Equal(t, "sala", in.Name)
	assert.Equal(t, "image/png", in.Payload.MimeType)
	assert.False(t, in.Sample)

	_, err = FromBytes("notes", []byte("plain text"), "")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = FromBytes("empty", nil, "image/png")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestFromBytes_OnlyRasterFormats(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)
	_, err := FromBytes("logo.svg", svg, "image/svg+xml")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = FromBytes("icon.bmp", pngBytes, "image/bmp")
	assert.ErrorIs(t, err, ErrNotImage)

	in, err := FromBytes("foto.jpg", jpegBytes, "image/jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", in.Payload.MimeType)

	for _, mimeType := range []string{"image/png", "image/webp", "image/gif", "IMAGE/JPEG; q=1"} {
		_, ok := Supported(mimeType)
		assert.True(t, ok, mimeType)
	}
}

func TestFromReader_TooLarge(t *testing.T) {
	_, err := FromReader("big", bytes.NewReader(pngBytes), "", 4)
	assert.ErrorIs(t, err, ErrTooLarge)
}

type upload struct {
	name        string
	contentType string
	data        []byte
}

func multipartFiles(t *testing.T, uploads ...upload) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, u := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+u.name+`"`)
		if u.contentType != "" {
			h.Set("Content-Type", u.contentType)
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(u.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"]
}

func TestFromMultipart_KeepsOrderAndSkipsBadFiles(t *testing.T) {
	files := multipartFiles(t,
		upload{name: "cocina.jpg", contentType: "image/jpeg", data: jpegBytes},
		upload{name: "notas.txt", contentType: "text/plain", data: []byte("hola")},
		upload{name: "sala.png", data: pngBytes},
		upload{name: "vacio.png", contentType: "image/png"},
	)

	accepted, rejected := FromMultipart(context.Background(), files, Options{Concurrency: 2})

	require.Len(t, accepted, 2)
	assert.Equal(t, "cocina", accepted[0].Name)
	assert.Equal(t, "image/jpeg", accepted[0].Payload.MimeType)
	assert.Equal(t, "sala", accepted[1].Name)
	assert.Equal(t, "image/png", accepted[1].Payload.MimeType)

	assert.Equal(t, []Rejected{
		{Name: "notas.txt", Reason: "not_an_image"},
		{Name: "vacio.png", Reason: "not_an_image"},
	}, rejected)
}

func TestFetchSample(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/room.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(jpegBytes)
	}))
	defer srv.Close()

	f := &Fetcher{Client: srv.Client()}

	in, err := f.FetchSample(context.Background(), srv.URL+"/room.jpg")
	require.NoError(t, err)
	assert.True(t, in.Sample)
	assert.Equal(t, SampleName, in.Name)
	assert.Equal(t, jpegBytes, in.Payload.Data)

	_, err = f.FetchSample(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "404"))
}
