package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stt-frontend/internal/app/model"
)

// Mock backend for testing
func createMockBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *HTTPClient) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewHTTPClient(Config{BaseURL: server.URL + "/"}, server.Client())
}

func TestHTTPClient_ListTranscriptions(t *testing.T) {
	_, client := createMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/transcriptions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Cookie"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transcriptions":[
			{"_id":"b","text":"second","provider":"mock","createdAt":"2025-01-02T00:00:00Z"},
			{"id":"a","text":"","provider":"local","created_at":"2025-01-01T00:00:00Z"}
		]}`))
	})

	items, err := client.ListTranscriptions(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "local", items[1].Provider)
	assert.False(t, items[1].CreatedAt.IsZero())
}

func TestHTTPClient_ListTranscriptions_MissingArray(t *testing.T) {
	_, client := createMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	items, err := client.ListTranscriptions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestHTTPClient_Transcribe(t *testing.T) {
	_, client := createMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/transcribe", r.URL.Path)

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "mock", r.FormValue("provider"))

		file, header, err := r.FormFile("audio")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		assert.Equal(t, "rec-1.wav", header.Filename)
		assert.Equal(t, "audio/wav", header.Header.Get("Content-Type"))
		data, _ := io.ReadAll(file)
		assert.Equal(t, "RIFFdata", string(data))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"transcription": map[string]interface{}{
				"_id": "new", "text": "hello", "provider": "mock", "createdAt": "2025-01-03T00:00:00Z",
			},
		})
	})

	file := model.NewAudioFile("rec-1.wav", "audio/wav", []byte("RIFFdata"))
	got, err := client.Transcribe(context.Background(), file, "mock")
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)
	assert.Equal(t, "hello", got.Text)
}

func TestHTTPClient_Transcribe_WrapUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Write([]byte(`{"transcription":{"_id":"x","text":"","provider":"mock"}}`))
	}))
	defer server.Close()

	var wrappedSize int64
	var counted int64
	client := NewHTTPClient(Config{
		BaseURL: server.URL,
		WrapUpload: func(body io.Reader, size int64) io.Reader {
			wrappedSize = size
			return &countingReader{r: body, n: &counted}
		},
	}, nil)

	_, err := client.Transcribe(context.Background(), model.NewAudioFile("a.wav", "audio/wav", []byte("abc")), "mock")
	require.NoError(t, err)
	assert.Greater(t, wrappedSize, int64(0))
	assert.Equal(t, wrappedSize, counted)
}

func TestHTTPClient_Transcribe_ServerError(t *testing.T) {
	_, client := createMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"error":"too large"}`))
	})

	_, err := client.Transcribe(context.Background(), model.NewAudioFile("a.wav", "audio/wav", []byte("x")), "local")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
	assert.True(t, apiErr.ServerMessage)
	assert.Equal(t, "too large", Message(err))
}

func TestHTTPClient_Transcribe_NilFile(t *testing.T) {
	client := NewHTTPClient(Config{BaseURL: "http://unused"}, nil)
	_, err := client.Transcribe(context.Background(), nil, "mock")
	assert.Error(t, err)
}

func TestHTTPClient_Transcribe_MissingTranscription(t *testing.T) {
	_, client := createMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.Transcribe(context.Background(), model.NewAudioFile("a.wav", "audio/wav", nil), "mock")
	assert.Error(t, err)
}

func TestHTTPClient_DeleteTranscription(t *testing.T) {
	var gotPath string
	_, client := createMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteTranscription(context.Background(), "a/b c"))
	assert.Equal(t, "/api/transcriptions/a%2Fb%20c", gotPath)
}

func TestHTTPClient_DeleteTranscription_NotFound(t *testing.T) {
	_, client := createMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`not json`))
	})

	err := client.DeleteTranscription(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "request failed with status code 404", Message(err))
}

func TestHTTPClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewHTTPClient(Config{BaseURL: baseURL}, nil)
	_, err := client.ListTranscriptions(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.NotContains(t, Message(err), baseURL+"/api")
	assert.NotEmpty(t, Message(err))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "too large", Message(newError(413, []byte(`{"error":"too large"}`))))
	assert.Equal(t, "request failed with status code 500", Message(newError(500, []byte(`{"error":"  "}`))))
}

func TestCreateMultipartForm_EscapesFilename(t *testing.T) {
	body, contentType, err := createMultipartForm(model.NewAudioFile(`we"ird.wav`, "", []byte("x")), "mock")
	require.NoError(t, err)
	assert.Contains(t, contentType, "multipart/form-data")
	assert.True(t, bytes.Contains(body.Bytes(), []byte(`filename="we\"ird.wav"`)))
	assert.True(t, bytes.Contains(body.Bytes(), []byte("Content-Type: application/octet-stream")) ||
		bytes.Contains(body.Bytes(), []byte("Content-Type: text/plain")))
}

type countingReader struct {
	r io.Reader
	n *int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	*c.n += int64(n)
	return n, err
}
