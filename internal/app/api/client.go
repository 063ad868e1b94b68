package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"stt-frontend/internal/app/model"
)

// Client is the contract the application shell needs from the backend.
type Client interface {
	ListTranscriptions(ctx context.Context) ([]model.Transcript, error)
	Transcribe(ctx context.Context, file *model.AudioFile, provider string) (*model.Transcript, error)
	DeleteTranscription(ctx context.Context, id string) error
}

// Config represents the recognized client options.
type Config struct {
	BaseURL         string
	WithCredentials bool
	UserAgent       string
	// WrapUpload, when set, wraps the encoded transcribe body so callers
	// can observe upload progress.
	WrapUpload func(body io.Reader, size int64) io.Reader
}

// HTTPClient talks to the transcription backend under <BaseURL>/api.
type HTTPClient struct {
	config Config
	client *http.Client
}

var _ Client = (*HTTPClient)(nil)

// listResponse is the body of GET /transcriptions
type listResponse struct {
	Transcriptions []model.Transcript `json:"transcriptions"`
}

// transcribeResponse is the body of POST /transcribe
type transcribeResponse struct {
	Transcription *model.Transcript `json:"transcription"`
}

// NewHTTPClient creates a backend client. No timeout is configured; the
// caller's context bounds every request.
func NewHTTPClient(config Config, httpClient *http.Client) *HTTPClient {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.UserAgent == "" {
		config.UserAgent = "stt-frontend/1.0"
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &HTTPClient{
		config: config,
		client: httpClient,
	}
}

// BaseURL returns the backend root the client was configured with.
func (c *HTTPClient) BaseURL() string {
	return c.config.BaseURL
}

// ListTranscriptions fetches the transcript history.
func (c *HTTPClient) ListTranscriptions(ctx context.Context) ([]model.Transcript, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/transcriptions", nil)
	if err != nil {
		return nil, err
	}

	var body listResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	if body.Transcriptions == nil {
		return []model.Transcript{}, nil
	}
	return body.Transcriptions, nil
}

// Transcribe uploads an audio file for the given provider and returns the
// created transcript.
func (c *HTTPClient) Transcribe(ctx context.Context, file *model.AudioFile, provider string) (*model.Transcript, error) {
	if file == nil {
		return nil, fmt.Errorf("audio file is required")
	}

	body, contentType, err := createMultipartForm(file, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart form: %w", err)
	}

	var reader io.Reader = body
	size := int64(body.Len())
	if c.config.WrapUpload != nil {
		reader = c.config.WrapUpload(body, size)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/transcribe", reader)
	if err != nil {
		return nil, err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	var resp transcribeResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.Transcription == nil {
		return nil, &Error{
			StatusCode: http.StatusOK,
			Message:    "response did not contain a transcription",
		}
	}
	return resp.Transcription, nil
}

// DeleteTranscription removes one transcript; any 2xx status means success.
func (c *HTTPClient) DeleteTranscription(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/transcriptions/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, resource string, body io.Reader) (*http.Request, error) {
	endpoint := c.config.BaseURL + "/api" + resource
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	return req, nil
}

// do executes req and decodes a JSON body into out when out is non-nil.
func (c *HTTPClient) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to parse response: %v", err),
		}
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// createMultipartForm builds the `audio` + `provider` form body.
func createMultipartForm(file *model.AudioFile, provider string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	mimeType := file.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if file.Data != nil {
		if _, err := io.Copy(part, file.Data); err != nil {
			return nil, "", fmt.Errorf("failed to copy file content: %w", err)
		}
	}

	if err := writer.WriteField("provider", provider); err != nil {
		return nil, "", fmt.Errorf("failed to write field provider: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
