package handlers

import (
	"context"
	"embed"
	"html/template"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"stt-frontend/internal/app/card"
	apperrors "stt-frontend/internal/app/errors"
	"stt-frontend/internal/app/model"
	"stt-frontend/internal/app/shell"
	"stt-frontend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// AcceptedMedia is the file picker filter.
const AcceptedMedia = "audio/*,video/*"

// ParseTemplates parses the embedded page templates.
func ParseTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// PageHandler renders the shell as a server-side page and turns form posts
// into shell actions. Every action redirects back to the page.
type PageHandler struct {
	shell     *shell.Shell
	clipboard card.Clipboard
	logger    *zap.Logger
	now       func() time.Time
}

// NewPageHandler creates a handler over s.
func NewPageHandler(s *shell.Shell, clipboard card.Clipboard, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clipboard == nil {
		clipboard = card.SystemClipboard{}
	}
	return &PageHandler{
		shell:     s,
		clipboard: clipboard,
		logger:    logger.Named("web"),
		now:       time.Now,
	}
}

// RegisterRoutes mounts the page routes on r.
func (h *PageHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Index)
	r.POST("/upload", h.Upload)
	r.POST("/drop", h.Drop)
	r.POST("/provider", h.SetProvider)
	r.POST("/record", h.ToggleRecording)
	r.POST("/errors/dismiss", h.DismissError)
	r.POST("/transcriptions/:id/copy", h.Copy)
	r.POST("/transcriptions/:id/delete", h.Delete)
	r.GET("/transcriptions/:id/download", h.Download)
}

type cardView struct {
	ID        string
	Timestamp string
	Provider  string
	Body      string
	Empty     bool
}

type pageData struct {
	State        shell.State
	Providers    []config.Provider
	Cards        []cardView
	EmptyHistory string
	Accept       string
	Refresh      bool
}

// Index renders the page.
func (h *PageHandler) Index(c *gin.Context) {
	st := h.shell.Snapshot()
	cards := lo.Map(st.Items, func(t model.Transcript, _ int) cardView {
		cc := card.New(t, nil)
		return cardView{
			ID:        t.ID,
			Timestamp: cc.Timestamp(),
			Provider:  cc.Provider(),
			Body:      cc.Body(),
			Empty:     cc.Empty(),
		}
	})

	c.HTML(http.StatusOK, "index.html", pageData{
		State:        st,
		Providers:    h.shell.Catalog().Enabled(),
		Cards:        cards,
		EmptyHistory: shell.EmptyHistory,
		Accept:       AcceptedMedia,
		Refresh:      st.Busy || st.Recording || st.Notice != "",
	})
}

// Upload handles the file picker: the first `audio` file is submitted.
func (h *PageHandler) Upload(c *gin.Context) {
	defer h.back(c)

	fh, err := c.FormFile("audio")
	if err != nil {
		return
	}
	file, closer, err := openUpload(fh)
	if err != nil {
		h.shell.ReportError(err)
		return
	}
	defer closer.Close()

	if !model.IsAudioOrVideo(file.MIMEType) {
		h.shell.ReportError(apperrors.Wrapf(apperrors.ErrNotAudio, "%s (%s)", file.Name, file.MIMEType))
		return
	}
	h.run(c, "upload", func(ctx context.Context) error { return h.shell.Submit(ctx, file) })
}

// Drop handles files dropped on the drop zone; extras are ignored by the shell.
func (h *PageHandler) Drop(c *gin.Context) {
	defer h.back(c)

	form, err := c.MultipartForm()
	if err != nil {
		h.shell.DragLeave()
		return
	}
	headers := form.File["files"]

	files := make([]*model.AudioFile, 0, len(headers))
	for _, fh := range headers {
		file, closer, err := openUpload(fh)
		if err != nil {
			h.shell.ReportError(err)
			return
		}
		defer closer.Close()
		files = append(files, file)
	}
	h.run(c, "drop", func(ctx context.Context) error { return h.shell.Drop(ctx, files) })
}

// SetProvider changes the selected provider.
func (h *PageHandler) SetProvider(c *gin.Context) {
	defer h.back(c)
	if err := h.shell.SetProvider(c.PostForm("provider")); err != nil {
		h.logger.Debug("Provider change refused", zap.Error(err))
	}
}

// ToggleRecording starts or stops the microphone on this machine.
func (h *PageHandler) ToggleRecording(c *gin.Context) {
	defer h.back(c)
	h.run(c, "record", h.shell.ToggleRecording)
}

// DismissError hides the error banner.
func (h *PageHandler) DismissError(c *gin.Context) {
	defer h.back(c)
	h.shell.DismissError()
}

// Copy writes a transcript to the clipboard of this machine.
func (h *PageHandler) Copy(c *gin.Context) {
	defer h.back(c)

	cc, err := h.shell.Card(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.shell.ReportError(err)
		return
	}
	copied, err := cc.Copy(h.clipboard)
	if err != nil {
		h.shell.ReportError(err)
		return
	}
	if copied {
		h.shell.Flash("Copied to clipboard")
	}
}

// Delete removes a transcript through its card.
func (h *PageHandler) Delete(c *gin.Context) {
	defer h.back(c)

	cc, err := h.shell.Card(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.shell.ReportError(err)
		return
	}
	h.run(c, "delete", func(context.Context) error { return cc.Delete() })
}

// Download serves a transcript as a plain-text attachment.
func (h *PageHandler) Download(c *gin.Context) {
	cc, err := h.shell.Card(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": cc.DownloadName(h.now())}))
	c.Data(http.StatusOK, card.DownloadContentType, cc.DownloadContent())
}

// run executes a shell action with the request context. Failures are
// already shown in the banner, so they are only logged here.
func (h *PageHandler) run(c *gin.Context, action string, fn func(ctx context.Context) error) {
	if err := fn(c.Request.Context()); err != nil {
		h.logger.Debug("Action failed", zap.String("action", action), zap.Error(err))
	}
}

func (h *PageHandler) back(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// openUpload wraps an uploaded part as an AudioFile. The MIME type is the
// one the browser sent, sniffed from content when missing.
func openUpload(fh *multipart.FileHeader) (*model.AudioFile, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrFileNotFound, err.Error())
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, nil, apperrors.Wrap(apperrors.ErrFileNotFound, err.Error())
		}
		return model.NewAudioFile(fh.Filename, "", data), io.NopCloser(nil), nil
	}
	return &model.AudioFile{Name: fh.Filename, MIMEType: mimeType, Data: f}, f, nil
}
