package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "stt-frontend/internal/api/errors"
	"stt-frontend/internal/api/middleware"
	"stt-frontend/internal/app/api/provider"
	apperrors "stt-frontend/internal/app/errors"
	"stt-frontend/internal/app/model"
	"stt-frontend/internal/app/repository"
)

// multipartMemory is how much of an upload is kept in memory before
// spilling to a temp file.
const multipartMemory = 8 << 20

// TranscriptionHandler serves the transcription endpoints the front end
// consumes.
type TranscriptionHandler struct {
	dao            repository.TranscriptionDAO
	registry       *provider.Registry
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewTranscriptionHandler creates a handler. maxUploadBytes <= 0 disables
// the size limit.
func NewTranscriptionHandler(dao repository.TranscriptionDAO, registry *provider.Registry, maxUploadBytes int64, logger *zap.Logger) *TranscriptionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionHandler{
		dao:            dao,
		registry:       registry,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.Named("handlers"),
	}
}

// TranscribeRequest is the multipart body of POST /api/transcribe.
type TranscribeRequest struct {
	Provider string                `form:"provider" binding:"required"`
	Audio    *multipart.FileHeader `form:"audio" binding:"required"`
}

// RegisterRoutes mounts the endpoints on an `/api` group.
func (h *TranscriptionHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/transcriptions", h.ListTranscriptions)
	api.POST("/transcribe", h.Transcribe)
	api.DELETE("/transcriptions/:id", h.DeleteTranscription)
}

// ListTranscriptions handles GET /api/transcriptions
func (h *TranscriptionHandler) ListTranscriptions(c *gin.Context) {
	items, err := h.dao.List(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcriptions": items})
}

// Transcribe handles POST /api/transcribe
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			middleware.HandleError(c, apierrors.NewTooLargeError())
			return
		}
		middleware.HandleError(c, apierrors.NewBadRequestError("expected a multipart form with an audio file"))
		return
	}

	var req TranscribeRequest
	if err := middleware.ValidateForm(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	transcriber, ok := h.registry.Get(req.Provider)
	if !ok {
		middleware.HandleError(c, apierrors.NewBadRequestError("unknown provider: "+req.Provider))
		return
	}

	dir, err := os.MkdirTemp("", "stt-upload-*")
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "audio"+filepath.Ext(filepath.Base(req.Audio.Filename)))
	if err := c.SaveUploadedFile(req.Audio, path); err != nil {
		middleware.HandleError(c, err)
		return
	}

	h.logger.Info("Transcribing upload",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("file", req.Audio.Filename),
		zap.Int64("size", req.Audio.Size),
		zap.String("provider", req.Provider),
	)

	text, err := transcriber.Transcript(c.Request.Context(), path)
	if err != nil {
		h.logger.Warn("Transcription failed", zap.String("provider", req.Provider), zap.Error(err))
		middleware.HandleError(c, apierrors.NewTranscribeError(err))
		return
	}

	t, err := h.dao.Create(c.Request.Context(), model.Transcript{Text: text, Provider: req.Provider})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transcription": t})
}

// DeleteTranscription handles DELETE /api/transcriptions/:id
func (h *TranscriptionHandler) DeleteTranscription(c *gin.Context) {
	id := c.Param("id")
	if err := h.dao.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			middleware.HandleError(c, apierrors.NewNotFoundError("transcription"))
			return
		}
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}
