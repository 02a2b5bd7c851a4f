package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"songcatalog/internal/metrics"
	"songcatalog/internal/models"
	"songcatalog/internal/repositories"
	"songcatalog/internal/validation"
)

// DeleteSongResponse confirms a deletion
type DeleteSongResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ValidateSongResponse reports per-field validation results for the song form
type ValidateSongResponse struct {
	Valid  bool              `json:"valid"`
	Fields validation.Errors `json:"fields"`
}

// SongHandler handles song CRUD requests
type SongHandler struct {
	songRepository repositories.SongRepository
	metrics        *metrics.Manager
}

// NewSongHandler creates a new song handler. m may be nil.
func NewSongHandler(songRepository repositories.SongRepository, m *metrics.Manager) *SongHandler {
	return &SongHandler{
		songRepository: songRepository,
		metrics:        m,
	}
}

// ListSongs handles GET /api/v1/songs
func (h *SongHandler) ListSongs(c *gin.Context) {
	var filter repositories.SongFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}
	if filter.Limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit cannot be negative"})
		return
	}

	songs, err := h.songRepository.List(c.Request.Context(), filter)
	if err != nil {
		slog.Error("Failed to list songs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list songs"})
		return
	}

	c.JSON(http.StatusOK, songs)
}

// GetSong handles GET /api/v1/songs/:id
func (h *SongHandler) GetSong(c *gin.Context) {
	song, err := h.songRepository.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get song")
		return
	}
	if song == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	c.JSON(http.StatusOK, song)
}

// CreateSong handles POST /api/v1/songs
func (h *SongHandler) CreateSong(c *gin.Context) {
	input, ok := h.bindInput(c, "create")
	if !ok {
		return
	}

	song := models.NewSongFromInput(input)
	if err := h.songRepository.Create(c.Request.Context(), song); err != nil {
		h.metrics.RecordMutation("create", "error")
		slog.Error("Failed to create song", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create song"})
		return
	}

	h.metrics.RecordMutation("create", "ok")
	slog.Info("Song created", "songID", song.IDHex(), "title", song.Title)
	c.JSON(http.StatusCreated, song)
}

// UpdateSong handles PUT /api/v1/songs/:id. The path identifier wins over
// any id in the body.
func (h *SongHandler) UpdateSong(c *gin.Context) {
	input, ok := h.bindInput(c, "update")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	song, err := h.songRepository.FindByID(ctx, c.Param("id"))
	if err != nil {
		h.metrics.RecordMutation("update", outcome(err))
		h.respondError(c, err, "Failed to update song")
		return
	}
	if song == nil {
		h.metrics.RecordMutation("update", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	song.Apply(input)
	if err := h.songRepository.Update(ctx, song); err != nil {
		h.metrics.RecordMutation("update", outcome(err))
		h.respondError(c, err, "Failed to update song")
		return
	}

	h.metrics.RecordMutation("update", "ok")
	c.JSON(http.StatusOK, song)
}

// DeleteSong handles DELETE /api/v1/songs/:id
func (h *SongHandler) DeleteSong(c *gin.Context) {
	id := c.Param("id")
	if err := h.songRepository.DeleteByID(c.Request.Context(), id); err != nil {
		h.metrics.RecordMutation("delete", outcome(err))
		h.respondError(c, err, "Failed to delete song")
		return
	}

	h.metrics.RecordMutation("delete", "ok")
	slog.Info("Song deleted", "songID", id)
	c.JSON(http.StatusOK, DeleteSongResponse{Message: "Song deleted", ID: id})
}

// ValidateSong handles POST /api/v1/songs/validate. It always answers 200 for
// a well-formed body; validity is reported in the payload.
func (h *SongHandler) ValidateSong(c *gin.Context) {
	var input models.SongInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	errs := validation.ValidateSong(input)
	c.JSON(http.StatusOK, ValidateSongResponse{Valid: errs.Valid(), Fields: errs})
}

// bindInput decodes and validates a song body, writing the error response itself
func (h *SongHandler) bindInput(c *gin.Context, operation string) (models.SongInput, bool) {
	var input models.SongInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.metrics.RecordMutation(operation, "invalid")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return input, false
	}

	if errs := validation.ValidateSong(input); !errs.Valid() {
		h.metrics.RecordMutation(operation, "invalid")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": errs,
		})
		return input, false
	}
	return input, true
}

func (h *SongHandler) respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid song ID", "details": err.Error()})
	case errors.Is(err, repositories.ErrSongNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
	default:
		slog.Error(message, "songID", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		return "invalid"
	case errors.Is(err, repositories.ErrSongNotFound):
		return "not_found"
	default:
		return "error"
	}
}
