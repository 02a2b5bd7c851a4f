package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"songcatalog/internal/metrics"
	"songcatalog/internal/models"
	"songcatalog/internal/repositories"
	"songcatalog/internal/stats"
)

// StatsHandler serves aggregate statistics over the whole catalog
type StatsHandler struct {
	songRepository repositories.SongRepository
	defaultTopN    int
	maxTopN        int
	metrics        *metrics.Manager
}

// NewStatsHandler creates a stats handler. Requests without n rank defaultTopN
// entries; larger n values are capped at maxTopN.
func NewStatsHandler(songRepository repositories.SongRepository, defaultTopN, maxTopN int, m *metrics.Manager) *StatsHandler {
	return &StatsHandler{
		songRepository: songRepository,
		defaultTopN:    defaultTopN,
		maxTopN:        maxTopN,
		metrics:        m,
	}
}

// GetSummary handles GET /api/v1/stats
func (h *StatsHandler) GetSummary(c *gin.Context) {
	n, ok := h.topN(c)
	if !ok {
		return
	}
	songs, ok := h.snapshot(c)
	if !ok {
		return
	}

	h.metrics.RecordStatsRequest("summary")
	c.JSON(http.StatusOK, stats.Summarize(songs, n))
}

// GetFieldStats handles GET /api/v1/stats/fields/:field
func (h *StatsHandler) GetFieldStats(c *gin.Context) {
	field, err := models.ParseField(c.Param("field"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown field", "details": err.Error()})
		return
	}
	n, ok := h.topN(c)
	if !ok {
		return
	}
	songs, ok := h.snapshot(c)
	if !ok {
		return
	}

	h.metrics.RecordStatsRequest("field")
	c.JSON(http.StatusOK, stats.Breakdown(songs, field, n))
}

// GetGroupStats handles GET /api/v1/stats/groups?group=artist&member=album
func (h *StatsHandler) GetGroupStats(c *gin.Context) {
	group, err := models.ParseField(c.DefaultQuery("group", models.FieldArtist.String()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown group field", "details": err.Error()})
		return
	}
	member, err := models.ParseField(c.DefaultQuery("member", models.FieldAlbum.String()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown member field", "details": err.Error()})
		return
	}
	if group == member {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group and member must be different fields"})
		return
	}
	n, ok := h.topN(c)
	if !ok {
		return
	}
	songs, ok := h.snapshot(c)
	if !ok {
		return
	}

	h.metrics.RecordStatsRequest("groups")
	c.JSON(http.StatusOK, stats.Groups(songs, group, member, n))
}

// Summary loads the catalog and summarizes it with the default ranking size
func (h *StatsHandler) Summary(c *gin.Context) (stats.Summary, bool) {
	songs, ok := h.snapshot(c)
	if !ok {
		return stats.Summary{}, false
	}
	h.metrics.RecordStatsRequest("summary")
	return stats.Summarize(songs, h.defaultTopN), true
}

// topN reads the n query parameter, writing a 400 when it is malformed
func (h *StatsHandler) topN(c *gin.Context) (int, bool) {
	n, err := parseTopN(c.Query("n"), h.defaultTopN, h.maxTopN)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid n", "details": err.Error()})
		return 0, false
	}
	return n, true
}

func parseTopN(raw string, defaultN, maxN int) (int, error) {
	if raw == "" {
		return defaultN, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("n must be an integer: %q", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("n cannot be negative: %d", n)
	}
	if n > maxN {
		n = maxN
	}
	return n, nil
}

// snapshot lists every song, writing a 500 on failure
func (h *StatsHandler) snapshot(c *gin.Context) ([]*models.Song, bool) {
	songs, err := h.songRepository.List(c.Request.Context(), repositories.SongFilter{})
	if err != nil {
		slog.Error("Failed to load songs for statistics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load songs"})
		return nil, false
	}
	h.metrics.SetSongsTotal(len(songs))
	return songs, true
}
