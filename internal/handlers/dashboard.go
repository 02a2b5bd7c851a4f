package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"songcatalog/internal/stats"
	"songcatalog/internal/templates"
)

// dashboardBreakdown is one share table on the dashboard
type dashboardBreakdown struct {
	Title  string
	Label  string
	Shares []stats.Share
}

// DashboardHandler renders the HTML statistics page
type DashboardHandler struct {
	stats *StatsHandler
}

// NewDashboardHandler creates a dashboard backed by the stats handler
func NewDashboardHandler(statsHandler *StatsHandler) *DashboardHandler {
	return &DashboardHandler{stats: statsHandler}
}

// Dashboard handles GET /
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	summary, ok := h.stats.Summary(c)
	if !ok {
		return
	}

	data := struct {
		Summary    stats.Summary
		Breakdowns []dashboardBreakdown
	}{
		Summary: summary,
		Breakdowns: []dashboardBreakdown{
			{Title: "Songs by genre", Label: summary.Genres.Field.Label(), Shares: summary.Genres.Shares},
			{Title: "Songs by artist", Label: summary.Artists.Field.Label(), Shares: summary.Artists.Shares},
			{Title: "Songs by album", Label: summary.Albums.Field.Label(), Shares: summary.Albums.Shares},
		},
	}

	var page bytes.Buffer
	if err := templates.Render(&page, "dashboard", data); err != nil {
		slog.Error("Failed to render dashboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Render error"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
}
