package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/markjakearzadon/vapecenter-gobackend/internal/services"
)

// AnnouncementHandler handles HTTP requests for the announcement banner
type AnnouncementHandler struct {
	service *services.AnnouncementService
	logger  *slog.Logger
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(service *services.AnnouncementService, logger *slog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{service: service, logger: logger}
}

type announcementRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Days    string `json:"days"`
}

func (req *announcementRequest) fromForm(f url.Values) {
	req.Title = f.Get("title")
	req.Message = f.Get("message")
	req.Days = f.Get("days")
}

// GetAnnouncement handles GET /api/announcement
func (h *AnnouncementHandler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.service.Get())
}

// UpdateAnnouncement handles POST /api/announcement
func (h *AnnouncementHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	announcement, err := h.service.Set(r.Context(), req.Title, req.Message, req.Days)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrStorage):
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to save announcement data")
		default:
			h.logger.Error("announcement update failed", "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Internal server error: "+err.Error())
		}
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"success": true,
		"message": "Announcement updated successfully",
		"data":    announcement,
	})
}
