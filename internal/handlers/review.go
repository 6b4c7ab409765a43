package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/markjakearzadon/vapecenter-gobackend/internal/services"
)

type ReviewHandler struct {
	service *services.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(service *services.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, logger: logger}
}

type reviewRequest struct {
	ReviewerName      string          `json:"reviewerName"`
	ReviewTitle       string          `json:"reviewTitle"`
	ReviewDescription string          `json:"reviewDescription"`
	Rating            json.RawMessage `json:"rating"`
}

func (req *reviewRequest) fromForm(f url.Values) {
	req.ReviewerName = f.Get("reviewerName")
	req.ReviewTitle = f.Get("reviewTitle")
	req.ReviewDescription = f.Get("reviewDescription")
	if v, ok := f["rating"]; ok && len(v) > 0 {
		// keep the form value as a JSON string so rating() treats both paths alike
		req.Rating, _ = json.Marshal(v[0])
	}
}

// rating returns the raw rating text: the string itself for JSON strings,
// the literal for numbers and booleans, empty when absent or null.
func (req *reviewRequest) rating() string {
	if len(req.Rating) == 0 || string(req.Rating) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(req.Rating, &s); err == nil {
		return s
	}
	return string(req.Rating)
}

// GetReviews handles GET /api/reviews
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.service.List())
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.service.Add(r.Context(), services.ReviewInput{
		ReviewerName: req.ReviewerName,
		Title:        req.ReviewTitle,
		Description:  req.ReviewDescription,
		Rating:       req.rating(),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrStorage):
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to save review")
		default:
			h.logger.Error("review create failed", "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Internal server error: "+err.Error())
		}
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"success": true,
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// DeleteReview handles DELETE /api/reviews/{reviewID}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["reviewID"]

	if err := h.service.Remove(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			writeError(w, h.logger, http.StatusNotFound, "Review not found")
		case errors.Is(err, services.ErrStorage):
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete review")
		default:
			h.logger.Error("review delete failed", "id", id, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Internal server error: "+err.Error())
		}
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"success": true,
		"message": "Review deleted successfully",
	})
}

// DeleteAllReviews handles DELETE /api/reviews
func (h *ReviewHandler) DeleteAllReviews(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Clear(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrStorage) {
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to clear reviews")
			return
		}
		h.logger.Error("review clear failed", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"success":      true,
		"message":      fmt.Sprintf("All reviews cleared (%d reviews deleted)", n),
		"deletedCount": n,
	})
}
