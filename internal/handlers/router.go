package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter wires the API, the health check and the static site, wrapped in
// access logging, panic recovery and permissive CORS.
func NewRouter(ann *AnnouncementHandler, rev *ReviewHandler, site *SiteHandler, logger *slog.Logger) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	router.HandleFunc("/api/announcement", ann.GetAnnouncement).Methods("GET")
	router.HandleFunc("/api/announcement", ann.UpdateAnnouncement).Methods("POST")

	router.HandleFunc("/api/reviews", rev.GetReviews).Methods("GET")
	router.HandleFunc("/api/reviews", rev.CreateReview).Methods("POST")
	router.HandleFunc("/api/reviews", rev.DeleteAllReviews).Methods("DELETE")
	router.HandleFunc("/api/reviews/{reviewID}", rev.DeleteReview).Methods("DELETE")

	site.Register(router)

	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(true),
	)

	return handlers.CustomLoggingHandler(io.Discard, recovery(cors(router)), accessLog(logger))
}

// accessLog writes one slog record per request instead of an Apache line.
func accessLog(logger *slog.Logger) handlers.LogFormatter {
	return func(_ io.Writer, p handlers.LogFormatterParams) {
		logger.Info("request",
			"method", p.Request.Method,
			"path", p.URL.Path,
			"status", p.StatusCode,
			"size", p.Size,
			"duration", time.Since(p.TimeStamp),
		)
	}
}
