// internal/api/routes.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterRoutes wires every endpoint onto mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", h.health)

	// Topics
	mux.HandleFunc("GET /topics", h.listTopics)
	mux.HandleFunc("GET /topics/{topicID}", h.getTopic)
	mux.HandleFunc("POST /topics/{topicID}/tests", h.submitQuiz)

	// Review sessions
	mux.HandleFunc("POST /reviews", h.startReview)
	mux.HandleFunc("GET /reviews/{sessionID}", h.getReview)
	mux.HandleFunc("GET /reviews/{sessionID}/round", h.nextRound)
	mux.HandleFunc("POST /reviews/{sessionID}/rounds", h.submitRound)
	mux.HandleFunc("POST /reviews/{sessionID}/complete", h.completeReview)

	// Users
	mux.HandleFunc("GET /users/{userID}/mastery", h.masteryOverview)
	mux.HandleFunc("GET /users/{userID}/topics/{topicID}/history", h.reviewHistory)
}

// NewRouter builds the full HTTP handler.
// Middleware chain: Logging → CORS → Timeout → mux.
func NewRouter(h *Handler, logger *slog.Logger, requestTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, h)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return Logging(logger)(CORS(Timeout(requestTimeout)(mux)))
}
