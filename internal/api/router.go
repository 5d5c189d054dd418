package api

import (
	"net/http"
	"time"

	"qa_platform/internal/api/handler"
	"qa_platform/internal/app/service"
	"qa_platform/internal/common"
	"qa_platform/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	questionService *service.QuestionService,
	tokens *security.TokenIssuer,
	corsOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Verifies a bearer token when present and puts claims in context.
	// Enforcement is left to routes; none in scope require a token.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		type healthResponse struct {
			Status    string `json:"status"`
			Timestamp string `json:"timestamp"`
		}
		common.RespondWithJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Route("/api", func(api chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", authHandler.RegisterRoutes)

		// Question routes (public; author identity picked up when present)
		questionHandler := handler.NewQuestionHandler(questionService)
		api.Route("/questions", questionHandler.RegisterRoutes)
	})

	return r
}
