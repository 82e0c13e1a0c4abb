package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"studiosite/internal/config"
	handlers "studiosite/internal/handler"
	"studiosite/internal/middleware"
	"studiosite/internal/models"
)

func (a *Application) Router() http.Handler {
	return NewRouter(a.Handlers, a.Tokens, a.Limiter, a.Cfg)
}

// NewRouter mounts every API route under /api and wraps the router in the global middleware chain.
// Routes live on the root router so method mismatches reach MethodNotAllowedHandler.
func NewRouter(h *handlers.Handlers, tokens middleware.TokenParser, limiter *middleware.RateLimiter, cfg *config.Config) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	requireAuth := middleware.RequireAuth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	protected := func(f http.HandlerFunc) http.Handler {
		return requireAuth(f)
	}
	adminOnly := func(f http.HandlerFunc) http.Handler {
		return middleware.Chain(f, requireAuth, middleware.RequireRole(models.RoleAdmin))
	}

	router.HandleFunc("/api/health", h.Health).Methods(http.MethodGet)

	// auth
	router.HandleFunc("/api/auth/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/refresh-token", h.RefreshToken).Methods(http.MethodPost)
	router.Handle("/api/auth/me", protected(h.GetCurrentUser)).Methods(http.MethodGet)
	router.Handle("/api/auth/me", protected(h.UpdateProfile)).Methods(http.MethodPut)
	router.Handle("/api/auth/me/avatar", protected(h.UpdateAvatar)).Methods(http.MethodPut)
	router.Handle("/api/auth/change-password", protected(h.ChangePassword)).Methods(http.MethodPut)

	// posts
	router.HandleFunc("/api/posts", h.GetPosts).Methods(http.MethodGet)
	router.Handle("/api/posts", protected(h.CreatePost)).Methods(http.MethodPost)
	router.Handle("/api/posts/user/me", protected(h.GetMyPosts)).Methods(http.MethodGet)
	router.Handle("/api/posts/{id}", optionalAuth(http.HandlerFunc(h.GetPost))).Methods(http.MethodGet)
	router.Handle("/api/posts/{id}", protected(h.UpdatePost)).Methods(http.MethodPut)
	router.Handle("/api/posts/{id}", protected(h.DeletePost)).Methods(http.MethodDelete)
	router.Handle("/api/posts/{id}/like", protected(h.LikePost)).Methods(http.MethodPost)
	router.Handle("/api/posts/{id}/comments", protected(h.CreateComment)).Methods(http.MethodPost)
	router.Handle("/api/posts/{id}/comments/{commentId}", protected(h.DeleteComment)).Methods(http.MethodDelete)

	// tags
	router.HandleFunc("/api/tags", h.GetTags).Methods(http.MethodGet)
	router.Handle("/api/tags", adminOnly(h.CreateTag)).Methods(http.MethodPost)

	// reviews
	router.HandleFunc("/api/reviews", h.GetReviews).Methods(http.MethodGet)
	router.Handle("/api/reviews", protected(h.CreateReview)).Methods(http.MethodPost)
	router.Handle("/api/reviews/admin", adminOnly(h.GetAdminReviews)).Methods(http.MethodGet)
	router.Handle("/api/reviews/my", protected(h.GetMyReviews)).Methods(http.MethodGet)
	router.Handle("/api/reviews/{id}", protected(h.UpdateReview)).Methods(http.MethodPut)
	router.Handle("/api/reviews/{id}", protected(h.DeleteReview)).Methods(http.MethodDelete)
	router.Handle("/api/reviews/{id}/approve", adminOnly(h.ApproveReview)).Methods(http.MethodPatch)

	// forms
	router.HandleFunc("/api/lead", h.SendLead).Methods(http.MethodPost)
	router.HandleFunc("/api/contact", h.SendContact).Methods(http.MethodPost)

	// recommendation
	router.HandleFunc("/api/recommendation/questions", h.GetQuestions).Methods(http.MethodGet)
	router.HandleFunc("/api/recommendation/packages", h.GetPackages).Methods(http.MethodGet)
	router.HandleFunc("/api/recommendation", h.Recommend).Methods(http.MethodPost)

	return middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.RecoveryMiddleware,
		middleware.CORSMiddleware(cfg.CORSOrigins),
		middleware.SecureHeadersMiddleware,
		limiter.ForPrefix("/api/"),
	)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, "Route "+r.URL.RequestURI()+" not found", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
