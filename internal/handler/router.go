/*
Package handler provides the HTTP handlers and routing of the АлёГараж
development backend.

This file wires the middleware stack (CORS, request IDs, logging, recovery,
per-IP rate limits) and maps the endpoint table onto handlers. All routes
except login and registration require a bearer token.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"alegarazh/internal/pkg/auth/jwt"
	"alegarazh/internal/pkg/limiter"
	"alegarazh/internal/pkg/logx"
	"alegarazh/internal/pkg/resp"
)

// Per-IP limits: a generous global bucket plus a tight one for the
// credential-guessing surface.
const (
	GlobalRate  = 10
	GlobalBurst = 30
	AuthRate    = 0.5
	AuthBurst   = 5
)

// Router builds the routing table of the backend.
func Router(deps *AppDeps) http.Handler {
	globalLimiter := limiter.NewIPRateLimiter(rate.Limit(GlobalRate), GlobalBurst)
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{"*"}
	if deps.Config.Environment != "development" && len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(globalLimiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.Success(w, map[string]string{
			"status":  "ok",
			"service": "AlyoGarazh Dev Server",
		})
	})

	requireAuth := jwt.RequireAuth(deps.Config.JWTSecret)

	r.Route("/auth", func(auth chi.Router) {
		auth.With(authLimiter.Middleware).Post("/login", HandleLogin(deps))
		auth.With(authLimiter.Middleware).Post("/register", HandleRegister(deps))

		auth.With(requireAuth).Post("/logout", HandleLogout(deps))
		auth.With(requireAuth).Get("/me", HandleMe(deps))
	})

	r.Route("/users", func(users chi.Router) {
		users.Use(requireAuth)
		users.Put("/profile", HandleUpdateProfile(deps))
		users.Get("/search", HandleSearchUsers(deps))
	})

	r.Route("/chats", func(chats chi.Router) {
		chats.Use(requireAuth)
		chats.Get("/my", HandleMyChats(deps))
		chats.Post("/", HandleCreateChat(deps))
		chats.Get("/{id}/messages", HandleChatMessages(deps))
		chats.Post("/{id}/messages", HandleSendMessage(deps))
	})

	r.Route("/friends", func(friends chi.Router) {
		friends.Use(requireAuth)
		friends.Get("/my", HandleMyFriends(deps))
		friends.Get("/search", HandleSearchFriends(deps))
		friends.Post("/{id}", HandleAddFriend(deps))
		friends.Delete("/{id}", HandleRemoveFriend(deps))
	})

	return r
}
