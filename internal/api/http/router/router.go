// Package router wires the HTTP handlers, middleware and probes into one chi mux.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/chirper-server/internal/api/http/handler"
	"github.com/dtroode/chirper-server/internal/api/http/middleware"
	"github.com/dtroode/chirper-server/internal/api/http/response"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/metrics"
	"github.com/dtroode/chirper-server/internal/model"
)

// defaultRequestTimeout applies when Options.RequestTimeout is zero. It must
// stay below the server write timeout, or the 504 never reaches the client.
const defaultRequestTimeout = 10 * time.Second

// Services bundles what the router exposes.
type Services struct {
	Auth          handler.AuthService
	Authenticator middleware.Authenticator
	User          handler.UserService
	Tweet         handler.TweetService
	Comment       handler.CommentService
	Readiness     model.ReadinessChecker
}

// Options configures transport concerns of the router.
type Options struct {
	AllowedOrigins []string
	MaxUploadBytes int64
	RequestTimeout time.Duration
	Debug          bool
}

// Router represents the HTTP router of the JSON API.
type Router struct {
	services       Services
	options        Options
	contextManager model.ContextManager
	metrics        *metrics.Collector
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	services Services,
	options Options,
	contextManager model.ContextManager,
	metrics *metrics.Collector,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		options:        options,
		contextManager: contextManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// Register builds the handler tree.
func (rt *Router) Register() http.Handler {
	errs := response.NewErrors(rt.logger, rt.options.Debug)

	authenticate := middleware.NewAuthenticate(rt.services.Authenticator, rt.contextManager, errs)
	requireID := middleware.RequireUUID(errs, "id")

	authHandler := handler.NewAuth(rt.services.Auth, rt.contextManager, errs)
	userHandler := handler.NewUser(rt.services.User, rt.contextManager, errs, rt.options.MaxUploadBytes, rt.logger)
	tweetHandler := handler.NewTweet(rt.services.Tweet, rt.contextManager, errs, rt.options.MaxUploadBytes, rt.logger)
	commentHandler := handler.NewComment(rt.services.Comment, rt.contextManager, errs)
	healthHandler := handler.NewHealth(rt.services.Readiness, rt.logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLogging(rt.logger).Handler)
	r.Use(middleware.NewMetrics(rt.metrics).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(rt.requestTimeout()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.options.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errs.Write(w, r, apiNotFound(r))
	})

	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)
	r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())

	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(authenticate.Handler)

		r.Post("/logout", authHandler.Logout)
		r.Post("/logout/all", authHandler.LogoutAll)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/{username}", userHandler.GetByUsername)
		r.With(requireID).Get("/{id}/followers", userHandler.Followers)
		r.With(requireID).Get("/{id}/following", userHandler.Following)

		r.Group(func(r chi.Router) {
			r.Use(authenticate.Handler)

			r.Get("/me", userHandler.Me)
			r.Get("/suggestions", userHandler.Suggestions)
			r.Put("/", userHandler.Update)
			r.With(requireID).Post("/{id}/follow", userHandler.ToggleFollow)
		})
	})

	r.Route("/tweets", func(r chi.Router) {
		r.Get("/", tweetHandler.List)
		r.With(middleware.RequireUUID(errs, "userId")).Get("/user/{userId}", tweetHandler.ListByAuthor)
		r.With(requireID).Get("/{id}", tweetHandler.Get)
		r.With(requireID).Get("/{id}/comments", commentHandler.ListByTweet)

		r.Group(func(r chi.Router) {
			r.Use(authenticate.Handler)

			r.Post("/", tweetHandler.Create)
			r.Get("/timeline", tweetHandler.Timeline)

			r.Group(func(r chi.Router) {
				r.Use(requireID)

				r.Delete("/{id}", tweetHandler.Delete)
				r.Post("/{id}/like", tweetHandler.ToggleLike)
				r.Post("/{id}/retweet", tweetHandler.ToggleRetweet)
				r.Post("/{id}/comments", commentHandler.Create)
			})
		})
	})

	r.Route("/comments", func(r chi.Router) {
		// Inline groups run their middleware after routing, so {id} is resolved by then.
		r.Group(func(r chi.Router) {
			r.Use(authenticate.Handler, requireID)

			r.Delete("/{id}", commentHandler.Delete)
			r.Post("/{id}/like", commentHandler.ToggleLike)
		})
	})

	return r
}

func (rt *Router) requestTimeout() time.Duration {
	if rt.options.RequestTimeout > 0 {
		return rt.options.RequestTimeout
	}
	return defaultRequestTimeout
}
