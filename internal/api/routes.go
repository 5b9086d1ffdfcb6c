package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/bode/internal/api/handlers"
	"github.com/san-kum/bode/internal/storage"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, h *handlers.BodeHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, h.Health)

	huma.Register(api, huma.Operation{
		OperationID: "listPresets",
		Method:      http.MethodGet,
		Path:        "/api/presets",
		Summary:     "List presets",
		Description: "Returns the built-in transfer functions",
		Tags:        []string{"Bode"},
	}, h.ListPresets)

	huma.Register(api, huma.Operation{
		OperationID:   "computeBode",
		Method:        http.MethodPost,
		Path:          "/api/bode",
		Summary:       "Compute a Bode plot",
		Description:   "Sweeps the transfer function over frequency and checks denominator stability",
		Tags:          []string{"Bode"},
		DefaultStatus: http.StatusOK,
	}, h.Bode)

	huma.Register(api, huma.Operation{
		OperationID: "listRuns",
		Method:      http.MethodGet,
		Path:        "/api/runs",
		Summary:     "List saved runs",
		Tags:        []string{"Runs"},
	}, h.ListRuns)

	huma.Register(api, huma.Operation{
		OperationID: "getRun",
		Method:      http.MethodGet,
		Path:        "/api/runs/{id}",
		Summary:     "Get a saved run",
		Tags:        []string{"Runs"},
	}, h.GetRun)
}

type Options struct {
	AllowedOrigins []string
	Store          *storage.Store
}

// NewRouter builds the chi router with middleware and the huma API mounted.
func NewRouter(opts Options) (*chi.Mux, huma.API) {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	config := huma.DefaultConfig("Bode API", handlers.Version)
	config.DocsPath = "/api/docs"
	api := humachi.New(router, config)

	RegisterRoutes(api, handlers.NewBodeHandler(opts.Store))
	return router, api
}

func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// zerologLogger returns a Chi middleware that logs HTTP requests using zerolog
func zerologLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("request_id", middleware.GetReqID(r.Context())).
					Int("status", ww.Status()).
					Dur("latency", time.Since(start)).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
