package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	openapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hardshell/api/internal/config"
	"github.com/hardshell/api/internal/handlers"
	"github.com/hardshell/api/internal/httpx"
	"github.com/hardshell/api/internal/middleware"
)

// NewRouter assembles the hardening stack around the demo API. The CORS
// policy is built here so that an invalid configuration (notably a wildcard
// origin combined with credentialed access) aborts startup before the
// listener opens.
func NewRouter(ctx context.Context, cfg config.Config, logger *slog.Logger) (http.Handler, error) {
	if _, err := os.Stat(cfg.OpenAPISpecPath); err != nil {
		return nil, fmt.Errorf("openapi spec not found at %s: %w", cfg.OpenAPISpecPath, err)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(cfg.OpenAPISpecPath)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}

	policy, err := middleware.NewCORSPolicy(
		cfg.CORSAllowedOrigins,
		cfg.CORSAllowedMethods,
		cfg.CORSAllowedHeaders,
		cfg.CORSAllowCredentials,
	)
	if err != nil {
		return nil, err
	}
	corsMW, err := middleware.CORS(policy)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeaders()))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.LimitBodyBytes(cfg.APIMaxBodyBytes))

	api := chi.NewRouter()
	api.Use(openapimiddleware.OapiRequestValidatorWithOptions(doc, &openapimiddleware.Options{
		SilenceServersWarning: true,
		ErrorHandler: func(w http.ResponseWriter, message string, statusCode int) {
			requestID := w.Header().Get(middleware.RequestIDHeader)
			httpx.WriteJSON(w, statusCode, httpx.ErrorEnvelope{
				Error:     httpx.ErrorBody{Code: "validation_error", Message: message},
				RequestID: requestID,
			})
		},
	}))

	h := handlers.NewServer(cfg, logger)

	r.Get("/health", h.GetHealth)
	r.Method(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, cfg.MetricsCacheTTL))

	api.Get("/resource", h.GetResource)
	api.Get("/teapot", h.GetTeapot)

	r.Mount("/api", corsMW(api))
	return r, nil
}
