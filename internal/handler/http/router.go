package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, datasetHandler DatasetHandler, analyticsHandler AnalyticsHandler, recordHandler RecordHandler, recruitmentHandler RecruitmentHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-analytics"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequireCompany)

			r.Route("/datasets", func(r chi.Router) {
				r.Get("/", datasetHandler.List)
				r.Post("/", datasetHandler.Upload)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", datasetHandler.Get)
					r.Delete("/", datasetHandler.Delete)
					r.Get("/source", datasetHandler.Source)
					r.Get("/recruitment", recruitmentHandler.Analyze)
					r.Patch("/records", recordHandler.Update)
					r.Delete("/records", recordHandler.Delete)

					r.Route("/analytics", func(r chi.Router) {
						r.Get("/organization", analyticsHandler.Organization)
						r.Get("/departments", analyticsHandler.Departments)
						r.Get("/employees", analyticsHandler.Employees)
						r.Get("/trends", analyticsHandler.Trends)
						r.Get("/records", analyticsHandler.Records)
						r.Get("/exceptions", analyticsHandler.Exceptions)
					})
				})
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Post("/attendance", analyticsHandler.Summarize)
				r.Post("/recruitment", recruitmentHandler.Summarize)
			})
		})
	})
	return r
}
