package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nocman/internal/domain/auth"
	"nocman/internal/domain/certificate"
	"nocman/internal/domain/document"
	"nocman/internal/domain/notify"
	"nocman/internal/domain/request"
	"nocman/internal/domain/settings"
	"nocman/internal/domain/template"
	"nocman/internal/middleware"
	"nocman/internal/platform/config"
	"nocman/internal/platform/crypto"
	"nocman/internal/platform/db"
	"nocman/internal/platform/email"
	"nocman/internal/platform/metrics"
	"nocman/internal/platform/pdf"
	"nocman/internal/requestctx"
	"nocman/internal/transport/http/api"
	authhandler "nocman/internal/transport/http/handlers/auth"
	fileshandler "nocman/internal/transport/http/handlers/files"
	requesthandler "nocman/internal/transport/http/handlers/requests"
	settingshandler "nocman/internal/transport/http/handlers/settings"
	templatehandler "nocman/internal/transport/http/handlers/templates"
	verifyhandler "nocman/internal/transport/http/handlers/verify"
	httpmw "nocman/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	cryptoSvc, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("encryption key invalid: %v", err)
	}

	var engine pdf.Engine
	if cfg.PDFEngine == "basic" {
		engine = pdf.NewBasicEngine()
	} else {
		engine = pdf.NewChromeEngine(cfg.PDFTimeout)
	}
	defer engine.Close()

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	requestStore := request.NewStore(pool)
	settingsStore := settings.NewStore(pool)
	templateStore := template.NewStore(pool)
	authStore := auth.NewStore(pool)

	images := document.NewImageResolver(nil, cfg.SiteURL, cfg.UploadBaseURL, cfg.UploadBaseDir, cfg.SiteRootDir)

	certSvc := &certificate.Service{
		Requests:   requestStore,
		Settings:   settingsStore,
		Templates:  templateStore,
		Engine:     engine,
		Images:     images,
		Crypto:     cryptoSvc,
		Metrics:    collector,
		SiteURL:    cfg.SiteURL,
		StorageDir: cfg.StorageDir,
	}

	mailer := email.New(cfg)
	notifySvc := notify.NewService(mailer, settingsStore, cfg.SiteURL)
	authSvc := auth.NewService(authStore, cfg.JWTSecret)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(httpmw.Logger)
	router.Use(httpmw.Recover)
	router.Use(httpmw.SecureHeaders(cfg.Environment == "production"))
	router.Use(httpmw.BodyLimit(cfg.MaxBodyBytes))
	router.Use(httpmw.Metrics(collector))
	router.Use(httpmw.Auth(cfg.JWTSecret))
	router.Use(httpmw.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), requestctx.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc).RegisterRoutes(r)

		requestsHandler := requesthandler.NewHandler(requestStore, certSvc, notifySvc)
		requestsHandler.RegisterPublicRoutes(r)

		verifyhandler.NewHandler(requestStore, settingsStore).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(httpmw.RequireAdmin)
			requestsHandler.RegisterAdminRoutes(r)
			templatehandler.NewHandler(templateStore, certSvc).RegisterRoutes(r)
			settingshandler.NewHandler(settingsStore).RegisterRoutes(r)
		})
	})

	// Certificate downloads stay public: the link is printed in the approval
	// email and the file name is unguessable without the reference id.
	fileshandler.NewHandler(certSvc).RegisterRoutes(router)

	log.Printf("NOC server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
