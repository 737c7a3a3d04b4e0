package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/artium/indicacoes-api/config"
	"github.com/artium/indicacoes-api/internal/handlers"
	"github.com/artium/indicacoes-api/internal/middleware"
	"github.com/artium/indicacoes-api/internal/session"
	"github.com/artium/indicacoes-api/internal/validation"
	"github.com/artium/indicacoes-api/internal/web"
	"github.com/artium/indicacoes-api/pkg/jwt"
	"github.com/artium/indicacoes-api/pkg/metrics"
)

const (
	// resumeBodyLimit only bounds bandwidth: the resume is streamed and at most
	// MaxAttachmentSize+1 bytes of it are held. A file cut short by the limit is
	// still reported on the resume field.
	resumeBodyLimit = 4 * validation.MaxAttachmentSize
	smallBodyLimit  = 16 * 1024
)

type routerDeps struct {
	tokens   *jwt.TokenManager
	sessions *session.Store
	ping     handlers.PingFunc
}

func newRouter(ctx context.Context, cfg *config.Config, deps routerDeps) (*gin.Engine, error) {
	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.SetHTMLTemplate(templates)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader, "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true, // visitor session cookie
		MaxAge:           12 * time.Hour,
	}))

	generalRateLimiter := middleware.NewRateLimiter(ctx, 20, 40)
	submitRateLimiter := middleware.NewRateLimiter(ctx, 0.5, 5) // one submission every 2s, burst of 5

	healthHandler := handlers.NewHealthHandler(deps.ping)
	pageHandler := handlers.NewPageHandler(
		web.DefaultContent(cfg.Site.OrganizationName, cfg.Site.MainSiteURL, cfg.Site.ContactURL),
		cfg.ReCAPTCHA.SiteKey,
		cfg.DwellTime(),
	)
	referralHandler := handlers.NewReferralHandler()

	visitorSession := middleware.VisitorSessionMiddleware(deps.tokens, deps.sessions, middleware.CookieOptions{
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.Session.CookieSecure,
	})
	smallBody := middleware.BodySizeLimitMiddleware(smallBodyLimit)
	resumeBody := middleware.BodySizeLimitMiddleware(resumeBodyLimit)

	router.StaticFS("/static", web.Static())

	// Landing page and its plain HTML forms
	pages := router.Group("/", generalRateLimiter.Middleware(), visitorSession)
	pages.GET("/", pageHandler.Index)
	pages.POST("/indicacoes/modo", smallBody, pageHandler.SwitchMode)
	pages.POST("/indicacoes/talento", submitRateLimiter.Middleware(), resumeBody, pageHandler.SubmitTalent)
	pages.POST("/indicacoes/empresa", submitRateLimiter.Middleware(), smallBody, pageHandler.SubmitCompany)

	// Operational endpoints
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// JSON API over the same visitor session
	referrals := router.Group("/api/v1/referrals", generalRateLimiter.Middleware(), visitorSession)
	referrals.GET("/form", referralHandler.GetForm)
	referrals.POST("/mode", smallBody, referralHandler.SwitchMode)
	referrals.POST("/talent/resume", resumeBody, referralHandler.SelectResume)
	referrals.POST("/talent", submitRateLimiter.Middleware(), resumeBody, referralHandler.SubmitTalent)
	referrals.POST("/company", submitRateLimiter.Middleware(), smallBody, referralHandler.SubmitCompany)

	return router, nil
}
