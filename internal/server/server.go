package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bluedrop/aquarate/internal/auth"
	authdomain "github.com/bluedrop/aquarate/internal/auth/domain"
	"github.com/bluedrop/aquarate/internal/auth/session"
	"github.com/bluedrop/aquarate/internal/cache"
	"github.com/bluedrop/aquarate/internal/config"
	"github.com/bluedrop/aquarate/internal/observability"
	obsmiddleware "github.com/bluedrop/aquarate/internal/observability/logger"
	obsmetrics "github.com/bluedrop/aquarate/internal/observability/metrics"
	obstracing "github.com/bluedrop/aquarate/internal/observability/tracing"
	"github.com/bluedrop/aquarate/internal/profile"
	profiledomain "github.com/bluedrop/aquarate/internal/profile/domain"
	"github.com/bluedrop/aquarate/internal/providers/pdf"
	"github.com/bluedrop/aquarate/internal/quote"
	quotedomain "github.com/bluedrop/aquarate/internal/quote/domain"
	"github.com/bluedrop/aquarate/internal/rate"
	ratedomain "github.com/bluedrop/aquarate/internal/rate/domain"
	"github.com/bluedrop/aquarate/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	session.Module,
	cache.Module,
	ratelimit.Module,
	profile.Module,
	rate.Module,
	quote.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	authsvc      authdomain.Service
	sessions     *session.Manager
	loginLimiter *ratelimit.LoginLimiter
	profileSvc   profiledomain.Service
	rateSvc      ratedomain.Service
	quoteSvc     quotedomain.Service
	pdfProvider  pdf.Provider
	obsMetrics   *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Authsvc      authdomain.Service
	Sessions     *session.Manager
	LoginLimiter *ratelimit.LoginLimiter `optional:"true"`
	ProfileSvc   profiledomain.Service
	RateSvc      ratedomain.Service
	QuoteSvc     quotedomain.Service
	PDFProvider  pdf.Provider
	ObsMetrics   *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		authsvc:      p.Authsvc,
		sessions:     p.Sessions,
		loginLimiter: p.LoginLimiter,
		profileSvc:   p.ProfileSvc,
		rateSvc:      p.RateSvc,
		quoteSvc:     p.QuoteSvc,
		pdfProvider:  p.PDFProvider,
		obsMetrics:   p.ObsMetrics,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAuthRoutes() {
	grp := s.engine.Group("/v1/auth")
	grp.POST("/register", s.Register)
	grp.POST("/login", s.Login)
	grp.POST("/logout", s.Logout)
}

func (s *Server) registerAPIRoutes() {
	grp := s.engine.Group("/v1", s.AuthRequired())

	grp.GET("/profile", s.GetProfile)
	grp.PUT("/profile", s.UpdateProfile)

	grp.GET("/rate", s.GetRate)

	grp.POST("/quotes", s.CreateQuote)
	grp.POST("/quotes/preview", s.PreviewQuote)
	grp.GET("/quotes", s.ListQuotes)
	grp.GET("/quotes/count", s.CountQuotes)
	grp.GET("/quotes/:id/pdf", s.QuotePDF)
}
