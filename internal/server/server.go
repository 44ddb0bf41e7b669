package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/omarwahbi/VetSync-sub002/internal/auth"
	authdomain "github.com/omarwahbi/VetSync-sub002/internal/auth/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/auth/session"
	"github.com/omarwahbi/VetSync-sub002/internal/clinic"
	clinicdomain "github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/clock"
	"github.com/omarwahbi/VetSync-sub002/internal/config"
	"github.com/omarwahbi/VetSync-sub002/internal/dispatch"
	"github.com/omarwahbi/VetSync-sub002/internal/observability"
	obslogger "github.com/omarwahbi/VetSync-sub002/internal/observability/logger"
	obsmetrics "github.com/omarwahbi/VetSync-sub002/internal/observability/metrics"
	obstracing "github.com/omarwahbi/VetSync-sub002/internal/observability/tracing"
	"github.com/omarwahbi/VetSync-sub002/internal/owner"
	ownerdomain "github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/pet"
	petdomain "github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/reminder"
	reminderdomain "github.com/omarwahbi/VetSync-sub002/internal/reminder/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/scheduler"
	"github.com/omarwahbi/VetSync-sub002/internal/visit"
	visitdomain "github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
)

var Module = fx.Module("http.server",
	config.Module,
	observability.Module,
	fx.Provide(registerGin),
	auth.Module,
	clinic.Module,
	owner.Module,
	pet.Module,
	visit.Module,
	dispatch.Module,
	reminder.Module,
	scheduler.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
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
	engine      *gin.Engine
	cfg         config.Config
	clock       clock.Clock
	authsvc     authdomain.Service
	sessions    *session.Manager
	clinicSvc   clinicdomain.Service
	ownerSvc    ownerdomain.Service
	petSvc      petdomain.Service
	visitSvc    visitdomain.Service
	reminderSvc reminderdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Clock       clock.Clock
	Authsvc     authdomain.Service
	Sessions    *session.Manager
	ClinicSvc   clinicdomain.Service
	OwnerSvc    ownerdomain.Service
	PetSvc      petdomain.Service
	VisitSvc    visitdomain.Service
	ReminderSvc reminderdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		clock:       p.Clock,
		authsvc:     p.Authsvc,
		sessions:    p.Sessions,
		clinicSvc:   p.ClinicSvc,
		ownerSvc:    p.OwnerSvc,
		petSvc:      p.PetSvc,
		visitSvc:    p.VisitSvc,
		reminderSvc: p.ReminderSvc,
	}

	s.registerAuthRoutes()
	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.POST("/refresh", s.RefreshSession)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
	auth.POST("/change-password", s.AuthRequired(), s.ChangePassword)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1", s.AuthRequired())

	api.GET("/clinic", s.GetClinic)
	api.PATCH("/clinic", s.UpdateClinic)

	api.GET("/owners", s.ListOwners)
	api.POST("/owners", s.CreateOwner)
	api.GET("/owners/:id", s.GetOwnerByID)
	api.GET("/owners/:id/pets", s.ListOwnerPets)

	api.POST("/pets", s.CreatePet)
	api.GET("/pets/:id", s.GetPetByID)

	api.POST("/visits", s.CreateVisit)
	api.GET("/visits", s.ListVisits)
	api.GET("/visits/:id", s.GetVisitByID)
	api.GET("/visits/:id/reminder-eligibility", s.PreviewReminderEligibility)

	api.GET("/dashboard/due-today", s.ListDueToday)
	api.GET("/dashboard/upcoming", s.ListUpcoming)

	api.POST("/reminders/run", s.RunReminderCycle)
}
