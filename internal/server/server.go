package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/intellious/hrms/internal/audit"
	auditdomain "github.com/intellious/hrms/internal/audit/domain"
	"github.com/intellious/hrms/internal/auth"
	authdomain "github.com/intellious/hrms/internal/auth/domain"
	"github.com/intellious/hrms/internal/auth/token"
	"github.com/intellious/hrms/internal/config"
	"github.com/intellious/hrms/internal/document"
	documentdomain "github.com/intellious/hrms/internal/document/domain"
	"github.com/intellious/hrms/internal/employee"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
	"github.com/intellious/hrms/internal/logger"
	"github.com/intellious/hrms/internal/project"
	projectdomain "github.com/intellious/hrms/internal/project/domain"
	"github.com/intellious/hrms/internal/ratelimit"
	"github.com/intellious/hrms/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	storage.Module,
	ratelimit.Module,
	audit.Module,
	auth.Module,
	employee.Module,
	document.Module,
	project.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger) *gin.Engine {
	return NewEngine(cfg, log)
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
	db          *gorm.DB
	genID       *snowflake.Node
	signer      *token.Signer
	authsvc     authdomain.Service
	employeeSvc employeedomain.Service
	documentSvc documentdomain.Service
	projectSvc  projectdomain.Service
	auditSvc    auditdomain.Service
	otpLimiter  *ratelimit.OTPRequestLimiter
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	GenID       *snowflake.Node
	Signer      *token.Signer
	Authsvc     authdomain.Service
	EmployeeSvc employeedomain.Service
	DocumentSvc documentdomain.Service
	ProjectSvc  projectdomain.Service
	AuditSvc    auditdomain.Service
	OTPLimiter  *ratelimit.OTPRequestLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		genID:       p.GenID,
		signer:      p.Signer,
		authsvc:     p.Authsvc,
		employeeSvc: p.EmployeeSvc,
		documentSvc: p.DocumentSvc,
		projectSvc:  p.ProjectSvc,
		auditSvc:    p.AuditSvc,
		otpLimiter:  p.OTPLimiter,
	}

	svc.registerAuthRoutes()
	svc.registerProfileRoutes()
	svc.registerAdminRoutes()
	svc.registerProjectRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")

	authGroup.POST("/request-otp", s.RequestOTP)
	authGroup.POST("/verify-otp", s.VerifyOTP)
}

func (s *Server) registerProfileRoutes() {
	profile := s.engine.Group("/profile", s.AuthRequired())

	profile.GET("", s.GetProfile)
	profile.PUT("", s.UpdateProfile)

	profile.GET("/documents", s.ListDocuments)
	profile.POST("/documents", s.UploadDocument)
	profile.GET("/documents/:type/url", s.GetDocumentURL)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.AuthRequired())

	admin.GET("/employees",
		s.RequireRole(employeedomain.RoleAdmin, employeedomain.RoleHR, employeedomain.RoleManager),
		s.ListEmployees)
	admin.GET("/employees/:employeeId",
		s.RequireRole(employeedomain.RoleAdmin, employeedomain.RoleHR, employeedomain.RoleManager),
		s.GetEmployee)
	admin.PATCH("/employees/:employeeId",
		s.RequireRole(employeedomain.RoleAdmin, employeedomain.RoleHR, employeedomain.RoleManager),
		s.RestrictedUpdateEmployee)

	admin.PATCH("/documents/:documentId/status",
		s.RequireRole(employeedomain.RoleAdmin, employeedomain.RoleHR),
		s.SetDocumentStatus)

	admin.GET("/audit-logs",
		s.RequireRole(employeedomain.RoleAdmin, employeedomain.RoleHR),
		s.ListAuditLogs)
}

func (s *Server) registerProjectRoutes() {
	projects := s.engine.Group("/projects", s.AuthRequired())

	projects.GET("", s.ListProjects)
	projects.GET("/:projectId", s.GetProject)
	projects.GET("/:projectId/team", s.GetProjectTeam)
	projects.GET("/employees/:employeeId", s.GetEmployeeProjects)

	projects.POST("",
		s.RequireRole(employeedomain.RoleAdmin, employeedomain.RoleHR, employeedomain.RoleManager),
		s.CreateProject)
	projects.PUT("/:projectId",
		s.RequireRole(employeedomain.RoleAdmin, employeedomain.RoleHR, employeedomain.RoleManager),
		s.UpdateProject)
	projects.DELETE("/:projectId",
		s.RequireRole(employeedomain.RoleAdmin, employeedomain.RoleHR),
		s.DeleteProject)

	projects.POST("/assignments",
		s.RequireRole(employeedomain.RoleAdmin, employeedomain.RoleHR, employeedomain.RoleManager),
		s.AssignEmployee)
	projects.PUT("/assignments",
		s.RequireRole(employeedomain.RoleAdmin, employeedomain.RoleHR, employeedomain.RoleManager),
		s.RemoveAssignment)
}
