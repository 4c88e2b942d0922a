package router

import (
	"github.com/BolnidiManikanta/Virtual-Lab/internal/assignment"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/audit"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/auth"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/config"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/handler"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/middleware"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/stats"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the constructed components into the route table.
type Deps struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Users    store.UserStore
	Registry *store.DBStore // nil unless registration is enabled
	Authn    *auth.Authenticator
	Sink     audit.Sink
}

// Setup configures the Gin engine, templates, static resources and routes.
func Setup(d Deps) *gin.Engine {
	if d.Cfg.Server.Mode != "" {
		gin.SetMode(d.Cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.SecurityHeaders(d.Cfg.Server.Mode == "release"))
	r.Use(middleware.CSRF(nil))

	r.Static("/static", d.Cfg.Server.Static)
	r.LoadHTMLGlob(d.Cfg.Server.Templates)

	mgr := assignment.NewManager(d.DB)
	statsSvc := stats.NewService(d.Users, d.DB)

	authHandler := handler.NewAuthHandler(d.Authn, d.Users, d.Registry, d.Cfg)
	dashHandler := handler.NewDashboardHandler(d.Users, statsSvc, mgr, d.Cfg)
	moduleHandler := handler.NewModuleHandler(d.Cfg)
	assignHandler := handler.NewAssignmentHandler(mgr, d.Cfg)
	exportHandler := handler.NewExportHandler(d.DB, mgr)

	cookie := d.Cfg.Session.CookieName

	// public pages
	r.GET("/", authHandler.Home)
	r.GET("/login", authHandler.ShowLogin(models.RoleStudent))
	r.POST("/login", authHandler.Login(models.RoleStudent))
	r.GET("/faculty/login", authHandler.ShowLogin(models.RoleFaculty))
	r.POST("/faculty/login", authHandler.Login(models.RoleFaculty))
	r.GET("/logout", authHandler.Logout)
	r.GET("/healthz", handler.Health(d.DB))

	if d.Cfg.Features.RegistrationEnabled {
		r.POST("/register", authHandler.Register)
	}

	// student pages
	student := r.Group("")
	student.Use(
		middleware.RequireRole(d.Authn, cookie, models.RoleStudent),
		middleware.PageAudit(d.Sink),
	)
	student.GET("/dashboard", dashHandler.Student)
	student.GET("/assignments", assignHandler.StudentList)
	student.POST("/assignments/:id/submit", assignHandler.Submit)

	// faculty pages
	faculty := r.Group("/faculty")
	faculty.Use(
		middleware.RequireRole(d.Authn, cookie, models.RoleFaculty),
		middleware.PageAudit(d.Sink),
	)
	faculty.GET("/dashboard", dashHandler.Faculty)
	faculty.GET("/assignments", assignHandler.FacultyList)
	faculty.GET("/assignments/create", assignHandler.CreateForm)
	faculty.POST("/assignments/create", assignHandler.Create)
	faculty.GET("/assignments/:id", assignHandler.FacultyView)
	faculty.POST("/assignments/:id/close", assignHandler.Close)
	faculty.POST("/submissions/:id/grade", assignHandler.Grade)
	faculty.GET("/export/gradebook.csv", exportHandler.CSV)
	faculty.GET("/export/gradebook.xlsx", exportHandler.XLSX)

	// lab modules are open to any authenticated role
	lab := r.Group("/module")
	lab.Use(
		middleware.RequireAuth(d.Authn, cookie),
		middleware.PageAudit(d.Sink),
	)
	lab.GET("/:slug", moduleHandler.Show)
	lab.POST("/:slug/demo", moduleHandler.Demo)

	// optional JSON API
	if d.Cfg.Features.APIEnabled {
		apiHandler := handler.NewAPIHandler(d.Users, statsSvc)
		api := r.Group("/api/v1")
		api.Use(middleware.RequireAuth(d.Authn, cookie))
		api.GET("/me", apiHandler.Me)
		api.GET("/modules", apiHandler.Modules)
		api.GET("/stats", middleware.RequireRole(d.Authn, cookie, models.RoleFaculty), apiHandler.Overview)
	}

	// unknown routes get the generic 404 page
	r.NoRoute(func(c *gin.Context) {
		c.HTML(404, "error.html", gin.H{
			"title":   "Page Not Found",
			"message": "The requested page could not be found.",
		})
	})

	return r
}
