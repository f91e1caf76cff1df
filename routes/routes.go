package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vendorisk/assessment-server/config"
	"github.com/vendorisk/assessment-server/controllers"
	"github.com/vendorisk/assessment-server/middleware"
	"github.com/vendorisk/assessment-server/services"
	"github.com/vendorisk/assessment-server/store"
)

// SetupRoutes wires the store, services, and controllers onto the router.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	st := store.New(db)
	identity := services.NewIdentityService(st)
	templates := services.NewTemplateService(st)
	assessments := services.NewAssessmentService(st)

	auth := controllers.NewAuthController(identity, cfg.SessionSecret, cfg.SessionTTL)
	pages := controllers.NewPageController(templates, assessments)
	templateCtl := controllers.NewTemplateController(templates)
	assessmentCtl := controllers.NewAssessmentController(templates, assessments)
	health := controllers.NewHealthController(db)

	r.Use(middleware.RequestID())
	r.NoRoute(controllers.NotFound)

	r.GET("/health", health.Check)

	// Login and register are the only unauthenticated pages; their POSTs are
	// rate limited per client IP.
	authLimiter := middleware.NewIPRateLimiter(cfg.AuthRatePerMin, cfg.AuthRateBurst, 5*time.Minute)
	r.GET("/register", auth.ShowRegister)
	r.POST("/register", middleware.RateLimitByIP(authLimiter), auth.Register)
	r.GET("/login", auth.ShowLogin)
	r.POST("/login", middleware.RateLimitByIP(authLimiter), auth.Login)

	protected := r.Group("/")
	protected.Use(middleware.RequireSession(identity, cfg.SessionSecret))
	{
		protected.GET("/", pages.Home)
		protected.GET("/main", pages.Main)
		protected.GET("/logout", auth.Logout)

		protected.GET("/templates", templateCtl.List)
		protected.GET("/templates/new", templateCtl.NewForm)
		protected.POST("/templates/new", templateCtl.Create)
		protected.GET("/templates/:id", templateCtl.Edit)
		protected.POST("/templates/:id", templateCtl.AddQuestion)
		protected.POST("/templates/:id/delete", templateCtl.Delete)
		protected.POST("/templates/:id/questions/:qid/delete", templateCtl.DeleteQuestion)
		protected.GET("/templates/:id/questions/:qid/edit", templateCtl.EditQuestionForm)
		protected.POST("/templates/:id/questions/:qid/edit", templateCtl.UpdateQuestion)

		protected.GET("/assessments", assessmentCtl.List)
		protected.GET("/assessments/new/:templateId", assessmentCtl.NewForm)
		protected.POST("/assessments/new/:templateId", assessmentCtl.Create)
		protected.GET("/assessments/:id", assessmentCtl.View)
		protected.GET("/assessments/:id/export", assessmentCtl.Export)
		protected.POST("/assessments/:id/delete", assessmentCtl.Delete)
	}
}
