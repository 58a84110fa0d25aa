package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireai/portal/internal/api/handlers"
	"github.com/hireai/portal/internal/api/middleware"
	"github.com/hireai/portal/internal/services"
)

type Deps struct {
	Identity         services.IdentityService
	Auth             *handlers.AuthHandler
	Session          *handlers.SessionHandler
	Jobs             *handlers.JobHandler
	Candidates       *handlers.CandidateHandler
	CandidateWizard  *handlers.WizardHandler
	RecruiterProfile *handlers.WizardHandler
	CookieSecure     bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Every other route knows its browser and session.
	app := r.Group("/")
	app.Use(middleware.BrowserSession(d.CookieSecure), middleware.LoadSession(d.Identity))

	app.GET("/session", d.Session.Get)
	app.GET("/navigate", d.Session.Navigate)

	auth := app.Group("/auth")
	auth.POST("/login", d.Auth.Login)
	auth.POST("/signup", d.Auth.Signup)
	auth.POST("/send-otp", d.Auth.SendOTP)
	auth.POST("/verify-otp", d.Auth.VerifyOTP)
	auth.POST("/reset-password", d.Auth.ResetPassword)
	auth.POST("/logout", d.Auth.Logout)
	for path, provider := range map[string]string{"/google": "Google", "/microsoft": "Microsoft"} {
		callback := d.Auth.OAuthCallback(provider)
		auth.GET(path+"/success", callback)
		auth.GET(path+"/error", callback)
	}

	candidate := app.Group("/candidate")
	candidate.Use(middleware.RequireCandidate())
	candidate.GET("/jobs", d.Jobs.List)
	candidate.GET("/job-details/:jobId", d.Jobs.Get)
	registerWizard(candidate.Group("/profile/edit"), d.CandidateWizard)

	recruiter := app.Group("/recruiter")
	recruiter.Use(middleware.RequireRecruiter())
	create := recruiter.Group("/create-profile")
	registerWizard(create, d.RecruiterProfile)
	create.POST("/photo", d.Candidates.UploadPhoto)

	recruiter.POST("/post-job", d.Jobs.Create)
	recruiter.GET("/my-jobs", d.Jobs.Mine)
	recruiter.GET("/my-jobs/:id", d.Jobs.Get)
	recruiter.PUT("/my-jobs/:id", d.Jobs.Update)
	recruiter.DELETE("/my-jobs/:id", d.Jobs.Delete)

	recruiter.GET("/candidates", d.Candidates.List)
	recruiter.GET("/candidate/:candidateId", d.Candidates.Get)
}

func registerWizard(g *gin.RouterGroup, h *handlers.WizardHandler) {
	g.GET("", h.Get)
	g.POST("", h.Start)
	g.PATCH("", h.Mutate)
	g.DELETE("", h.Discard)
	g.POST("/next", h.Next)
	g.POST("/back", h.Back)
}
