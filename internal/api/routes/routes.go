package routes

import (
	"github.com/careerforge/backend/internal/api/handlers"
	"github.com/careerforge/backend/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Interview   *handlers.InterviewHandler
	Resume      *handlers.ResumeHandler
	Profile     *handlers.ProfileHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	Chat        *handlers.ChatHandler
	Speech      *handlers.SpeechHandler
	CV          *handlers.CVHandler
	Admin       *handlers.AdminHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/interview/start", d.Interview.Start)
	auth.POST("/interview/next", d.Interview.Next)
	auth.GET("/interview", d.Interview.List)
	auth.GET("/interview/:session_id", d.Interview.Get)
	auth.POST("/interview/:session_id/answer-voice", d.Interview.NextVoice)

	auth.POST("/resumes", d.Resume.Create)
	auth.GET("/resumes", d.Resume.List)
	auth.POST("/resumes/generate", d.Resume.Generate)
	auth.GET("/resumes/:resume_id", d.Resume.Get)
	auth.PUT("/resumes/:resume_id", d.Resume.Update)
	auth.DELETE("/resumes/:resume_id", d.Resume.Delete)
	auth.POST("/resumes/:resume_id/primary", d.Resume.SetPrimary)
	auth.POST("/resumes/:resume_id/score", d.Resume.Score)

	auth.GET("/profile/me", d.Profile.Me)
	auth.PUT("/profile/update", d.Profile.Update)

	auth.GET("/jobs/search", d.Job.Search)
	auth.GET("/jobs/recommended", d.Job.Recommended)

	auth.POST("/applications", d.Application.Create)
	auth.GET("/applications", d.Application.List)
	auth.PUT("/applications/:application_id/status", d.Application.UpdateStatus)

	auth.POST("/chat", d.Chat.Chat)
	auth.GET("/ws/chat", d.Chat.ChatWS)

	auth.POST("/speech/transcribe", d.Speech.Transcribe)
	auth.POST("/speech/synthesize", d.Speech.Synthesize)

	auth.POST("/cv/upload", d.CV.Upload)
	auth.GET("/cv/latest", d.CV.Latest)

	admin := auth.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/stats", d.Admin.Stats)
}
