package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/careerforge/backend/config"
	"github.com/careerforge/backend/internal/api/handlers"
	"github.com/careerforge/backend/internal/api/middleware"
	"github.com/careerforge/backend/internal/api/routes"
	"github.com/careerforge/backend/internal/cache"
	"github.com/careerforge/backend/internal/logger"
	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/providers/beautify"
	"github.com/careerforge/backend/internal/providers/jobsearch"
	"github.com/careerforge/backend/internal/providers/llm"
	"github.com/careerforge/backend/internal/providers/speech"
	mongorepo "github.com/careerforge/backend/internal/repositories/mongo"
	pgrepo "github.com/careerforge/backend/internal/repositories/postgres"
	"github.com/careerforge/backend/internal/services"
	"github.com/careerforge/backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()
	ctx := context.Background()

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	l.Info("MongoDB connected")

	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("Mongo index error: %v", err)
	}

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	if err := config.PostgresDB.AutoMigrate(
		&models.Profile{},
		&models.Job{},
		&models.Application{},
		&models.CVFile{},
	); err != nil {
		log.Fatalf("Postgres migrate error: %v", err)
	}

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	// Providers
	ai, err := llm.NewVertexGemini(ctx,
		os.Getenv("GOOGLE_PROJECT_ID"),
		os.Getenv("GOOGLE_LOCATION"),
		os.Getenv("GEMINI_MODEL"),
	)
	if err != nil {
		log.Fatalf("Vertex AI init error: %v", err)
	}
	defer ai.Close()

	stt, err := speech.NewGoogleSTT(ctx)
	if err != nil {
		log.Fatalf("Speech-to-Text init error: %v", err)
	}
	defer stt.Close()

	tts, err := speech.NewGoogleTTS(ctx)
	if err != nil {
		log.Fatalf("Text-to-Speech init error: %v", err)
	}
	defer tts.Close()

	uploader, err := storage.NewGCSUploader(ctx, os.Getenv("GCS_BUCKET"))
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}
	defer uploader.Close()

	formatter := beautify.NewClient(os.Getenv("BEAUTIFIER_URL"), os.Getenv("BEAUTIFIER_API_KEY"))
	jobProvider := jobsearch.NewClient(os.Getenv("JOBSEARCH_URL"), os.Getenv("JOBSEARCH_API_KEY"))

	// Repositories
	mongoDB := config.MongoDatabase()
	interviewRepo := mongorepo.NewInterviewRepo(mongoDB)
	resumeRepo := mongorepo.NewResumeRepo(mongoDB)
	profileRepo := pgrepo.NewProfileRepo(config.PostgresDB)
	jobRepo := pgrepo.NewJobRepo(config.PostgresDB)
	appRepo := pgrepo.NewApplicationRepo(config.PostgresDB)
	cvRepo := pgrepo.NewCVFileRepo(config.PostgresDB)

	rcache := cache.NewRedisCache(config.RedisClient)

	// Services
	interviewSvc := services.NewInterviewService(interviewRepo, ai, l)
	resumeSvc := services.NewResumeService(resumeRepo, profileRepo, ai, formatter, l)
	profileSvc := services.NewProfileService(profileRepo, rcache, ai, l)
	jobSvc := services.NewJobService(jobProvider, jobRepo, profileRepo, rcache, ai, l)
	appSvc := services.NewApplicationService(appRepo, jobRepo)
	chatSvc := services.NewChatService(ai, l)
	speechSvc := services.NewSpeechService(stt, tts)
	cvSvc := services.NewCVFileService(cvRepo, uploader)
	statsSvc := services.NewStatsService(interviewRepo, resumeRepo)

	// HTTP server
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Interview:   handlers.NewInterviewHandler(interviewSvc, speechSvc),
		Resume:      handlers.NewResumeHandler(resumeSvc),
		Profile:     handlers.NewProfileHandler(profileSvc),
		Job:         handlers.NewJobHandler(jobSvc),
		Application: handlers.NewApplicationHandler(appSvc),
		Chat:        handlers.NewChatHandler(chatSvc, ai),
		Speech:      handlers.NewSpeechHandler(speechSvc),
		CV:          handlers.NewCVHandler(cvSvc),
		Admin:       handlers.NewAdminHandler(statsSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
