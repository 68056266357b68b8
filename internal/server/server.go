package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/quizbase/quizbase/internal/cache"
	"github.com/quizbase/quizbase/internal/config"
	"github.com/quizbase/quizbase/internal/middleware"
	questionHttp "github.com/quizbase/quizbase/internal/modules/question/delivery/http"
	questionRepo "github.com/quizbase/quizbase/internal/modules/question/repository"
	questionService "github.com/quizbase/quizbase/internal/modules/question/service"
	userHttp "github.com/quizbase/quizbase/internal/modules/user/delivery/http"
	userRepo "github.com/quizbase/quizbase/internal/modules/user/repository"
	userService "github.com/quizbase/quizbase/internal/modules/user/service"
	"github.com/quizbase/quizbase/pkg/response"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
	auth   userService.AuthService
}

func New(cfg *config.Config, db *gorm.DB, log *zap.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	users := userRepo.NewUserRepository(db)

	authSvc := userService.NewAuthService(users, userService.Config{
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.JWTTTL,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}, log)
	authHandler := userHttp.NewAuthHandler(authSvc)

	var c *cache.Cache
	if cfg.RedisAddr != "" {
		c = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}

	topics := questionRepo.NewTopicRepository(db)
	subtopics := questionRepo.NewSubtopicRepository(db)
	questions := questionRepo.NewQuestionRepository(db)

	questionSvc := questionService.NewQuestionService(topics, subtopics, questions, c)
	questionHandler := questionHttp.NewQuestionHandler(questionSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(middleware.RequestID())
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(log, true))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimitPerIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))
	router.Use(func(ctx *gin.Context) {
		ctx.Set("logger", log)
		ctx.Next()
	})

	router.GET("/health", func(ctx *gin.Context) {
		response.OK(ctx, "ok", nil)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.NewAuthMiddleware(users, cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		session := auth.Group("")
		session.Use(authMiddleware.OptionalAuth())
		{
			session.POST("/logout", authHandler.Logout)
			session.GET("/me", authHandler.Me)
			session.GET("/check-auth", authHandler.CheckAuth)
		}
	}

	q := api.Group("/questions")
	{
		// Public reads
		q.GET("/all", questionHandler.GetAllData)
		q.GET("/topics", questionHandler.GetTopics)
		q.GET("/topics/:id", questionHandler.GetTopicByID)
		q.GET("/topics/:id/subtopics", questionHandler.GetSubtopics)
		q.GET("/subtopics/:id/questions", questionHandler.GetQuestions)
		q.GET("/search", questionHandler.Search)

		// Admin writes
		admin := q.Group("")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			admin.POST("/topics", questionHandler.CreateTopic)
			admin.POST("/subtopics", questionHandler.CreateSubtopic)
			admin.POST("", questionHandler.CreateQuestion)
			admin.PUT("/:id", questionHandler.UpdateQuestion)
			admin.DELETE("/:id", questionHandler.DeleteQuestion)
		}
	}

	return &Server{engine: router, db: db, auth: authSvc}
}

// Engine exposes the router, mainly for tests and the http.Server wiring.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Auth exposes the auth service so main can run bootstrap tasks against
// the same wiring the routes use.
func (s *Server) Auth() userService.AuthService {
	return s.auth
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
