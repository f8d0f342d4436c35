package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/courseforge/courseforge/internal/logger"
)

// NewRouter assembles the gin engine: CORS, panic recovery into the
// response envelope, the healthcheck, and one route per generation
// operation.
func NewRouter(h *Handler, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(recoverToEnvelope(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	router.GET("/healthcheck", h.HealthCheck)

	// Courses
	router.POST("/course/generate", h.GenerateCourse)
	router.POST("/course/generate-from-assessment", h.GenerateCourseFromAssessment)
	router.POST("/course/generate-with-persona", h.GenerateCourseWithPersona)
	router.POST("/module/generate-lessons", h.GenerateModuleLessons)
	router.POST("/daily-session/generate", h.GenerateDailySession)

	// Assessment and practice
	router.POST("/assessment/generate", h.GenerateAssessment)
	router.POST("/practice/generate", h.GeneratePracticeSession)
	router.POST("/practice/problems", h.GeneratePracticeProblems)

	// Content and chat
	router.POST("/content/generate", h.GenerateTypedContent)
	router.POST("/chat", h.Chat)
	router.POST("/collaborative/task", h.CollaborativeTask)

	// Personas
	router.POST("/persona/generate", h.GeneratePersona)
	router.POST("/persona/update", h.UpdatePersona)
	router.POST("/persona/content", h.GeneratePersonaContent)
	router.POST("/persona/chat", h.ChatWithPersona)

	return router
}

// recoverToEnvelope keeps a panicking handler from tearing down the
// connection without an envelope.
func recoverToEnvelope(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panic",
					zap.String("endpoint", c.FullPath()), zap.Any("panic", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
					Success:  false,
					Error:    "internal server error",
					Metadata: metadata(nil),
				})
			}
		}()
		c.Next()
	}
}
