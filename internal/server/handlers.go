// Package server exposes content generation over HTTP. Every endpoint binds
// and validates its request, delegates to the content service, and wraps
// the outcome in the shared response envelope. Outcomes are also appended
// to the generation event log, best effort.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/courseforge/courseforge/internal/content"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/store"
)

// Handler holds the dependencies shared by all endpoints.
type Handler struct {
	svc    *content.Service
	events store.EventRepo
	log    *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc *content.Service, events store.EventRepo, log *logger.Logger) *Handler {
	return &Handler{svc: svc, events: events, log: log}
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// record appends a generation event; failures are logged, never surfaced.
func (h *Handler) record(c *gin.Context, topic, difficulty string, start time.Time, result *content.Result, err error) {
	data := store.GenerationEventData{
		Endpoint:   c.FullPath(),
		Topic:      topic,
		Difficulty: difficulty,
		Success:    err == nil,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if result != nil {
		data.DefaultsUsed = result.DefaultsUsed
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	if appendErr := h.events.AppendGeneration(c.Request.Context(), data); appendErr != nil {
		h.log.Warn("failed to record generation event", zap.Error(appendErr))
	}
}

// respond translates a service outcome into the envelope. Generation
// failures stay HTTP 200 with success=false.
func (h *Handler) respond(c *gin.Context, result *content.Result, err error) {
	if err != nil {
		h.log.Error("generation failed",
			zap.String("endpoint", c.FullPath()), zap.Error(err))
		respondFailure(c, err)
		return
	}
	respondOK(c, result.Data, result.Meta)
}

func (h *Handler) GenerateCourse(c *gin.Context) {
	var req courseRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.GenerateCourse(c.Request.Context(), content.CourseParams{
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Duration:   req.Duration,
	})
	h.record(c, req.Topic, req.Difficulty, start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) GenerateCourseFromAssessment(c *gin.Context) {
	var req courseFromAssessmentRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.GenerateCourseFromAssessment(c.Request.Context(), content.AssessmentCourseParams{
		Topic:      req.Topic,
		Duration:   req.Duration,
		Assessment: req.Assessment,
	})
	h.record(c, req.Topic, "", start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) GenerateCourseWithPersona(c *gin.Context) {
	var req courseWithPersonaRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.GenerateCourseWithPersona(c.Request.Context(), content.PersonaCourseParams{
		PersonaID:  req.PersonaID,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Duration:   req.Duration,
	})
	h.record(c, req.Topic, req.Difficulty, start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) GenerateModuleLessons(c *gin.Context) {
	var req moduleLessonsRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.GenerateModuleLessons(c.Request.Context(), content.ModuleLessonsParams{
		CourseID:          req.CourseID,
		ModuleID:          req.ModuleID,
		Topic:             req.Topic,
		ModuleName:        req.ModuleName,
		ModuleDescription: req.ModuleDescription,
		Difficulty:        req.Difficulty,
		LearningStyle:     req.LearningStyle,
	})
	h.record(c, req.Topic, req.Difficulty, start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) GenerateDailySession(c *gin.Context) {
	var req dailySessionRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.GenerateDailySession(c.Request.Context(), content.DailySessionParams{
		UserID:           req.UserID,
		CourseID:         req.CourseID,
		ModuleID:         req.ModuleID,
		LessonID:         req.LessonID,
		Topic:            req.Topic,
		Difficulty:       req.Difficulty,
		LearningStyle:    req.LearningStyle,
		PreviousSessions: req.PreviousSessions,
		DurationMinutes:  req.DurationMinutes,
	})
	h.record(c, req.Topic, req.Difficulty, start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) GenerateAssessment(c *gin.Context) {
	var req assessmentRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.GenerateAssessment(c.Request.Context(), content.AssessmentParams{
		Topic: req.Topic,
		Type:  req.Type,
		Count: req.Count,
	})
	h.record(c, req.Topic, "", start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) GeneratePracticeSession(c *gin.Context) {
	var req practiceSessionRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.GeneratePracticeSession(c.Request.Context(), content.PracticeSessionParams{
		Topic:                req.Topic,
		Difficulty:           req.Difficulty,
		PreviousInteractions: req.PreviousInteractions,
	})
	h.record(c, req.Topic, req.Difficulty, start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) GeneratePracticeProblems(c *gin.Context) {
	var req practiceProblemsRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.GeneratePracticeProblems(c.Request.Context(), content.PracticeProblemsParams{
		Topic:            req.Topic,
		Difficulty:       req.Difficulty,
		Count:            req.Count,
		IncludeSolutions: req.includeSolutions(),
	})
	h.record(c, req.Topic, req.Difficulty, start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) GenerateTypedContent(c *gin.Context) {
	var req contentRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.GenerateTypedContent(c.Request.Context(), content.TypedContentParams{
		Type:    req.Type,
		Topic:   req.Topic,
		Context: req.Context,
	})
	h.record(c, req.Topic, "", start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.Chat(c.Request.Context(), content.ChatParams{
		Message: req.Message,
		Context: req.Context,
	})
	h.record(c, "", "", start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) CollaborativeTask(c *gin.Context) {
	var req contentRequest
	if !bindAndValidate(c, &req, req.validate) {
		return
	}

	start := time.Now()
	result, err := h.svc.CollaborativeTask(c.Request.Context(), content.CollaborativeParams{
		Topic:   req.Topic,
		Context: req.Context,
	})
	h.record(c, req.Topic, "", start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) GeneratePersona(c *gin.Context) {
	var req personaGenerationRequest
	if !bindAndValidate(c, &req, nil) {
		return
	}

	start := time.Now()
	result, err := h.svc.GeneratePersona(c.Request.Context(), content.PersonaParams{
		UserInput: req.UserInput,
		Topic:     req.Topic,
	})
	h.record(c, req.Topic, "", start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) UpdatePersona(c *gin.Context) {
	var req personaUpdateRequest
	if !bindAndValidate(c, &req, nil) {
		return
	}

	start := time.Now()
	result, err := h.svc.UpdatePersona(c.Request.Context(), content.PersonaUpdateParams{
		PersonaID: req.PersonaID,
		Changes:   req.Changes,
	})
	h.record(c, "", "", start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) GeneratePersonaContent(c *gin.Context) {
	var req personaContentRequest
	if !bindAndValidate(c, &req, nil) {
		return
	}

	start := time.Now()
	result, err := h.svc.GeneratePersonaContent(c.Request.Context(), content.PersonaContentParams{
		PersonaID:   req.PersonaID,
		Topic:       req.Topic,
		ContentType: req.ContentType,
	})
	h.record(c, req.Topic, "", start, result, err)
	h.respond(c, result, err)
}

func (h *Handler) ChatWithPersona(c *gin.Context) {
	var req personaChatRequest
	if !bindAndValidate(c, &req, nil) {
		return
	}

	start := time.Now()
	result, err := h.svc.ChatWithPersona(c.Request.Context(), content.PersonaChatParams{
		PersonaID:     req.PersonaID,
		Message:       req.Message,
		History:       req.History,
		CourseContext: req.CourseContext,
	})
	h.record(c, "", "", start, result, err)
	h.respond(c, result, err)
}

// bindAndValidate binds JSON and runs the optional semantic validator,
// responding 400 in the envelope on failure.
func bindAndValidate(c *gin.Context, req any, validate func() error) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return false
	}
	if validate != nil {
		if err := validate(); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return false
		}
	}
	return true
}
