package server

import (
	"fmt"
	"strings"
)

// Request bodies mirror the client contract: camelCase for persona-era
// fields, snake_case for the older course endpoints. Enum fields are
// normalized to lowercase before validation so "Beginner" and "beginner"
// both pass.

var (
	validDifficulties = []string{"beginner", "intermediate", "advanced"}
	validDurations    = []string{"2-weeks", "4-weeks", "8-weeks", "12-weeks"}
	validContentTypes = []string{"text", "code", "visual", "practice"}
	validAssessTypes  = []string{"quiz", "test", "practice"}
)

func oneOf(value, field string, valid []string) (string, error) {
	v := strings.ToLower(value)
	for _, opt := range valid {
		if v == opt {
			return v, nil
		}
	}
	return "", fmt.Errorf("%s must be one of %v", field, valid)
}

type courseRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
	Duration   string `json:"duration" binding:"required"`
}

func (r *courseRequest) validate() error {
	var err error
	if r.Difficulty, err = oneOf(r.Difficulty, "difficulty", validDifficulties); err != nil {
		return err
	}
	r.Duration, err = oneOf(r.Duration, "duration", validDurations)
	return err
}

type contentRequest struct {
	Topic   string         `json:"topic" binding:"required"`
	Type    string         `json:"type" binding:"required"`
	Context map[string]any `json:"context"`
}

func (r *contentRequest) validate() error {
	var err error
	r.Type, err = oneOf(r.Type, "type", validContentTypes)
	return err
}

type assessmentRequest struct {
	Topic string `json:"topic" binding:"required"`
	Type  string `json:"type" binding:"required"`
	Count int    `json:"count"`
}

func (r *assessmentRequest) validate() error {
	var err error
	if r.Type, err = oneOf(r.Type, "type", validAssessTypes); err != nil {
		return err
	}
	// Count clamps rather than errors.
	if r.Count == 0 {
		r.Count = 5
	}
	if r.Count < 1 {
		r.Count = 1
	}
	if r.Count > 20 {
		r.Count = 20
	}
	return nil
}

type chatRequest struct {
	Message string         `json:"message" binding:"required"`
	Context map[string]any `json:"context"`
}

func (r *chatRequest) validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}

type courseFromAssessmentRequest struct {
	Topic      string         `json:"topic" binding:"required"`
	Assessment map[string]any `json:"assessment" binding:"required"`
	Duration   string         `json:"duration" binding:"required"`
}

func (r *courseFromAssessmentRequest) validate() error {
	var err error
	r.Duration, err = oneOf(r.Duration, "duration", validDurations)
	return err
}

type moduleLessonsRequest struct {
	CourseID          string             `json:"course_id" binding:"required"`
	ModuleID          string             `json:"module_id" binding:"required"`
	Topic             string             `json:"topic" binding:"required"`
	ModuleName        string             `json:"module_name" binding:"required"`
	ModuleDescription string             `json:"module_description"`
	Difficulty        string             `json:"difficulty"`
	LearningStyle     map[string]float64 `json:"learning_style"`
}

func (r *moduleLessonsRequest) validate() error {
	if r.Difficulty == "" {
		r.Difficulty = "beginner"
	}
	return nil
}

type dailySessionRequest struct {
	UserID           string             `json:"user_id" binding:"required"`
	CourseID         string             `json:"course_id" binding:"required"`
	ModuleID         string             `json:"module_id"`
	LessonID         string             `json:"lesson_id"`
	Topic            string             `json:"topic" binding:"required"`
	Difficulty       string             `json:"difficulty"`
	LearningStyle    map[string]float64 `json:"learning_style"`
	PreviousSessions []map[string]any   `json:"previous_sessions"`
	DurationMinutes  int                `json:"duration_minutes"`
}

func (r *dailySessionRequest) validate() error {
	if r.Difficulty == "" {
		r.Difficulty = "beginner"
	}
	if r.DurationMinutes <= 0 {
		r.DurationMinutes = 30
	}
	return nil
}

type practiceSessionRequest struct {
	Topic                string           `json:"topic" binding:"required"`
	Difficulty           string           `json:"difficulty"`
	PreviousInteractions []map[string]any `json:"previousInteractions"`
}

func (r *practiceSessionRequest) validate() error {
	if r.Difficulty == "" {
		r.Difficulty = "beginner"
	}
	return nil
}

type practiceProblemsRequest struct {
	Topic            string `json:"topic" binding:"required"`
	Difficulty       string `json:"difficulty"`
	Count            int    `json:"count"`
	IncludeSolutions *bool  `json:"includeSolutions"`
}

func (r *practiceProblemsRequest) validate() error {
	if r.Difficulty == "" {
		r.Difficulty = "medium"
	}
	if r.Count == 0 {
		r.Count = 3
	}
	if r.Count < 1 {
		r.Count = 1
	}
	if r.Count > 10 {
		r.Count = 10
	}
	return nil
}

func (r *practiceProblemsRequest) includeSolutions() bool {
	if r.IncludeSolutions == nil {
		return true
	}
	return *r.IncludeSolutions
}

type personaGenerationRequest struct {
	UserInput string `json:"userInput" binding:"required"`
	Topic     string `json:"topic" binding:"required"`
}

type personaUpdateRequest struct {
	PersonaID string `json:"personaId" binding:"required"`
	Changes   string `json:"changes" binding:"required"`
}

type personaContentRequest struct {
	PersonaID   string `json:"personaId" binding:"required"`
	Topic       string `json:"topic" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type courseWithPersonaRequest struct {
	PersonaID  string `json:"personaId" binding:"required"`
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
	Duration   string `json:"duration" binding:"required"`
}

func (r *courseWithPersonaRequest) validate() error {
	var err error
	if r.Difficulty, err = oneOf(r.Difficulty, "difficulty", validDifficulties); err != nil {
		return err
	}
	r.Duration, err = oneOf(r.Duration, "duration", validDurations)
	return err
}

type personaChatRequest struct {
	PersonaID     string              `json:"personaId" binding:"required"`
	Message       string              `json:"message" binding:"required"`
	History       []map[string]string `json:"history"`
	CourseContext map[string]string   `json:"courseContext"`
}
