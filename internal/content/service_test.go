package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/llm"
	"github.com/courseforge/courseforge/internal/logger"
)

func newTestService(responses ...string) (*Service, *llm.MockProvider) {
	canned := make([]llm.MockResponse, len(responses))
	for i, r := range responses {
		canned[i] = llm.MockResponse{Content: json.RawMessage(r)}
	}
	mock := llm.NewMockProvider(canned...)
	return New(mock, agents.NewRegistry(), logger.NewNop()), mock
}

func TestGenerateCourse(t *testing.T) {
	svc, mock := newTestService(`{
		"title": "Go Basics",
		"description": "Learn Go",
		"modules": [
			{"name": "Syntax", "lessons": [{"title": "Variables", "content": "About variables"}]}
		]
	}`)

	result, err := svc.GenerateCourse(context.Background(), CourseParams{
		Topic: "Go", Difficulty: "beginner", Duration: "4 weeks",
	})
	if err != nil {
		t.Fatalf("GenerateCourse: %v", err)
	}

	course := result.Data.(map[string]any)
	if course["title"] != "Go Basics" {
		t.Errorf("title = %v", course["title"])
	}
	modules := course["modules"].([]any)
	if len(modules) != 1 {
		t.Fatalf("got %d modules, want 1", len(modules))
	}
	module := modules[0].(map[string]any)
	if module["title"] != "Syntax" {
		t.Errorf("module title = %v, want name promoted to title", module["title"])
	}
	if module["completed"] != false || module["progress"] != 0 {
		t.Errorf("module progress fields not defaulted: %v / %v", module["completed"], module["progress"])
	}
	lesson := module["lessons"].([]any)[0].(map[string]any)
	for _, key := range []string{"exercises", "resources", "sessions"} {
		if _, ok := lesson[key].([]any); !ok {
			t.Errorf("lesson missing %s collection", key)
		}
	}

	if mock.CallCount() != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount())
	}
	if mock.Calls[0].Temperature != 0.7 || mock.Calls[0].MaxTokens != 1000 {
		t.Errorf("course designer params not applied: %+v", mock.Calls[0])
	}
}

func TestGenerateCourseRequestsStructuredOutput(t *testing.T) {
	svc, mock := newTestService(`{"title": "T", "modules": [{"name": "M"}]}`)

	if _, err := svc.GenerateCourse(context.Background(), CourseParams{Topic: "Go"}); err != nil {
		t.Fatalf("GenerateCourse: %v", err)
	}
	schema := mock.Calls[0].Schema
	if schema == nil {
		t.Fatal("request carried no response schema")
	}
	if schema.Name != "course-structure" {
		t.Errorf("schema name = %q, want course-structure", schema.Name)
	}
}

func TestGenerateAssessmentRequestsStructuredOutput(t *testing.T) {
	svc, mock := newTestService(`{"questions": [{"id": "q1", "question": "Q?", "options": ["a", "b"]}]}`)

	if _, err := svc.GenerateAssessment(context.Background(), AssessmentParams{Topic: "Go", Count: 1}); err != nil {
		t.Fatalf("GenerateAssessment: %v", err)
	}
	if schema := mock.Calls[0].Schema; schema == nil || schema.Name != "assessment-questions" {
		t.Fatalf("schema = %+v, want assessment-questions", schema)
	}
}

func TestGenerateCourseSalvagesSchemaRejectedBody(t *testing.T) {
	// A body that fails schema validation but still parses is recovered
	// through extraction instead of failing the operation.
	body := `{"title": "Go Basics", "modules": [{"lessons": [{"title": "Vars"}]}]}`
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrInvalidResponse{
		Content: json.RawMessage(body),
		Err:     errors.New("missing module name"),
	}})
	svc := New(mock, agents.NewRegistry(), logger.NewNop())

	result, err := svc.GenerateCourse(context.Background(), CourseParams{Topic: "Go"})
	if err != nil {
		t.Fatalf("GenerateCourse: %v", err)
	}
	course := result.Data.(map[string]any)
	if course["title"] != "Go Basics" {
		t.Errorf("title = %v, want salvaged body", course["title"])
	}
}

func TestGenerateCourseRejectsModulelessResponse(t *testing.T) {
	svc, _ := newTestService(`{"title": "Empty", "modules": []}`)

	_, err := svc.GenerateCourse(context.Background(), CourseParams{Topic: "Go"})
	if !errors.Is(err, ErrInvalidStructure) {
		t.Fatalf("err = %v, want ErrInvalidStructure", err)
	}
}

func TestGenerateCourseFromAssessmentFallback(t *testing.T) {
	svc, _ := newTestService(`I'm unable to produce that course right now.`)

	result, err := svc.GenerateCourseFromAssessment(context.Background(), AssessmentCourseParams{
		Topic:    "Rust",
		Duration: "6-8 weeks",
		Assessment: map[string]any{
			"learningStyle": map[string]any{
				"visual": 0.8, "auditory": 0.1, "reading": 0.3, "kinesthetic": 0.2,
			},
			"priorKnowledge": map[string]any{"level": "intermediate"},
		},
	})
	if err != nil {
		t.Fatalf("GenerateCourseFromAssessment: %v", err)
	}
	if !result.DefaultsUsed {
		t.Error("expected DefaultsUsed on fallback")
	}
	if result.Meta["note"] != "Using fallback course structure" {
		t.Errorf("note = %v", result.Meta["note"])
	}

	course := result.Data.(map[string]any)
	modules := course["modules"].([]any)
	if len(modules) != 6 {
		t.Fatalf("got %d fallback modules, want 6", len(modules))
	}
	if course["difficulty"] != "intermediate" {
		t.Errorf("difficulty = %v, want level from assessment", course["difficulty"])
	}
	desc := course["description"].(string)
	if want := "optimized for visual learners"; !strings.Contains(desc, want) {
		t.Errorf("description %q does not mention %q", desc, want)
	}
}

func TestGenerateAssessmentFromProse(t *testing.T) {
	svc, _ := newTestService(`Here are your questions:

1. How do you learn best?
a) Watching videos
b) Reading books
Answer: a

2. How much time can you spend each week?
a) Under two hours
b) Over two hours
Answer: b
`)

	result, err := svc.GenerateAssessment(context.Background(), AssessmentParams{
		Topic: "Python", Type: "multiple_choice", Count: 2,
	})
	if err != nil {
		t.Fatalf("GenerateAssessment: %v", err)
	}

	assessment := result.Data.(map[string]any)
	questions := assessment["questions"].([]any)
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2 recovered from prose", len(questions))
	}
	q1 := questions[0].(map[string]any)
	if q1["correctAnswer"] != "a) Watching videos" {
		t.Errorf("correctAnswer = %v, want resolved option", q1["correctAnswer"])
	}
	if assessment["totalPoints"] != 20 {
		t.Errorf("totalPoints = %v, want 20", assessment["totalPoints"])
	}
	if assessment["timeLimit"] != "15 minutes" {
		t.Errorf("timeLimit = %v, want floor of 15 minutes", assessment["timeLimit"])
	}
	if assessment["passingScore"] != 14 {
		t.Errorf("passingScore = %v, want 14", assessment["passingScore"])
	}
}

func TestGenerateAssessmentUsesAssessmentCreatorParams(t *testing.T) {
	svc, mock := newTestService(`{"questions": [{"id": "q1", "question": "Q?", "options": ["a", "b"]}]}`)

	if _, err := svc.GenerateAssessment(context.Background(), AssessmentParams{Topic: "Go", Count: 1}); err != nil {
		t.Fatalf("GenerateAssessment: %v", err)
	}
	if mock.Calls[0].Temperature != 0.5 || mock.Calls[0].MaxTokens != 2000 {
		t.Errorf("assessment params = %v/%v, want 0.5/2000",
			mock.Calls[0].Temperature, mock.Calls[0].MaxTokens)
	}
}

func TestGenerateModuleLessonsDefaults(t *testing.T) {
	svc, _ := newTestService(`not json at all`)

	result, err := svc.GenerateModuleLessons(context.Background(), ModuleLessonsParams{
		CourseID: "c1", ModuleID: "m1",
		Topic: "SQL", ModuleName: "Joins", ModuleDescription: "Joining tables",
	})
	if err != nil {
		t.Fatalf("GenerateModuleLessons: %v", err)
	}
	if !result.DefaultsUsed {
		t.Error("expected DefaultsUsed")
	}

	lessons := result.Data.(map[string]any)["lessons"].([]any)
	if len(lessons) != 3 {
		t.Fatalf("got %d default lessons, want 3", len(lessons))
	}
	first := lessons[0].(map[string]any)
	if first["title"] != "Introduction to Joins" {
		t.Errorf("title = %v", first["title"])
	}
	if result.Meta["moduleId"] != "m1" {
		t.Errorf("meta moduleId = %v", result.Meta["moduleId"])
	}
}

func TestChatCoercesPlainContent(t *testing.T) {
	svc, _ := newTestService(`{"content": "Recursion is a function calling itself."}`)

	result, err := svc.Chat(context.Background(), ChatParams{Message: "What is recursion?"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	data := result.Data.(map[string]any)
	if data["response"] != "Recursion is a function calling itself." {
		t.Errorf("response = %v", data["response"])
	}
	if data["type"] != "explanation" {
		t.Errorf("type = %v, want explanation", data["type"])
	}
}

func TestChatFallsBackToRawText(t *testing.T) {
	svc, _ := newTestService(`Just plain prose with no JSON anywhere.`)

	result, err := svc.Chat(context.Background(), ChatParams{Message: "hi"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	data := result.Data.(map[string]any)
	if data["type"] != "raw" {
		t.Errorf("type = %v, want raw", data["type"])
	}
}

func TestGeneratePracticeProblemsInjectsSolutions(t *testing.T) {
	svc, _ := newTestService(`[{"title": "Reverse a list", "description": "Reverse it."}]`)

	result, err := svc.GeneratePracticeProblems(context.Background(), PracticeProblemsParams{
		Topic: "Python", Difficulty: "medium", Count: 1, IncludeSolutions: true,
	})
	if err != nil {
		t.Fatalf("GeneratePracticeProblems: %v", err)
	}

	problems := result.Data.([]any)
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1", len(problems))
	}
	p := problems[0].(map[string]any)
	if p["solution"] != `Solution for 'Reverse a list'` {
		t.Errorf("solution = %v", p["solution"])
	}
	if len(p["hints"].([]any)) == 0 {
		t.Error("hints not defaulted")
	}
}

func TestGeneratePersonaPipeline(t *testing.T) {
	svc, mock := newTestService(
		`{"id": "profile_1", "goals": ["learn"], "learningStyle": "visual"}`,
		`{"id": "persona_1", "name": "Prof. Gopher", "role": "mentor"}`,
		`{"id": "content_1", "title": "Welcome", "content": "Hello!"}`,
	)

	result, err := svc.GeneratePersona(context.Background(), PersonaParams{
		UserInput: "I want to learn Go for backend work", Topic: "Go",
	})
	if err != nil {
		t.Fatalf("GeneratePersona: %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("CallCount = %d, want 3 pipeline stages", mock.CallCount())
	}

	data := result.Data.(map[string]any)
	persona := data["persona"].(map[string]any)
	if persona["name"] != "Prof. Gopher" {
		t.Errorf("persona name = %v", persona["name"])
	}
	if persona["tone"] == "" {
		t.Error("persona tone not defaulted")
	}
	contentObj := data["initialContent"].(map[string]any)
	if contentObj["personaId"] != "persona_1" {
		t.Errorf("initialContent personaId = %v, want persona id", contentObj["personaId"])
	}
}

func TestCollaborativeTaskTwoStages(t *testing.T) {
	svc, mock := newTestService(
		`{"sections": ["intro", "body"]}`,
		`{"title": "Full Content", "sections": [{"name": "intro"}]}`,
	)

	result, err := svc.CollaborativeTask(context.Background(), CollaborativeParams{Topic: "Kubernetes"})
	if err != nil {
		t.Fatalf("CollaborativeTask: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("CallCount = %d, want 2", mock.CallCount())
	}
	data := result.Data.(map[string]any)
	if data["title"] != "Full Content" {
		t.Errorf("title = %v", data["title"])
	}
}

func TestGenerateTypedContentRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GenerateTypedContent(context.Background(), TypedContentParams{Type: "hologram", Topic: "Go"})
	if err == nil {
		t.Fatal("expected error for unknown content type")
	}
}

func TestGenerateTypedContentVisualPatches(t *testing.T) {
	svc, _ := newTestService(`{"content": "graph TD; A-->B"}`)

	result, err := svc.GenerateTypedContent(context.Background(), TypedContentParams{
		Type: "visual", Topic: "Go routines",
		Context: map[string]any{"visualType": "mindmap"},
	})
	if err != nil {
		t.Fatalf("GenerateTypedContent: %v", err)
	}
	data := result.Data.(map[string]any)
	if data["type"] != "mindmap" {
		t.Errorf("type = %v, want mindmap", data["type"])
	}
	if data["code"] != "graph TD; A-->B" {
		t.Errorf("code = %v, want content promoted", data["code"])
	}
}

