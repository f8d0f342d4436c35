package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/content"
	"github.com/courseforge/courseforge/internal/llm"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/store"
)

func newTestRouter(t *testing.T, responses ...string) (*gin.Engine, store.EventRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	canned := make([]llm.MockResponse, len(responses))
	for i, r := range responses {
		canned[i] = llm.MockResponse{Content: json.RawMessage(r)}
	}
	mock := llm.NewMockProvider(canned...)

	st, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := content.New(mock, agents.NewRegistry(), logger.NewNop())
	h := NewHandler(svc, st.EventRepo(), logger.NewNop())
	return NewRouter(h, logger.NewNop()), st.EventRepo()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"decode envelope from %s: %s", path, rec.Body.String())
	return rec, env
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestGenerateCourseEndpoint(t *testing.T) {
	router, events := newTestRouter(t, `{
		"title": "Go Basics",
		"modules": [{"name": "Syntax", "lessons": [{"title": "Variables"}]}]
	}`)

	rec, env := doJSON(t, router, http.MethodPost, "/course/generate", map[string]any{
		"topic": "Go", "difficulty": "Beginner", "duration": "4-weeks",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, env.Success, env.Error)

	course := env.Data.(map[string]any)
	assert.Equal(t, "Go Basics", course["title"])
	assert.Equal(t, "beginner", course["difficulty"], "enum input should be lowercased")
	assert.Contains(t, env.Metadata, "timestamp")

	recorded, err := events.QueryGenerations(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, "/course/generate", recorded[0].Endpoint)
	assert.True(t, recorded[0].Success)
}

func TestGenerateCourseRejectsBadDifficulty(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/course/generate", map[string]any{
		"topic": "Go", "difficulty": "impossible", "duration": "4-weeks",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestGenerateCourseRejectsMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/course/generate", map[string]any{
		"topic": "Go",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerationFailureKeepsHTTP200(t *testing.T) {
	// A moduleless course is a generation failure, not a request error.
	router, events := newTestRouter(t, `{"title": "Empty", "modules": []}`)

	rec, env := doJSON(t, router, http.MethodPost, "/course/generate", map[string]any{
		"topic": "Go", "difficulty": "beginner", "duration": "4-weeks",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)

	recorded, err := events.QueryGenerations(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.False(t, recorded[0].Success)
}

func TestAssessmentEndpointDefaultsCount(t *testing.T) {
	router, _ := newTestRouter(t, `{"questions": [
		{"id": "q1", "question": "How do you learn best?", "options": ["a", "b"]}
	]}`)

	rec, env := doJSON(t, router, http.MethodPost, "/assessment/generate", map[string]any{
		"topic": "Python", "type": "quiz",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success, env.Error)
	assessment := env.Data.(map[string]any)
	assert.Contains(t, assessment, "questions")
}

func TestPracticeProblemsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, `[{"title": "Reverse a list", "description": "Reverse it."}]`)

	rec, env := doJSON(t, router, http.MethodPost, "/practice/problems", map[string]any{
		"topic": "Python",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success, env.Error)
	problems := env.Data.([]any)
	require.Len(t, problems, 1)
	p := problems[0].(map[string]any)
	assert.NotNil(t, p["solution"], "solutions should default to included")
}

func TestContentEndpointRejectsUnknownType(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/content/generate", map[string]any{
		"topic": "Go", "type": "hologram",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, `{"response": "Recursion is self-reference.", "type": "explanation"}`)

	rec, env := doJSON(t, router, http.MethodPost, "/chat", map[string]any{
		"message": "What is recursion?",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success, env.Error)
	data := env.Data.(map[string]any)
	assert.Equal(t, "Recursion is self-reference.", data["response"])
}

func TestPersonaChatEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, `"Happy to walk you through pointers."`)

	rec, env := doJSON(t, router, http.MethodPost, "/persona/chat", map[string]any{
		"personaId": "persona_1", "message": "Explain pointers",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success, env.Error)
	data := env.Data.(map[string]any)
	assert.Equal(t, "Happy to walk you through pointers.", data["response"])
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
