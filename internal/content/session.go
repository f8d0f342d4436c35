package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/extract"
	"github.com/courseforge/courseforge/internal/normalize"
)

// DailySessionParams are the inputs for daily session generation.
type DailySessionParams struct {
	UserID           string
	CourseID         string
	ModuleID         string
	LessonID         string
	Topic            string
	Difficulty       string
	LearningStyle    map[string]float64
	PreviousSessions []map[string]any
	DurationMinutes  int
}

// GenerateDailySession produces a self-contained learning session sized to
// the requested minutes. Recent session titles feed a progress summary so
// the session connects to what the learner already covered.
func (s *Service) GenerateDailySession(ctx context.Context, p DailySessionParams) (*Result, error) {
	style := dominantStyleFloat(p.LearningStyle)
	summary := progressSummary(p.PreviousSessions)

	prompt := fmt.Sprintf(`
Generate a personalized %d-minute daily learning session on "%s" for a %s level learner with primary %s learning style.

CONTEXT:
- This session is part of a longer course on %s
- %s
- The session should be self-contained but connected to the broader learning journey

REQUIREMENTS FOR THE SESSION:
1. Create a focused, engaging session that can be completed in %d minutes
2. Optimize for %s learning style
3. Include:
   - A clear learning objective
   - Concise content (text, explanations, examples)
   - At least one practical activity or exercise
   - A mini-assessment or reflection question
   - Links to 1-2 additional resources (if relevant)
4. Make it interactive and engaging
5. Include a "What's Next" teaser for the next session

The response MUST be in valid JSON format with title, duration,
learningObjective, and a sections array whose entries have a type of
introduction, content, activity, assessment, resources, or next.

Return ONLY the valid JSON object, no additional text before or after.`,
		p.DurationMinutes, p.Topic, p.Difficulty, style,
		p.Topic, summary, p.DurationMinutes, style)

	raw, err := s.generate(ctx, agents.ContentCreator, "daily-session", prompt)
	if err != nil {
		return nil, err
	}

	session, defaulted := normalize.DailySession(extract.Extract(raw), p.CourseID, p.ModuleID, p.LessonID,
		normalize.Context{
			Topic:           p.Topic,
			Difficulty:      p.Difficulty,
			DurationMinutes: p.DurationMinutes,
		})

	return &Result{
		Data:         session,
		DefaultsUsed: defaulted,
		Meta: map[string]any{
			"userId":   p.UserID,
			"courseId": p.CourseID,
		},
	}, nil
}

// progressSummary renders the learner's recent history as one sentence for
// the prompt. Only the last three sessions contribute titles.
func progressSummary(sessions []map[string]any) string {
	if len(sessions) == 0 {
		return "This is your first session."
	}

	recent := sessions
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	titles := make([]string, 0, len(recent))
	for _, sess := range recent {
		if t, ok := sess["title"].(string); ok && t != "" {
			titles = append(titles, t)
		}
	}
	return fmt.Sprintf("You've completed %d sessions. In your recent sessions, you covered: %s.",
		len(sessions), strings.Join(titles, ", "))
}
