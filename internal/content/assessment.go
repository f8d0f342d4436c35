package content

import (
	"context"
	"fmt"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/extract"
	"github.com/courseforge/courseforge/internal/normalize"
)

// AssessmentParams are the inputs for assessment generation.
type AssessmentParams struct {
	Topic string
	Type  string
	Count int
}

// GenerateAssessment produces learning-preference questions for a topic.
// The questions probe how the learner wants to study, not topic knowledge.
// Recovery is layered: JSON from the response, questions parsed out of
// numbered prose, then a canned default set.
func (s *Service) GenerateAssessment(ctx context.Context, p AssessmentParams) (*Result, error) {
	prompt := fmt.Sprintf(`
Generate %d assessment questions to evaluate a user's learning preferences, styles, and needs for a course on %s.

Important guidelines:
1. Do NOT create technical questions about %s. Instead, focus on assessing:
   - Learning style preferences (visual, auditory, reading, kinesthetic)
   - Time availability and commitment
   - Prior experience level with the topic
   - Content preferences (videos, reading, projects, etc.)
   - Learning challenges and concerns
   - Goals and motivations
   - Preferred learning pace

2. For multiple choice questions:
   - Provide clear, descriptive options that represent different preferences
   - Each option should be a complete, grammatically correct phrase
   - Label options as full sentences, not just "Option A" or "Option 1"
   - Ensure options are distinct and cover a range of preferences

3. Each question should help customize the learning experience
4. Include explanations for why each question is important for course customization
5. The response MUST be in valid JSON format with the following structure:

`+"```json\n"+`{
  "questions": [
    {
      "id": "q1",
      "type": "multiple_choice",
      "question": "How do you prefer to learn new concepts?",
      "options": ["By watching videos and demonstrations", "By listening to explanations and discussions", "By reading detailed materials and documentation", "By hands-on practice and experimentation"],
      "correctAnswer": "By watching videos and demonstrations",
      "explanation": "This helps identify the learner's primary learning style preference.",
      "difficulty": "easy",
      "category": "learning_style"
    }
  ],
  "totalPoints": %d,
  "timeLimit": "%d minutes",
  "passingScore": %d
}`+"\n```"+`

Return ONLY the valid JSON object, no additional text before or after.`,
		p.Count, p.Topic, p.Topic,
		p.Count*10, max(15, p.Count*2), p.Count*7)

	raw, err := s.generateStructured(ctx, agents.AssessmentCreator, "assessment", prompt, assessmentSchema)
	if err != nil {
		return nil, err
	}

	parsed := extract.Extract(raw)
	assessment, defaulted := normalize.Assessment(parsed, raw, normalize.Context{
		Topic: p.Topic,
		Count: p.Count,
	})

	result := &Result{Data: assessment, DefaultsUsed: defaulted}
	if obj, ok := parsed.(map[string]any); !ok || len(list(obj, "questions")) == 0 {
		result.note("Using default questions due to generation failure")
	}
	return result, nil
}
