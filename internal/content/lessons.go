package content

import (
	"context"
	"fmt"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/extract"
	"github.com/courseforge/courseforge/internal/normalize"
)

// ModuleLessonsParams are the inputs for expanding one module into lessons.
type ModuleLessonsParams struct {
	CourseID          string
	ModuleID          string
	Topic             string
	ModuleName        string
	ModuleDescription string
	Difficulty        string
	LearningStyle     map[string]float64
}

// GenerateModuleLessons fills in the detailed lessons for a module that was
// generated as an outline. A failed generation yields three default lessons
// templated from the module name.
func (s *Service) GenerateModuleLessons(ctx context.Context, p ModuleLessonsParams) (*Result, error) {
	style := dominantStyleFloat(p.LearningStyle)

	prompt := fmt.Sprintf(`
Generate detailed lessons for the module "%s" in a course about "%s".

Module description: %s
Difficulty level: %s
Primary learning style: %s

REQUIREMENTS:
1. Create 3-5 lessons that together cover the module's scope
2. Each lesson should have a clear title and substantive content overview
3. Include 2-3 concrete activities per lesson
4. Order lessons in a logical progression
5. Optimize activities for the %s learning style

The response MUST be in valid JSON format with the following structure:

`+"```json\n"+`{
  "lessons": [
    {
      "id": "lesson_1",
      "title": "Lesson Title",
      "content": "Lesson content overview",
      "order": 1,
      "duration": 2,
      "activities": ["Activity 1", "Activity 2"],
      "resources": []
    }
  ]
}`+"\n```"+`

Return ONLY the valid JSON object, no additional text before or after.`,
		p.ModuleName, p.Topic, p.ModuleDescription, p.Difficulty, style, style)

	raw, err := s.generate(ctx, agents.ContentCreator, "module-lessons", prompt)
	if err != nil {
		return nil, err
	}

	lessons, defaulted := normalize.Lessons(extract.Extract(raw), normalize.Context{
		Topic:             p.Topic,
		Difficulty:        p.Difficulty,
		ModuleID:          p.ModuleID,
		ModuleName:        p.ModuleName,
		ModuleDescription: p.ModuleDescription,
	})

	return &Result{
		Data:         lessons,
		DefaultsUsed: defaulted,
		Meta: map[string]any{
			"courseId": p.CourseID,
			"moduleId": p.ModuleID,
		},
	}, nil
}

// dominantStyleFloat picks the highest-scoring learning style from a typed
// score map, "mixed" when empty or all zero.
func dominantStyleFloat(styles map[string]float64) string {
	best := "mixed"
	bestScore := 0.0
	for name, score := range styles {
		if score > bestScore {
			best = name
			bestScore = score
		}
	}
	return best
}
