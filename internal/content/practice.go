package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/extract"
	"github.com/courseforge/courseforge/internal/normalize"
)

// PracticeSessionParams are the inputs for interactive practice generation.
type PracticeSessionParams struct {
	Topic                string
	Difficulty           string
	PreviousInteractions []map[string]any
}

// GeneratePracticeSession produces an interactive practice session. Recent
// interactions are folded into the prompt so exercises build on what the
// learner just did.
func (s *Service) GeneratePracticeSession(ctx context.Context, p PracticeSessionParams) (*Result, error) {
	history := ""
	if len(p.PreviousInteractions) > 0 {
		recent := p.PreviousInteractions
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		lines := make([]string, 0, len(recent))
		for _, interaction := range recent {
			content, _ := interaction["content"].(string)
			if content == "" {
				content = "Interaction content"
			}
			lines = append(lines, "- "+content)
		}
		history = "Previous interactions:\n" + strings.Join(lines, "\n")
	}

	prompt := fmt.Sprintf(`
Generate an interactive practice session on "%s" at %s difficulty level.

%s

The practice session should be engaging, interactive, and focused on application of knowledge.
It should include:
1. A brief introduction/description of the practice focus
2. 2-4 focused practice exercises or problems
3. Clear instructions for each exercise
4. Solutions or answer explanations for each exercise

The response MUST be in valid JSON format with title, description, an
exercises array (each exercise with id, type, question, steps, solution),
difficulty, and estimatedTime.

Return ONLY the valid JSON object, no additional text before or after.`,
		p.Topic, p.Difficulty, history)

	raw, err := s.generate(ctx, agents.PracticeGenerator, "practice-session", prompt)
	if err != nil {
		return nil, err
	}

	session, defaulted := normalize.PracticeSession(extract.Extract(raw),
		normCtx(p.Topic, p.Difficulty, ""))

	return &Result{
		Data:         session,
		DefaultsUsed: defaulted,
		Meta: map[string]any{
			"topic":      p.Topic,
			"difficulty": p.Difficulty,
		},
	}, nil
}

// PracticeProblemsParams are the inputs for standalone problem generation.
type PracticeProblemsParams struct {
	Topic            string
	Difficulty       string
	Count            int
	IncludeSolutions bool
}

// GeneratePracticeProblems produces a list of standalone practice problems.
// This is the one list-shaped operation in the service.
func (s *Service) GeneratePracticeProblems(ctx context.Context, p PracticeProblemsParams) (*Result, error) {
	solutionLine := "Include a complete solution"
	solutionField := ", plus a solution field"
	if !p.IncludeSolutions {
		solutionLine = "Not include solutions"
		solutionField = ""
	}

	prompt := fmt.Sprintf(`
Generate %d practice problems on "%s" at %s difficulty level.

Each problem should:
1. Have a clear title
2. Include a detailed description of the problem
3. Be categorized appropriately
4. Include relevant tags
5. %s
6. Include 1-2 helpful hints (without giving away the answer)
7. Indicate estimated time to complete

The response MUST be in valid JSON format: an array of problem objects, each
with id, title, description, difficulty, category, tags, hints, and
expectedTime fields%s.

Return ONLY the valid JSON array, no additional text before or after.`,
		p.Count, p.Topic, p.Difficulty, solutionLine, solutionField)

	raw, err := s.generate(ctx, agents.PracticeGenerator, "practice-problems", prompt)
	if err != nil {
		return nil, err
	}

	problems, defaulted := normalize.PracticeProblems(extract.Extract(raw), normalize.Context{
		Topic:            p.Topic,
		Difficulty:       p.Difficulty,
		Count:            p.Count,
		IncludeSolutions: p.IncludeSolutions,
	})

	return &Result{
		Data:         problems,
		DefaultsUsed: defaulted,
		Meta: map[string]any{
			"topic":      p.Topic,
			"difficulty": p.Difficulty,
			"count":      p.Count,
		},
	}, nil
}
