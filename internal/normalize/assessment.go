package normalize

import (
	"fmt"

	"github.com/courseforge/courseforge/internal/extract"
)

// Assessment coerces a parsed value into a complete assessment record. The
// recovery order is: questions from the parsed object, then questions
// recovered from the raw response text in numbered-list form, then a canned
// default set. Aggregate fields are derived from the final question count:
// ten points per question, at least fifteen minutes on the clock, and a
// passing score of seven points per question.
func Assessment(v any, raw string, c Context) (map[string]any, bool) {
	result, _ := asObject(v)
	defaulted := false

	questions := list(result, "questions")
	if len(questions) == 0 {
		defaulted = true
		questions = toAnySlice(extract.Questions(raw))
		if len(questions) == 0 {
			questions = toAnySlice(defaultAssessmentQuestions())
		}
		result["questions"] = questions
	}

	final := ensureList(result, "questions")
	for i, qv := range final {
		q, ok := asObject(qv)
		if !ok {
			defaulted = true
			final[i] = defaultQuestion(i)
			continue
		}
		defaulted = normalizeQuestion(q, i) || defaulted
	}

	n := len(final)
	setDefault(result, "totalPoints", n*10)
	setDefault(result, "timeLimit", fmt.Sprintf("%d minutes", max(15, n*2)))
	setDefault(result, "passingScore", n*7)

	return result, defaulted
}

// normalizeQuestion pads a single question in place.
func normalizeQuestion(q map[string]any, idx int) bool {
	defaulted := setDefaultStr(q, "id", fmt.Sprintf("q%d", idx+1))
	defaulted = setDefaultStr(q, "question", fmt.Sprintf("Question %d", idx+1)) || defaulted
	setDefaultStr(q, "type", "multiple_choice")
	setDefaultStr(q, "category", "general_knowledge")
	setDefaultStr(q, "difficulty", "medium")

	if opts := list(q, "options"); len(opts) < 2 {
		q["options"] = []any{"Option A", "Option B", "Option C", "Option D"}
		defaulted = true
	}
	if _, ok := q["correctAnswer"]; !ok {
		if ans, ok := q["answer"]; ok {
			q["correctAnswer"] = ans
			delete(q, "answer")
		} else {
			q["correctAnswer"] = list(q, "options")[0]
			defaulted = true
		}
	}
	setDefaultStr(q, "explanation", fmt.Sprintf("Explanation for question %d", idx+1))
	return defaulted
}

func defaultQuestion(idx int) map[string]any {
	return map[string]any{
		"id":            fmt.Sprintf("q%d", idx+1),
		"question":      fmt.Sprintf("Question %d", idx+1),
		"options":       []any{"Option A", "Option B", "Option C", "Option D"},
		"type":          "multiple_choice",
		"category":      "general_knowledge",
		"difficulty":    "medium",
		"correctAnswer": "Option A",
		"explanation":   fmt.Sprintf("Explanation for question %d", idx+1),
	}
}

// defaultAssessmentQuestions is the fallback set used when neither JSON nor
// plain-text recovery yields any questions. The set covers the preference
// categories the course builder personalizes on.
func defaultAssessmentQuestions() []map[string]any {
	return []map[string]any{
		{
			"id":       "q1",
			"type":     "multiple_choice",
			"question": "How do you prefer to learn new concepts?",
			"options": []any{
				"By watching videos and demonstrations",
				"By listening to explanations and discussions",
				"By reading detailed materials and documentation",
				"By hands-on practice and experimentation",
			},
			"correctAnswer": "By watching videos and demonstrations",
			"explanation":   "This helps identify your primary learning style preference.",
			"difficulty":    "easy",
			"category":      "learning_style",
		},
		{
			"id":       "q2",
			"type":     "multiple_choice",
			"question": "How much time can you dedicate to studying this topic each week?",
			"options": []any{
				"Less than 2 hours",
				"2-5 hours",
				"5-10 hours",
				"More than 10 hours",
			},
			"correctAnswer": "2-5 hours",
			"explanation":   "This helps determine appropriate course pacing and content volume.",
			"difficulty":    "easy",
			"category":      "time_availability",
		},
		{
			"id":       "q3",
			"type":     "multiple_choice",
			"question": "What is your current level of experience with this topic?",
			"options": []any{
				"Complete beginner with no prior knowledge",
				"Some basic understanding",
				"Intermediate knowledge",
				"Advanced knowledge",
			},
			"correctAnswer": "Some basic understanding",
			"explanation":   "This helps tailor content to your knowledge level.",
			"difficulty":    "easy",
			"category":      "prior_experience",
		},
		{
			"id":       "q4",
			"type":     "multiple_choice",
			"question": "What type of learning materials do you prefer?",
			"options": []any{
				"Video tutorials and demonstrations",
				"Interactive exercises and quizzes",
				"Comprehensive reading materials",
				"Practical projects and case studies",
			},
			"correctAnswer": "Video tutorials and demonstrations",
			"explanation":   "This helps select appropriate content formats.",
			"difficulty":    "easy",
			"category":      "preferences",
		},
		{
			"id":       "q5",
			"type":     "multiple_choice",
			"question": "What challenges do you typically face when learning something new?",
			"options": []any{
				"Maintaining focus and motivation",
				"Understanding complex or abstract concepts",
				"Finding time to practice consistently",
				"Applying concepts to real-world scenarios",
			},
			"correctAnswer": "Finding time to practice consistently",
			"explanation":   "This helps address potential learning obstacles.",
			"difficulty":    "medium",
			"category":      "challenges",
		},
		{
			"id":       "q6",
			"type":     "multiple_choice",
			"question": "At what pace do you prefer to learn?",
			"options": []any{
				"Intensive and fast-paced",
				"Steady and methodical",
				"Relaxed with plenty of time for review",
				"Variable depending on the topic",
			},
			"correctAnswer": "Steady and methodical",
			"explanation":   "This helps determine appropriate pacing for course materials.",
			"difficulty":    "easy",
			"category":      "goals",
		},
	}
}

func toAnySlice(qs []map[string]any) []any {
	out := make([]any, len(qs))
	for i, q := range qs {
		out[i] = q
	}
	return out
}
