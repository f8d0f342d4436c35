package normalize

import "fmt"

// PracticeSession coerces a parsed value into an interactive practice
// session record. A session with no usable exercises is replaced with a
// two-exercise reflective default keyed to the request topic.
func PracticeSession(v any, c Context) (map[string]any, bool) {
	session, wasObject := asObject(v)
	if !wasObject || len(list(session, "exercises")) == 0 {
		return map[string]any{
			"id":          ID("session"),
			"title":       fmt.Sprintf("Practice Session on %s", c.Topic),
			"description": fmt.Sprintf("Practice and apply key concepts related to %s.", c.Topic),
			"exercises": []any{
				map[string]any{
					"id":       "exercise_1",
					"type":     "interactive",
					"question": fmt.Sprintf("What is one key aspect of %s that you find most interesting?", c.Topic),
					"steps": []any{
						"Reflect on the key concepts you've learned",
						"Consider which aspects are most applicable to real-world situations",
					},
					"solution": "This is an open-ended question. Your response should demonstrate understanding of core concepts.",
				},
				map[string]any{
					"id":       "exercise_2",
					"type":     "problem",
					"question": fmt.Sprintf("Describe a specific scenario where knowledge of %s would be valuable.", c.Topic),
					"steps": []any{
						"Identify a relevant real-world situation",
						"Explain how specific concepts apply to this scenario",
					},
					"solution": "Your answer should connect theoretical concepts to practical applications.",
				},
			},
			"difficulty":    c.Difficulty,
			"estimatedTime": "15 minutes",
			"createdAt":     Timestamp(),
		}, true
	}

	defaulted := setDefaultStr(session, "id", ID("session"))
	setDefaultStr(session, "difficulty", c.Difficulty)
	setDefaultStr(session, "estimatedTime", "15 minutes")
	setDefaultStr(session, "createdAt", Timestamp())
	return session, defaulted
}

// PracticeProblems coerces a parsed value into a list of practice problem
// records. The variant is list-shaped rather than object-shaped; an empty or
// non-list input yields a single templated problem. Solutions are injected
// when the request asked for them and a problem arrived without one.
func PracticeProblems(v any, c Context) ([]any, bool) {
	problems, _ := v.([]any)
	defaulted := false
	if len(problems) == 0 {
		p := map[string]any{
			"id":          ID("problem"),
			"title":       fmt.Sprintf("Practice Problem on %s", c.Topic),
			"description": fmt.Sprintf("This problem tests your understanding of key concepts in %s.", c.Topic),
			"difficulty":  c.Difficulty,
			"category":    "General Practice",
			"tags":        []any{c.Topic, c.Difficulty},
			"hints": []any{
				"Think about the core principles involved",
				"Break down the problem into smaller steps",
			},
			"expectedTime": 10,
		}
		if c.IncludeSolutions {
			p["solution"] = fmt.Sprintf("A step-by-step solution for the problem related to %s.", c.Topic)
		}
		problems = []any{p}
		defaulted = true
	}

	for i, pv := range problems {
		p, ok := asObject(pv)
		if !ok {
			defaulted = true
			problems[i] = map[string]any{}
			p = problems[i].(map[string]any)
		}
		defaulted = setDefaultStr(p, "id", ID("problem")) || defaulted
		if c.IncludeSolutions {
			if _, ok := str(p, "solution"); !ok {
				title, _ := str(p, "title")
				if title == "" {
					title = fmt.Sprintf("Problem %d", i+1)
				}
				p["solution"] = fmt.Sprintf("Solution for '%s'", title)
			}
		}
		if len(list(p, "hints")) == 0 {
			p["hints"] = []any{
				"Break the problem down into steps",
				"Think about similar examples you've seen before",
			}
		}
		setDefault(p, "expectedTime", 10)
		if len(list(p, "tags")) == 0 {
			p["tags"] = []any{c.Topic, c.Difficulty}
		}
		setDefaultStr(p, "category", "General Practice")
	}

	return problems, defaulted
}
