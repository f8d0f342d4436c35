package normalize

import "fmt"

// DailySession coerces a parsed value into a daily learning session record.
// A session with no usable sections is replaced with the standard five-part
// arc: introduction, content, activity, knowledge check, and a preview of
// the next session. Course, module, and lesson identifiers from the request
// are stamped onto the record so clients can file it without joining.
func DailySession(v any, courseID, moduleID, lessonID string, c Context) (map[string]any, bool) {
	session, wasObject := asObject(v)
	defaulted := false
	if !wasObject || len(list(session, "sections")) == 0 {
		session = defaultDailySession(c)
		defaulted = true
	}

	defaulted = setDefaultStr(session, "id", ID("session")) || defaulted
	session["createdAt"] = Timestamp()
	session["courseId"] = courseID
	if moduleID != "" {
		session["moduleId"] = moduleID
	}
	if lessonID != "" {
		session["lessonId"] = lessonID
	}
	return session, defaulted
}

func defaultDailySession(c Context) map[string]any {
	return map[string]any{
		"id":                ID("session"),
		"title":             fmt.Sprintf("Daily Session on %s", c.Topic),
		"duration":          c.DurationMinutes,
		"learningObjective": fmt.Sprintf("Learn key concepts about %s and practice applying them.", c.Topic),
		"sections": []any{
			map[string]any{
				"type":  "introduction",
				"title": "Introduction",
				"content": fmt.Sprintf("Welcome to today's session on %s. We'll explore key concepts "+
					"and practice applying them.", c.Topic),
			},
			map[string]any{
				"type":  "content",
				"title": fmt.Sprintf("Understanding %s", c.Topic),
				"content": fmt.Sprintf("This section covers fundamental principles of %s, providing you "+
					"with essential knowledge and context.", c.Topic),
			},
			map[string]any{
				"type":            "activity",
				"title":           "Practice Activity",
				"instructions":    fmt.Sprintf("Apply what you've learned about %s in this simple exercise.", c.Topic),
				"expectedOutcome": "Gain practical experience with the concepts covered in this session.",
			},
			map[string]any{
				"type":  "assessment",
				"title": "Knowledge Check",
				"questions": []any{
					map[string]any{
						"question":      fmt.Sprintf("What is one key benefit of understanding %s?", c.Topic),
						"options":       []any{"Option A", "Option B", "Option C", "Option D"},
						"correctAnswer": "Option A",
						"explanation":   "This is the correct answer because...",
					},
				},
			},
			map[string]any{
				"type":    "next",
				"title":   "Coming Up Next",
				"content": fmt.Sprintf("In our next session, we'll explore more advanced concepts in %s.", c.Topic),
			},
		},
	}
}
