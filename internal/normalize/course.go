package normalize

import "fmt"

// Course coerces a parsed value into a complete course record. A course
// always comes back with a non-empty modules list; when the input carries no
// usable modules a single introductory module is synthesized from the
// request topic. Module and lesson records are padded with identifiers,
// progress tracking fields, and empty collections so downstream consumers
// never branch on missing keys.
func Course(v any, c Context) (map[string]any, bool) {
	course, wasObject := asObject(v)
	defaulted := !wasObject

	defaulted = setDefaultStr(course, "id", ID("course")) || defaulted
	defaulted = setDefaultStr(course, "title", fmt.Sprintf("Course on %s", c.Topic)) || defaulted
	defaulted = setDefaultStr(course, "description",
		fmt.Sprintf("A comprehensive course about %s for %s level learners.", c.Topic, c.Difficulty)) || defaulted
	setDefaultStr(course, "topic", c.Topic)
	setDefaultStr(course, "difficulty", c.Difficulty)
	setDefaultStr(course, "duration", c.Duration)
	now := Timestamp()
	setDefaultStr(course, "createdAt", now)
	setDefaultStr(course, "updatedAt", now)
	setDefaultStr(course, "user_id", "system")
	setDefault(course, "prerequisites", []any{})
	if _, ok := course["learningGoals"]; !ok {
		if goals, ok := course["learningObjectives"]; ok {
			course["learningGoals"] = goals
			delete(course, "learningObjectives")
		} else {
			course["learningGoals"] = []any{}
		}
	}
	setDefault(course, "assessment", []any{})

	modules := list(course, "modules")
	normalized := make([]any, 0, len(modules))
	for i, mv := range modules {
		module, ok := asObject(mv)
		if !ok {
			defaulted = true
			continue
		}
		defaulted = normalizeModule(module, i, c) || defaulted
		normalized = append(normalized, module)
	}
	if len(normalized) == 0 {
		normalized = []any{defaultModule(c)}
		defaulted = true
	}
	course["modules"] = normalized

	return course, defaulted
}

// normalizeModule fills a single module in place, reporting whether any
// default was injected.
func normalizeModule(module map[string]any, idx int, c Context) bool {
	defaulted := setDefaultStr(module, "id", ID("module"))
	if _, ok := str(module, "title"); !ok {
		if name, ok := str(module, "name"); ok {
			module["title"] = name
		} else {
			module["title"] = fmt.Sprintf("Module %d", idx+1)
			defaulted = true
		}
	}
	defaulted = setDefaultStr(module, "description",
		fmt.Sprintf("A module in the %s course.", c.Topic)) || defaulted
	setDefault(module, "completed", false)
	setDefault(module, "progress", 0)
	if _, ok := module["assessment"].(map[string]any); !ok {
		module["assessment"] = map[string]any{
			"type":        "quiz",
			"description": fmt.Sprintf("Assessment for Module %d", idx+1),
		}
	}

	lessons := list(module, "lessons")
	normalized := make([]any, 0, len(lessons))
	for j, lv := range lessons {
		lesson, ok := asObject(lv)
		if !ok {
			defaulted = true
			continue
		}
		defaulted = normalizeCourseLesson(lesson, idx, j, c) || defaulted
		normalized = append(normalized, lesson)
	}
	if len(normalized) == 0 {
		title, _ := str(module, "title")
		normalized = []any{defaultLesson(title, c)}
		defaulted = true
	}
	module["lessons"] = normalized
	return defaulted
}

func normalizeCourseLesson(lesson map[string]any, modIdx, idx int, c Context) bool {
	defaulted := setDefaultStr(lesson, "id", ID("lesson"))
	defaulted = setDefaultStr(lesson, "title", fmt.Sprintf("Lesson %d", idx+1)) || defaulted
	setDefaultStr(lesson, "description", fmt.Sprintf("A lesson in Module %d", modIdx+1))
	if _, ok := str(lesson, "contentSummary"); !ok {
		if content, ok := str(lesson, "content"); ok {
			lesson["contentSummary"] = content
		} else {
			title, _ := str(lesson, "title")
			lesson["contentSummary"] = fmt.Sprintf("Content for %s", title)
		}
	}
	setDefault(lesson, "estimatedDuration", 60)
	setDefault(lesson, "completed", false)
	setDefault(lesson, "progress", 0)
	setDefault(lesson, "exercises", []any{})
	setDefault(lesson, "resources", []any{})
	setDefault(lesson, "sessions", []any{})
	return defaulted
}

func defaultModule(c Context) map[string]any {
	return map[string]any{
		"id":          ID("module"),
		"title":       fmt.Sprintf("Introduction to %s", c.Topic),
		"description": fmt.Sprintf("An overview of %s fundamentals.", c.Topic),
		"completed":   false,
		"progress":    0,
		"lessons":     []any{defaultLesson("", c)},
		"assessment": map[string]any{
			"type":        "quiz",
			"description": fmt.Sprintf("Test your understanding of %s basics.", c.Topic),
		},
	}
}

func defaultLesson(moduleTitle string, c Context) map[string]any {
	title := fmt.Sprintf("Getting Started with %s", c.Topic)
	if moduleTitle != "" {
		title = fmt.Sprintf("Lesson 1 in %s", moduleTitle)
	}
	return map[string]any{
		"id":                ID("lesson"),
		"title":             title,
		"description":       "Basic concepts and foundations.",
		"contentSummary":    fmt.Sprintf("This lesson introduces the fundamental concepts of %s.", c.Topic),
		"estimatedDuration": 60,
		"completed":         false,
		"progress":          0,
		"exercises":         []any{},
		"resources":         []any{},
		"sessions":          []any{},
	}
}
