package normalize

import "fmt"

// Lessons coerces a parsed value into a {"lessons": [...]} record for a
// single module. When the input has no usable lessons array, three
// introductory lessons are synthesized from the module name and topic.
// Exercises found under the legacy "exercises" key are renamed to
// "activities".
func Lessons(v any, c Context) (map[string]any, bool) {
	result, wasObject := asObject(v)
	lessons := list(result, "lessons")
	if !wasObject || len(lessons) == 0 {
		return map[string]any{"lessons": defaultLessons(c)}, true
	}

	defaulted := false
	normalized := make([]any, 0, len(lessons))
	for i, lv := range lessons {
		lesson, ok := asObject(lv)
		if !ok {
			defaulted = true
			continue
		}
		defaulted = setDefaultStr(lesson, "id", ID("lesson")) || defaulted
		setDefault(lesson, "order", i+1)
		setDefault(lesson, "resources", []any{})
		if _, ok := lesson["activities"]; !ok {
			if ex, ok := lesson["exercises"]; ok {
				lesson["activities"] = ex
				delete(lesson, "exercises")
			} else {
				lesson["activities"] = []any{}
			}
		}
		setDefault(lesson, "duration", 2)
		setDefault(lesson, "completed", false)
		setDefault(lesson, "sessions", []any{})
		normalized = append(normalized, lesson)
	}
	if len(normalized) == 0 {
		return map[string]any{"lessons": defaultLessons(c)}, true
	}
	result["lessons"] = normalized
	return result, defaulted
}

func defaultLessons(c Context) []any {
	return []any{
		map[string]any{
			"id":       ID("lesson"),
			"title":    fmt.Sprintf("Introduction to %s", c.ModuleName),
			"content":  fmt.Sprintf("This lesson introduces key concepts of %s in the context of %s.", c.ModuleName, c.Topic),
			"order":    1,
			"duration": 2,
			"activities": []any{
				fmt.Sprintf("Explore basic %s concepts", c.Topic),
				"Complete introductory exercises",
			},
			"resources": []any{},
			"completed": false,
			"sessions":  []any{},
		},
		map[string]any{
			"id":       ID("lesson"),
			"title":    fmt.Sprintf("Core Principles of %s", c.ModuleName),
			"content":  fmt.Sprintf("Learn about the fundamental principles and approaches in %s.", c.ModuleName),
			"order":    2,
			"duration": 2,
			"activities": []any{
				"Apply concepts to practical examples",
				"Group discussion on key principles",
			},
			"resources": []any{},
			"completed": false,
			"sessions":  []any{},
		},
		map[string]any{
			"id":       ID("lesson"),
			"title":    fmt.Sprintf("Practical Applications of %s", c.ModuleName),
			"content":  fmt.Sprintf("Explore real-world applications and case studies related to %s.", c.ModuleName),
			"order":    3,
			"duration": 3,
			"activities": []any{
				"Analyze case studies",
				"Work on practical exercises",
				"Reflection activity",
			},
			"resources": []any{},
			"completed": false,
			"sessions":  []any{},
		},
	}
}
