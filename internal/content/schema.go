package content

import "github.com/courseforge/courseforge/internal/llm"

// Response schemas for the structured-output path. They pin down the layout
// the prompts ask for while leaving optional fields open: normalization
// fills gaps, so the schemas only reject responses the normalizers could
// not shape at all.

// courseSchema describes a course outline with at least one module.
var courseSchema = &llm.Schema{
	Name:        "course-structure",
	Description: "A course outline with modules and optional lesson summaries",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Course title",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One-paragraph course description",
			},
			"prerequisites": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"learningGoals": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"modules": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Module name",
						},
						"description": map[string]any{"type": "string"},
						"order":       map[string]any{"type": "integer"},
						"duration": map[string]any{
							"type":        "integer",
							"description": "Module duration in days",
						},
						"lessons": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"title":    map[string]any{"type": "string"},
									"content":  map[string]any{"type": "string"},
									"order":    map[string]any{"type": "integer"},
									"duration": map[string]any{"type": "integer"},
								},
								"required": []any{"title"},
							},
						},
					},
					"required": []any{"name"},
				},
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"beginner", "intermediate", "advanced"},
			},
			"duration": map[string]any{"type": "string"},
		},
		"required": []any{"title", "modules"},
	},
}

// assessmentSchema describes a learning-preference question set.
var assessmentSchema = &llm.Schema{
	Name:        "assessment-questions",
	Description: "Learning-preference assessment questions with scoring totals",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{"type": "string"},
						"type": map[string]any{
							"type":        "string",
							"description": "Question type, e.g. multiple_choice or true_false",
						},
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"items":    map[string]any{"type": "string"},
						},
						"correctAnswer": map[string]any{"type": "string"},
						"explanation":   map[string]any{"type": "string"},
						"difficulty":    map[string]any{"type": "string"},
						"category":      map[string]any{"type": "string"},
					},
					"required": []any{"question", "options"},
				},
			},
			"totalPoints":  map[string]any{"type": "integer"},
			"timeLimit":    map[string]any{"type": "string"},
			"passingScore": map[string]any{"type": "integer"},
		},
		"required": []any{"questions"},
	},
}
