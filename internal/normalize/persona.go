package normalize

import "fmt"

// Persona coerces a parsed value into a complete teaching persona. A
// response wrapped in a "teachingPersona" envelope is unwrapped first; an
// unusable value is replaced wholesale with a topic-templated default. The
// field set is fixed so persona consumers can rely on every key being
// present, including a null imageUrl.
func Persona(v any, c Context) (map[string]any, bool) {
	persona, wasObject := asObject(v)
	if inner, ok := persona["teachingPersona"].(map[string]any); ok {
		persona = inner
	}
	defaulted := !wasObject

	defaulted = setDefaultStr(persona, "id", ID("persona")) || defaulted
	defaulted = setDefaultStr(persona, "name", fmt.Sprintf("AI Teacher for %s", c.Topic)) || defaulted
	setDefaultStr(persona, "description", fmt.Sprintf("A helpful AI teacher focused on %s.", c.Topic))
	setDefaultStr(persona, "role", "teacher")
	if len(list(persona, "specialties")) == 0 {
		persona["specialties"] = []any{c.Topic, "Interactive Learning", "Personalized Education"}
	}
	setDefaultStr(persona, "teachingStyle", "Adaptive and responsive to learner needs")
	setDefaultStr(persona, "tone", "Supportive and encouraging")
	setDefaultStr(persona, "background",
		fmt.Sprintf("Specialized in teaching %s with a focus on practical applications", c.Topic))
	if len(list(persona, "characteristics")) == 0 {
		persona["characteristics"] = []any{"Patient", "Clear", "Knowledgeable", "Adaptable", "Supportive"}
	}
	if len(list(persona, "supportingQualities")) == 0 {
		persona["supportingQualities"] = []any{"Clear explanations", "Practical examples", "Personalized feedback"}
	}
	now := Timestamp()
	setDefaultStr(persona, "createdAt", now)
	setDefaultStr(persona, "updatedAt", now)
	setDefault(persona, "imageUrl", nil)
	setDefaultStr(persona, "userProfileId", "default")

	return persona, defaulted
}

// UserProfile coerces a parsed value into a learner profile record. Unlike
// Persona, an object that parses at all is kept as-is apart from identity
// and timestamp fields; only a non-object input triggers the full default
// profile.
func UserProfile(v any, c Context) (map[string]any, bool) {
	profile, wasObject := asObject(v)
	if !wasObject || len(profile) == 0 {
		return map[string]any{
			"id":                 ID("profile"),
			"goals":              []any{"Learn practical skills", "Understand core concepts", "Apply knowledge effectively"},
			"learningStyle":      "Mixed",
			"strengths":          []any{"Self-motivated", "Technical aptitude", "Problem-solving"},
			"weaknesses":         []any{"Limited time availability", "Needs practical examples"},
			"contentPreferences": []any{"Interactive exercises", "Real-world examples", "Visual aids"},
			"timeAvailability":   "Limited",
			"background":         "Beginner",
			"interests":          []any{c.Topic},
			"createdAt":          Timestamp(),
			"updatedAt":          Timestamp(),
		}, true
	}

	defaulted := setDefaultStr(profile, "id", ID("profile"))
	now := Timestamp()
	setDefaultStr(profile, "createdAt", now)
	setDefaultStr(profile, "updatedAt", now)
	return profile, defaulted
}

// InitialContent coerces a parsed value into the introductory content record
// that accompanies a freshly generated persona.
func InitialContent(v any, personaID string, c Context) (map[string]any, bool) {
	content, wasObject := asObject(v)
	if !wasObject || len(content) == 0 {
		now := Timestamp()
		return map[string]any{
			"id":        ID("content"),
			"personaId": personaID,
			"title":     fmt.Sprintf("Introduction to %s", c.Topic),
			"content": fmt.Sprintf("This is an introduction to %s. The content will help you understand "+
				"the fundamental concepts and practical applications.", c.Topic),
			"topic":     c.Topic,
			"type":      "introduction",
			"createdAt": now,
			"updatedAt": now,
		}, true
	}

	defaulted := setDefaultStr(content, "id", ID("content"))
	setDefaultStr(content, "personaId", personaID)
	setDefaultStr(content, "topic", c.Topic)
	setDefaultStr(content, "type", "introduction")
	now := Timestamp()
	setDefaultStr(content, "createdAt", now)
	setDefaultStr(content, "updatedAt", now)
	return content, defaulted
}
