package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/extract"
	"github.com/courseforge/courseforge/internal/normalize"
)

// PersonaParams are the inputs for persona generation.
type PersonaParams struct {
	UserInput string
	Topic     string
}

// GeneratePersona runs the three-stage persona pipeline: infer a learner
// profile from free-form input, design a teaching persona matched to that
// profile, then write the persona's introductory content. Each stage
// normalizes independently, so a failure in one stage degrades to defaults
// without aborting the pipeline.
func (s *Service) GeneratePersona(ctx context.Context, p PersonaParams) (*Result, error) {
	nctx := normalize.Context{Topic: p.Topic}

	profilePrompt := fmt.Sprintf(`
I need to create a detailed user profile based on the following information:

User Input: %s
Topic of Interest: %s

Please return ONLY a valid JSON object with the following structure:
{
    "id": "unique_id_string",
    "goals": ["goal1", "goal2", "goal3"],
    "learningStyle": "visual|auditory|reading|kinesthetic|mixed",
    "strengths": ["strength1", "strength2", "strength3"],
    "weaknesses": ["weakness1", "weakness2"],
    "contentPreferences": ["preference1", "preference2", "preference3"],
    "timeAvailability": "description of availability",
    "background": "prior knowledge assessment",
    "interests": ["interest1", "interest2", "interest3"],
    "createdAt": "timestamp",
    "updatedAt": "timestamp"
}

Infer as much as possible from the user input. If details are missing, make reasonable assumptions based on the topic.
The response MUST be a valid JSON object with all the fields above.
Do not include any explanations, just the JSON object.`,
		p.UserInput, p.Topic)

	profileRaw, err := s.generate(ctx, agents.ContentCreator, "persona-profile", profilePrompt)
	if err != nil {
		return nil, err
	}
	profile, profileDefaulted := normalize.UserProfile(extract.Extract(profileRaw), nctx)

	profileJSON, _ := json.Marshal(profile)
	personaPrompt := fmt.Sprintf(`
I need to create a teaching persona customized for a learner with the following profile:

User Profile: %s
Topic of Interest: %s

Please return ONLY a valid JSON object with the following structure:
{
    "id": "unique_id_string",
    "name": "Engaging Teacher Name",
    "description": "A paragraph describing teaching approach",
    "role": "mentor|teacher|coach|guide|expert",
    "specialties": ["specialty1", "specialty2", "specialty3"],
    "teachingStyle": "Brief description of teaching style",
    "tone": "Description of communication tone",
    "background": "Brief fictional background explaining expertise",
    "characteristics": ["trait1", "trait2", "trait3", "trait4", "trait5"],
    "supportingQualities": ["quality1", "quality2", "quality3"],
    "imageUrl": null,
    "createdAt": "timestamp",
    "updatedAt": "timestamp",
    "userProfileId": "id_from_user_profile"
}

The persona should be perfectly tailored to the learning style and needs indicated in the user profile.
The response MUST be a valid JSON object with all the fields above.
Do not include any explanations or text before or after the JSON object.`,
		profileJSON, p.Topic)

	personaRaw, err := s.generate(ctx, agents.ContentCreator, "persona", personaPrompt)
	if err != nil {
		return nil, err
	}
	persona, personaDefaulted := normalize.Persona(extract.Extract(personaRaw), nctx)

	personaID, _ := persona["id"].(string)
	name, _ := persona["name"].(string)
	role, _ := persona["role"].(string)
	teachingStyle, _ := persona["teachingStyle"].(string)
	tone, _ := persona["tone"].(string)

	contentPrompt := fmt.Sprintf(`
You are %s, a %s with the following characteristics:
- Teaching Style: %s
- Tone: %s

Create an engaging introduction to the topic of "%s" that matches your persona's style and tone.
Write approximately 400-600 words that help a learner understand the fundamental concepts.

Structure the response as a JSON object with these fields:
- id: a unique identifier
- personaId: use the persona's id
- title: an engaging title for this content
- content: the actual content written in your persona's style
- topic: %s
- type: "introduction"
- createdAt: current date and time string
- updatedAt: same as createdAt

Return only the JSON object.`,
		name, role, teachingStyle, tone, p.Topic, p.Topic)

	contentRaw, err := s.generate(ctx, agents.ContentCreator, "persona-content", contentPrompt)
	if err != nil {
		return nil, err
	}
	initialContent, contentDefaulted := normalize.InitialContent(extract.Extract(contentRaw), personaID, nctx)

	return &Result{
		Data: map[string]any{
			"userProfile":    profile,
			"persona":        persona,
			"initialContent": initialContent,
		},
		DefaultsUsed: profileDefaulted || personaDefaulted || contentDefaulted,
	}, nil
}

// PersonaUpdateParams are the inputs for updating a persona from feedback.
type PersonaUpdateParams struct {
	PersonaID string
	Changes   string
}

// UpdatePersona revises a persona per user feedback and produces a fresh
// content sample reflecting the changes.
func (s *Service) UpdatePersona(ctx context.Context, p PersonaUpdateParams) (*Result, error) {
	prompt := fmt.Sprintf(`
You need to update an AI teaching persona based on the following user feedback:

Persona ID: %s
Requested Changes: %s

First, create an updated version of the persona with the requested changes.
Then, generate a new content sample that reflects these changes.

Return a JSON object with two fields:
1. "persona": the updated persona object (include all fields: id, name, description, role, etc.)
2. "content": a new content object (with id, personaId, title, content, etc.)

The JSON should maintain the same structure as the original persona and content objects.`,
		p.PersonaID, p.Changes)

	raw, err := s.generate(ctx, agents.ContentCreator, "persona-update", prompt)
	if err != nil {
		return nil, err
	}

	obj := extract.ExtractObject(raw)
	if obj == nil {
		return nil, fmt.Errorf("update persona: %w", ErrInvalidStructure)
	}
	return &Result{Data: obj}, nil
}

// PersonaContentParams are the inputs for persona-voiced content.
type PersonaContentParams struct {
	PersonaID   string
	Topic       string
	ContentType string
}

// GeneratePersonaContent produces one piece of content written in a
// persona's voice: an introduction, summary, or detailed explanation.
func (s *Service) GeneratePersonaContent(ctx context.Context, p PersonaContentParams) (*Result, error) {
	prompt := fmt.Sprintf(`
You are a teaching persona with ID %s.

Generate %s content about the topic "%s".

The content should match the perspective and style of your persona. Be engaging, informative, and educational.

Return a JSON object with these fields:
- id: a unique identifier
- personaId: %s
- title: an appropriate title for this content
- content: the actual content (400-800 words)
- topic: %s
- type: "%s"
- createdAt: current date and time
- updatedAt: same as createdAt

Return only the JSON object.`,
		p.PersonaID, p.ContentType, p.Topic, p.PersonaID, p.Topic, p.ContentType)

	raw, err := s.generate(ctx, agents.ContentCreator, "persona-content", prompt)
	if err != nil {
		return nil, err
	}

	contentObj, defaulted := normalize.InitialContent(extract.Extract(raw), p.PersonaID, normalize.Context{Topic: p.Topic})
	if p.ContentType != "" {
		contentObj["type"] = p.ContentType
	}
	return &Result{Data: contentObj, DefaultsUsed: defaulted}, nil
}

// PersonaChatParams are the inputs for chatting with a persona.
type PersonaChatParams struct {
	PersonaID     string
	Message       string
	History       []map[string]string
	CourseContext map[string]string
}

// ChatWithPersona answers a student's message in the persona's voice. This
// is the one operation that expects plain text back, so the response is
// wrapped rather than extracted.
func (s *Service) ChatWithPersona(ctx context.Context, p PersonaChatParams) (*Result, error) {
	historyJSON, _ := json.Marshal(p.History)

	prompt := fmt.Sprintf(`
You are a teaching persona with ID %s.

A student is asking you: "%s"

Consider any relevant course context:
- Course ID: %s
- Module ID: %s
- Lesson ID: %s
- Session ID: %s

Conversation history:
%s

Respond in a helpful, educational manner that matches your teaching persona.
Be concise but thorough, focusing on providing value to the student.

Return your response as a plain text message (no JSON formatting needed).`,
		p.PersonaID, p.Message,
		contextField(p.CourseContext, "courseId"),
		contextField(p.CourseContext, "moduleId"),
		contextField(p.CourseContext, "lessonId"),
		contextField(p.CourseContext, "sessionId"),
		historyJSON)

	raw, err := s.generate(ctx, agents.ContentCreator, "persona-chat", prompt)
	if err != nil {
		return nil, err
	}

	return &Result{Data: map[string]any{"response": trimQuoted(raw)}}, nil
}

func contextField(m map[string]string, key string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return "Not specified"
}
