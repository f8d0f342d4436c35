package content

import (
	"context"
	"fmt"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/extract"
)

// typedContentRoles maps a content type to the agent that produces it.
var typedContentRoles = map[string]agents.Role{
	"text":     agents.ContentCreator,
	"code":     agents.CodeExpert,
	"visual":   agents.VisualDesigner,
	"practice": agents.PracticeGenerator,
}

// TypedContentParams are the inputs for typed content generation.
type TypedContentParams struct {
	Type    string
	Topic   string
	Context map[string]any
}

// GenerateTypedContent produces one piece of content whose shape depends on
// its type: prose, code with test cases, a visualization, or practice
// material. The type picks the agent.
func (s *Service) GenerateTypedContent(ctx context.Context, p TypedContentParams) (*Result, error) {
	role, ok := typedContentRoles[p.Type]
	if !ok {
		return nil, fmt.Errorf("invalid content type: %q", p.Type)
	}

	var prompt string
	visualType := ""
	switch p.Type {
	case "visual":
		visualType = "diagram"
		if v, ok := p.Context["visualType"].(string); ok && v != "" {
			visualType = v
		}
		prompt = fmt.Sprintf(`
Generate a %s visualization for %s.
The response should be valid JSON with the following structure:

`+"```json\n"+`{
  "type": "%s",
  "code": "The visualization code or data",
  "style": {
    "theme": "light",
    "colors": ["#primary", "#secondary"]
  }
}`+"\n```", visualType, p.Topic, visualType)
	case "code":
		language := "javascript"
		if l, ok := p.Context["language"].(string); ok && l != "" {
			language = l
		}
		prompt = fmt.Sprintf(`
Generate code content for %s in %s.
The response should be valid JSON with the following structure:

`+"```json\n"+`{
  "title": "Code Example Title",
  "description": "What this code demonstrates",
  "language": "%s",
  "code": "The actual code",
  "explanation": "Line by line explanation",
  "testCases": [
    {
      "input": "Test input",
      "expectedOutput": "Expected output"
    }
  ]
}`+"\n```", p.Topic, language, language)
	default:
		prompt = fmt.Sprintf(`
Generate %s content for topic: %s.
The response should be valid JSON with appropriate structure for %s content.`,
			p.Type, p.Topic, p.Type)
	}
	prompt += contextSuffix(p.Context)

	raw, err := s.generate(ctx, role, "content-"+p.Type, prompt)
	if err != nil {
		return nil, err
	}

	parsed := extract.Extract(raw)
	if parsed == nil {
		return nil, fmt.Errorf("generate %s content: %w", p.Type, ErrInvalidStructure)
	}

	// Visual responses sometimes drop the type or put the payload under
	// "content"; patch those before returning.
	if obj, ok := parsed.(map[string]any); ok && p.Type == "visual" {
		if _, has := obj["type"]; !has {
			obj["type"] = visualType
		}
		if _, has := obj["code"]; !has {
			if c, ok := obj["content"]; ok {
				obj["code"] = c
			}
		}
	}

	return &Result{Data: parsed}, nil
}

// CollaborativeParams are the inputs for the two-stage collaborative
// pipeline.
type CollaborativeParams struct {
	Topic   string
	Context map[string]any
}

// CollaborativeTask produces comprehensive content about a topic by chaining
// two specialists: the course designer drafts an outline, then the content
// creator elaborates it. If the final response cannot be parsed, the raw
// text is returned with a warning rather than an error.
func (s *Service) CollaborativeTask(ctx context.Context, p CollaborativeParams) (*Result, error) {
	outlinePrompt := fmt.Sprintf(`
Draft a structured outline for comprehensive content about: %s

List the major sections and the key points each should cover.
Return the outline in valid JSON format.`+contextSuffix(p.Context), p.Topic)

	outline, err := s.generate(ctx, agents.CourseDesigner, "collab-outline", outlinePrompt)
	if err != nil {
		return nil, err
	}

	elaboratePrompt := fmt.Sprintf(`
A colleague drafted this outline for content about "%s":

%s

Elaborate it into complete, polished content covering every section.
Return the final answer in valid JSON format.`+contextSuffix(p.Context), p.Topic, outline)

	raw, err := s.generate(ctx, agents.ContentCreator, "collab-content", elaboratePrompt)
	if err != nil {
		return nil, err
	}

	parsed := extract.Extract(raw)
	if parsed == nil {
		return &Result{Data: map[string]any{
			"content": trimQuoted(raw),
			"format":  "text",
			"warning": "Failed to parse as JSON",
		}}, nil
	}
	return &Result{Data: parsed}, nil
}
