package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/extract"
)

// ChatParams are the inputs for the general chat assistant.
type ChatParams struct {
	Message string
	Context map[string]any
}

// Chat answers a learner's free-form message. Responses that come back as
// plain text or under a "content" key are coerced into the expected
// {response, type} shape; an unparseable response is still returned to the
// user as raw text rather than failing.
func (s *Service) Chat(ctx context.Context, p ChatParams) (*Result, error) {
	prompt := fmt.Sprintf(`
You are a helpful learning assistant. Respond to the following message:

%s

Your response should be in JSON format with the following structure:

`+"```json\n"+`{
  "response": "Your detailed response here",
  "type": "explanation|guidance|solution",
  "resources": [
    {
      "title": "Resource Title",
      "url": "Resource URL",
      "type": "article|video|exercise"
    }
  ],
  "followUp": ["Suggested follow-up question 1", "Suggested follow-up question 2"]
}`+"\n```"+contextSuffix(p.Context),
		p.Message)

	raw, err := s.generate(ctx, agents.ChatAssistant, "chat", prompt)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	switch parsed := extract.Extract(raw).(type) {
	case map[string]any:
		if content, ok := parsed["content"].(string); ok {
			if _, hasResponse := parsed["response"]; !hasResponse {
				parsed = map[string]any{"response": content, "type": "explanation"}
			}
		}
		result.Data = parsed
	case string:
		result.Data = map[string]any{"response": parsed, "type": "explanation"}
	default:
		result.Data = map[string]any{"response": trimQuoted(raw), "type": "raw"}
	}
	return result, nil
}

// trimQuoted strips whitespace and a surrounding JSON string literal if the
// raw response carries one.
func trimQuoted(raw string) string {
	trimmed := strings.TrimSpace(raw)
	var unquoted string
	if err := json.Unmarshal([]byte(trimmed), &unquoted); err == nil {
		return unquoted
	}
	return trimmed
}
