package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Question patterns: "1. ...", "2) ...", "Question 3: ...".
var (
	numberedQuestionRe = regexp.MustCompile(`^\s*(\d+)[.)]\s+(.*)`)
	labeledQuestionRe  = regexp.MustCompile(`^\s*Question\s+(\d+)[.:]?\s+(.*)`)
	letterOptionRe     = regexp.MustCompile(`^\s*[a-dA-D][.)]\s+`)
	numberOptionRe     = regexp.MustCompile(`^\s*[1-4][.)]\s+`)
	trueFalseRe        = regexp.MustCompile(`(?i)\b(true|false)\b`)
	answerLineRe       = regexp.MustCompile(`(?i)(correct\s+)?answer[\s:]+`)
	answerPrefixRe     = regexp.MustCompile(`(?i).*answer[\s:]+`)
	letterAnswerRe     = regexp.MustCompile(`^[A-Da-d]$`)
)

// categoryKeywords maps assessment categories to the phrases that signal
// them in question text. First match wins; order mirrors how specific the
// signals are.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"preferences", []string{"prefer", "like", "enjoy", "rather"}},
	{"learning_style", []string{"learning style", "learn best", "absorb"}},
	{"time_availability", []string{"time", "hours", "schedule", "spend"}},
	{"prior_experience", []string{"experience", "familiar", "knowledge", "understand"}},
	{"challenges", []string{"challenge", "difficult", "struggle", "hard"}},
	{"goals", []string{"goal", "achieve", "want to", "aim"}},
}

// Questions recovers assessment questions from plain prose when the model
// answered in numbered-list form instead of JSON. It walks the text line by
// line keeping a current-question accumulator; a question is emitted only
// once it has collected at least one option. Questions that never saw an
// answer line default their answer to the first option.
func Questions(text string) []map[string]any {
	var questions []map[string]any
	var current map[string]any

	flush := func() {
		if current != nil && len(options(current)) > 0 {
			questions = append(questions, current)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := numberedQuestionRe.FindStringSubmatch(line)
		if m == nil {
			m = labeledQuestionRe.FindStringSubmatch(line)
		}
		if m != nil {
			flush()
			current = map[string]any{
				"id":       fmt.Sprintf("q_%s", m[1]),
				"type":     "multiple_choice",
				"question": m[2],
				"options":  []any{},
				"category": inferCategory(m[2]),
				"weight":   1,
			}
			continue
		}

		if current == nil {
			continue
		}

		switch {
		case letterOptionRe.MatchString(line):
			current["type"] = "multiple_choice"
			current["options"] = append(options(current), line)
		case numberOptionRe.MatchString(line) && len(options(current)) < 4:
			current["options"] = append(options(current), line)
		case trueFalseRe.MatchString(line) && !answerLineRe.MatchString(line):
			current["type"] = "true_false"
			if len(options(current)) == 0 {
				current["options"] = []any{"True", "False"}
			}
		case answerLineRe.MatchString(line) || strings.HasPrefix(line, "**Answer:"):
			answer := strings.Trim(answerPrefixRe.ReplaceAllString(line, ""), "* ")
			current["correctAnswer"] = answer

			// Single-letter answers resolve to the option at that index.
			if letterAnswerRe.MatchString(answer) {
				idx := int(strings.ToUpper(answer)[0] - 'A')
				if opts := options(current); idx >= 0 && idx < len(opts) {
					current["correctAnswer"] = opts[idx]
				}
			}
		}
	}
	flush()

	for _, q := range questions {
		if _, ok := q["correctAnswer"]; !ok {
			if opts := options(q); len(opts) > 0 {
				q["correctAnswer"] = opts[0]
			}
		}
	}

	return questions
}

func options(q map[string]any) []any {
	opts, _ := q["options"].([]any)
	return opts
}

func inferCategory(question string) string {
	lower := strings.ToLower(question)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(lower, w) {
				return ck.category
			}
		}
	}
	return "general_knowledge"
}
