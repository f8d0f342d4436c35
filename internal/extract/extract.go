// Package extract locates and parses JSON-shaped content inside arbitrary
// LLM output. Model responses routinely wrap JSON in prose, markdown fences,
// or near-JSON with unquoted keys; the extractor runs a layered fallback
// chain from strictest to most lenient so well-formed output short-circuits
// cheaply and only pathological output pays for repairs.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var (
	objectSpanRe = regexp.MustCompile(`(?s)\{.*\}`)
	arraySpanRe  = regexp.MustCompile(`(?s)\[.*\]`)
	fencedRe     = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	bareKeyRe    = regexp.MustCompile(`([{,]\s*)([A-Za-z_]\w*)\s*:`)
)

// Extract returns the best-effort parsed JSON value found in text, or nil
// when no candidate parses at any tier. It never panics and never returns
// an error: absence of structured content is an expected outcome, not a
// failure. Object candidates are preferred over array candidates.
//
// The fallback chain, first success wins:
//  1. strict parse of the whole text
//  2. greedy first-{ to last-} span, then the [...] equivalent
//  3. markdown fenced block (optionally tagged "json")
//  4. bracket-balanced scan from the first { or [, with textual repairs
func Extract(text string) any {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Tier 1: the text may already be clean JSON.
	if v, ok := tryParse(text); ok {
		return v
	}

	// Tier 2: greedy span between the outermost braces. Objects first;
	// domain records are predominantly objects.
	if m := objectSpanRe.FindString(text); m != "" {
		if v, ok := tryParse(m); ok {
			return v
		}
	}
	if m := arraySpanRe.FindString(text); m != "" {
		if v, ok := tryParse(m); ok {
			return v
		}
	}

	// Tier 3: fenced code block, common in markdown-formatted responses.
	if m := fencedRe.FindStringSubmatch(text); m != nil {
		if v, ok := tryParse(m[1]); ok {
			return v
		}
	}

	// Tier 4: character scan with repairs.
	return extractBalanced(text)
}

// ExtractObject returns the extracted value only when it is a JSON object.
func ExtractObject(text string) map[string]any {
	if obj, ok := Extract(text).(map[string]any); ok {
		return obj
	}
	return nil
}

// ExtractList returns the extracted value only when it is a JSON array.
func ExtractList(text string) []any {
	if list, ok := Extract(text).([]any); ok {
		return list
	}
	return nil
}

// extractBalanced scans from the first { or [ keeping an open-bracket
// counter; the span that returns the counter to zero is a syntactic
// candidate. On parse failure it applies repairs in sequence: collapse
// newlines, quote bare object keys, then a full jsonrepair pass.
func extractBalanced(text string) any {
	start := -1
	for i, r := range text {
		if r == '{' || r == '[' {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		}
		if depth != 0 {
			continue
		}

		candidate := text[start : i+1]
		if v, ok := tryParse(candidate); ok {
			return v
		}

		repaired := strings.ReplaceAll(candidate, "\n", " ")
		if v, ok := tryParse(repaired); ok {
			return v
		}

		repaired = bareKeyRe.ReplaceAllString(repaired, `$1"$2":`)
		if v, ok := tryParse(repaired); ok {
			return v
		}

		if fixed, err := jsonrepair.JSONRepair(candidate); err == nil {
			if v, ok := tryParse(fixed); ok {
				return v
			}
		}
		return nil
	}

	// Brackets never balanced; let jsonrepair close them if it can.
	if fixed, err := jsonrepair.JSONRepair(text[start:]); err == nil {
		if v, ok := tryParse(fixed); ok {
			return v
		}
	}
	return nil
}

func tryParse(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}
