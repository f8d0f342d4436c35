package extract

import (
	"reflect"
	"testing"
)

func TestExtractCleanJSON(t *testing.T) {
	v := Extract(`{"a": 1, "b": [true, null]}`)
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want object", v)
	}
	if obj["a"] != float64(1) {
		t.Errorf("a = %v", obj["a"])
	}
}

func TestExtractCleanArray(t *testing.T) {
	v := Extract(`[1, 2, 3]`)
	list, ok := v.([]any)
	if !ok {
		t.Fatalf("got %T, want array", v)
	}
	if len(list) != 3 {
		t.Errorf("len = %d", len(list))
	}
}

func TestExtractObjectInProse(t *testing.T) {
	text := `Sure! Here is the course you asked for:

{"title": "Go Basics", "modules": []}

Let me know if you need anything else.`

	obj := ExtractObject(text)
	if obj == nil {
		t.Fatal("no object extracted")
	}
	if obj["title"] != "Go Basics" {
		t.Errorf("title = %v", obj["title"])
	}
}

func TestExtractArrayInProse(t *testing.T) {
	text := `Here are the problems: ["one", "two"] as requested.`

	list := ExtractList(text)
	if len(list) != 2 {
		t.Fatalf("list = %v", list)
	}
}

func TestExtractPrefersObjectOverArray(t *testing.T) {
	// Both spans are present; the object wins.
	text := `{"ids": [1, 2]} trailing [3, 4]`

	v := Extract(text)
	if _, ok := v.(map[string]any); !ok {
		t.Fatalf("got %T, want object preferred", v)
	}
}

func TestExtractFencedBlock(t *testing.T) {
	text := "Response:\n```json\n{\"status\": \"done\"}\n```\nThanks!"

	obj := ExtractObject(text)
	if obj == nil || obj["status"] != "done" {
		t.Fatalf("obj = %v", obj)
	}
}

func TestExtractFencedBlockWithoutTag(t *testing.T) {
	text := "```\n{\"x\": 5}\n```"

	obj := ExtractObject(text)
	if obj == nil || obj["x"] != float64(5) {
		t.Fatalf("obj = %v", obj)
	}
}

func TestExtractFencedBlockWinsOverNoiseBraces(t *testing.T) {
	// Stray braces outside the fence make the greedy first-to-last span
	// unparseable, so the fenced payload must be the one extracted.
	text := "bad {oops\n```json\n{\"status\": \"fenced\"}\n```\ntrailing }"

	obj := ExtractObject(text)
	if obj == nil || obj["status"] != "fenced" {
		t.Fatalf("obj = %v, want fenced payload", obj)
	}
}

func TestExtractRepairsBareKeys(t *testing.T) {
	text := `The result is {title: "Lesson 1", order: 1} if that helps.`

	obj := ExtractObject(text)
	if obj == nil {
		t.Fatal("no object extracted from bare-key JSON")
	}
	if obj["title"] != "Lesson 1" {
		t.Errorf("title = %v", obj["title"])
	}
}

func TestExtractBalancedNestedSpan(t *testing.T) {
	// The greedy span from first { to last } is unparseable here; the
	// balanced scan has to stop at the first complete object.
	text := `{"a": {"b": 1}} and later an unmatched brace }`

	obj := ExtractObject(text)
	if obj == nil {
		t.Fatal("no object extracted")
	}
	inner, ok := obj["a"].(map[string]any)
	if !ok || inner["b"] != float64(1) {
		t.Errorf("a = %v", obj["a"])
	}
}

func TestExtractRepairsSingleQuotes(t *testing.T) {
	text := `{'name': 'Ada', 'role': 'mentor'}`

	obj := ExtractObject(text)
	if obj == nil {
		t.Fatal("no object extracted from single-quoted JSON")
	}
	if obj["name"] != "Ada" {
		t.Errorf("name = %v", obj["name"])
	}
}

func TestExtractUnbalancedTruncation(t *testing.T) {
	// Truncated model output: closing brackets missing entirely.
	text := `{"title": "Cut off", "modules": [{"name": "First"`

	obj := ExtractObject(text)
	if obj == nil {
		t.Fatal("no object recovered from truncated JSON")
	}
	if obj["title"] != "Cut off" {
		t.Errorf("title = %v", obj["title"])
	}
}

func TestExtractNoJSON(t *testing.T) {
	for _, text := range []string{
		"",
		"   \n\t ",
		"There is no structured content here at all.",
	} {
		if v := Extract(text); v != nil {
			t.Errorf("Extract(%q) = %v, want nil", text, v)
		}
	}
}

func TestExtractObjectRejectsArray(t *testing.T) {
	if obj := ExtractObject(`[1, 2]`); obj != nil {
		t.Errorf("ExtractObject on array = %v", obj)
	}
	if list := ExtractList(`{"a": 1}`); list != nil {
		t.Errorf("ExtractList on object = %v", list)
	}
}

func TestExtractScalarString(t *testing.T) {
	v := Extract(`"just a string"`)
	if !reflect.DeepEqual(v, "just a string") {
		t.Errorf("v = %v", v)
	}
}
