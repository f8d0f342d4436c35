package extract

import "testing"

func TestQuestionsFromNumberedProse(t *testing.T) {
	text := `Here are your assessment questions:

1. How do you prefer to learn new material?
a) Watching videos
b) Reading documentation
c) Hands-on practice
Answer: c

2. How many hours per week can you spend studying?
a) Less than 2
b) 2 to 5
c) More than 5
Answer: b
`

	questions := Questions(text)
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}

	q1 := questions[0]
	if q1["id"] != "q_1" {
		t.Errorf("id = %v", q1["id"])
	}
	if q1["question"] != "How do you prefer to learn new material?" {
		t.Errorf("question = %v", q1["question"])
	}
	if got := len(q1["options"].([]any)); got != 3 {
		t.Errorf("got %d options, want 3", got)
	}
	if q1["correctAnswer"] != "c) Hands-on practice" {
		t.Errorf("correctAnswer = %v, want letter resolved to option", q1["correctAnswer"])
	}
	if q1["category"] != "preferences" {
		t.Errorf("category = %v", q1["category"])
	}

	q2 := questions[1]
	if q2["category"] != "time_availability" {
		t.Errorf("category = %v", q2["category"])
	}
	if q2["correctAnswer"] != "b) 2 to 5" {
		t.Errorf("correctAnswer = %v", q2["correctAnswer"])
	}
}

func TestQuestionsLabeledForm(t *testing.T) {
	text := `Question 1: What is your experience with databases?
a) None
b) Some
Question 2. Which challenge is hardest for you?
a) Staying motivated
b) Finding time
`

	questions := Questions(text)
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0]["category"] != "prior_experience" {
		t.Errorf("category = %v", questions[0]["category"])
	}
	if questions[1]["category"] != "challenges" {
		t.Errorf("category = %v", questions[1]["category"])
	}
}

func TestQuestionsDefaultAnswerIsFirstOption(t *testing.T) {
	text := `1. Pick one.
a) First
b) Second
`

	questions := Questions(text)
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	if questions[0]["correctAnswer"] != "a) First" {
		t.Errorf("correctAnswer = %v, want first option", questions[0]["correctAnswer"])
	}
}

func TestQuestionsTrueFalse(t *testing.T) {
	text := `1. You learn best under deadline pressure.
True or False
Answer: True
`

	questions := Questions(text)
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	q := questions[0]
	if q["type"] != "true_false" {
		t.Errorf("type = %v", q["type"])
	}
	opts := q["options"].([]any)
	if len(opts) != 2 || opts[0] != "True" || opts[1] != "False" {
		t.Errorf("options = %v", opts)
	}
	if q["correctAnswer"] != "True" {
		t.Errorf("correctAnswer = %v", q["correctAnswer"])
	}
}

func TestQuestionsWithoutOptionsDropped(t *testing.T) {
	text := `1. An orphan question with no options.

2. A real question.
a) Yes
b) No
`

	questions := Questions(text)
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want only the one with options", len(questions))
	}
	if questions[0]["id"] != "q_2" {
		t.Errorf("id = %v", questions[0]["id"])
	}
}

func TestQuestionsEmptyText(t *testing.T) {
	if qs := Questions("No numbered list here."); len(qs) != 0 {
		t.Errorf("questions = %v, want none", qs)
	}
}
