package services

import (
	"context"
	"errors"
	"testing"
)

const fencedQuestions = "```json\n" + `[
  {
    "question": "What does NCC stand for?",
    "options": {"A": "National Cadet Corps", "B": "National Civil Corps", "C": "New Cadet Club", "D": "None"},
    "answer": "A",
    "explanation": "NCC is the National Cadet Corps."
  },
  {
    "question": "How many fall-in ranks does a squad form?",
    "options": {"A": "One", "B": "Two", "C": "Three", "D": "Four"},
    "answer": "C",
    "explanation": "A squad falls in three ranks."
  }
]` + "\n```"

func TestParseGeneratedQuestionsStripsFences(t *testing.T) {
	questions, err := ParseGeneratedQuestions(fencedQuestions)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Answer != "A" || questions[1].Answer != "C" {
		t.Fatalf("unexpected answers: %+v", questions)
	}
}

func TestParseGeneratedQuestionsDropsInvalid(t *testing.T) {
	raw := `[
  {"question": "", "options": {"A": "x", "B": "y"}, "answer": "A"},
  {"question": "dangling answer", "options": {"A": "x", "B": "y"}, "answer": "Z"},
  {"question": "keeper", "options": {"A": "x", "B": "y"}, "answer": "B"}
]`
	questions, err := ParseGeneratedQuestions(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(questions) != 1 || questions[0].Question != "keeper" {
		t.Fatalf("expected only the valid question to survive, got %+v", questions)
	}
}

func TestParseGeneratedQuestionsGarbage(t *testing.T) {
	if _, err := ParseGeneratedQuestions("the model refused"); err == nil {
		t.Fatal("expected error for non-JSON output")
	}
	if _, err := ParseGeneratedQuestions("[]"); err == nil {
		t.Fatal("expected error for empty question set")
	}
}

func TestGenerateQuizQuestionsUsesCollaborator(t *testing.T) {
	orig := GenerateText
	defer func() { GenerateText = orig }()

	GenerateText = func(ctx context.Context, prompt string) (string, error) {
		return fencedQuestions, nil
	}

	questions, err := GenerateQuizQuestions(context.Background(), "Drill", "easy", 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected result capped at requested count, got %d", len(questions))
	}
}

func TestGenerateQuizQuestionsPropagatesFailure(t *testing.T) {
	orig := GenerateText
	defer func() { GenerateText = orig }()

	calls := 0
	GenerateText = func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", errors.New("upstream down")
	}

	if _, err := GenerateQuizQuestions(context.Background(), "Drill", "easy", 2); err == nil {
		t.Fatal("expected collaborator failure to propagate")
	}
	if calls != 1 {
		t.Fatalf("expected a single collaborator call on failure, got %d", calls)
	}
}
