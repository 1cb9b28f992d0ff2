package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	DefaultQuestionCount = 10
	MaxQuestionCount     = 50
)

// GeneratedQuestion is the schema the model is asked to produce, one entry per
// question.
type GeneratedQuestion struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
}

func buildQuizPrompt(topic, difficulty string, numQuestions int) string {
	return fmt.Sprintf(`You are an AI that writes multiple-choice questions for NCC (National Cadet Corps) cadet training.

Write exactly %d questions about "%s" at %s difficulty.

Requirements:
- Each question has exactly 4 options keyed "A", "B", "C", "D".
- Randomise which key holds the correct answer.
- "answer" is the key of the correct option.
- "explanation" is 1-2 sentences explaining why the answer is correct.

Return only a valid JSON array with this structure, no other text:
[
  {
    "question": "What is the question?",
    "options": {"A": "...", "B": "...", "C": "...", "D": "..."},
    "answer": "A",
    "explanation": "..."
  }
]`, numQuestions, topic, difficulty)
}

// GenerateQuizQuestions asks the AI collaborator for a question set and parses
// the reply. The collaborator is called exactly once; a failure surfaces to
// the caller unchanged.
func GenerateQuizQuestions(ctx context.Context, topic, difficulty string, numQuestions int) ([]GeneratedQuestion, error) {
	if numQuestions <= 0 {
		numQuestions = DefaultQuestionCount
	}
	if numQuestions > MaxQuestionCount {
		numQuestions = MaxQuestionCount
	}

	prompt := buildQuizPrompt(topic, difficulty, numQuestions)

	raw, err := GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := ParseGeneratedQuestions(raw)
	if err != nil {
		return nil, err
	}
	if len(questions) > numQuestions {
		questions = questions[:numQuestions]
	}
	return questions, nil
}

// ParseGeneratedQuestions strips the markdown fences Gemini likes to wrap
// around JSON and unmarshals the question array. Questions missing a text,
// options or an answer key that exists in the option map are dropped.
func ParseGeneratedQuestions(raw string) ([]GeneratedQuestion, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "`")
	clean = strings.TrimPrefix(clean, "json")
	clean = strings.TrimSpace(clean)

	var parsed []GeneratedQuestion
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("cannot parse generated questions: %w", err)
	}

	questions := make([]GeneratedQuestion, 0, len(parsed))
	for _, q := range parsed {
		if q.Question == "" || len(q.Options) < 2 {
			continue
		}
		if _, ok := q.Options[q.Answer]; !ok {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no usable questions in model output")
	}
	return questions, nil
}
