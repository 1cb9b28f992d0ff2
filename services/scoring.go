package services

import (
	"math"

	"github.com/nccabhyas/ncc-training-backend/models"
)

// SubmissionResult is the derived part of a quiz submission.
type SubmissionResult struct {
	TotalQuestions int
	CorrectAnswers int
	WrongAnswers   int
	Score          int
	WrongQuestions []models.WrongQuestion
}

// ScoreSubmission compares answers to the question key by index. Entries are
// option keys, compared case-sensitively; an empty entry counts as wrong.
// Callers must have verified len(answers) == len(questions).
func ScoreSubmission(questions []models.QuizQuestion, answers []string) SubmissionResult {
	result := SubmissionResult{
		TotalQuestions: len(questions),
		WrongQuestions: []models.WrongQuestion{},
	}

	for i, q := range questions {
		userAnswer := ""
		if i < len(answers) {
			userAnswer = answers[i]
		}
		if userAnswer == q.Answer {
			result.CorrectAnswers++
			continue
		}
		result.WrongQuestions = append(result.WrongQuestions, models.WrongQuestion{
			QuestionIndex: i,
			Question:      q.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.Answer,
			Explanation:   q.Explanation,
		})
	}

	result.WrongAnswers = result.TotalQuestions - result.CorrectAnswers
	if result.TotalQuestions > 0 {
		result.Score = int(math.Round(100 * float64(result.CorrectAnswers) / float64(result.TotalQuestions)))
	}
	return result
}

// SubmissionDuration floors negative spans at zero to absorb client clock
// skew.
func SubmissionDuration(startTime, endTime int64) int64 {
	if endTime < startTime {
		return 0
	}
	return endTime - startTime
}
