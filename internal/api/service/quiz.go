package service

import (
	"context"
	"math"

	"github.com/devsphere/quizapi/internal/api/domain"
	"github.com/devsphere/quizapi/internal/api/quizgen"
)

// QuizService fronts the quiz generator and scores submissions.
type QuizService struct {
	Generator *quizgen.Generator
}

// GenerateQuiz returns a full quiz for a language, tagged with the
// canonical language key and question count.
func (s *QuizService) GenerateQuiz(ctx context.Context, language string) (domain.Quiz, error) {
	lang := quizgen.CanonicalLanguage(language)
	questions, err := s.Generator.Generate(ctx, lang, quizgen.DefaultQuizSize)
	if err != nil {
		return domain.Quiz{}, err
	}

	return domain.Quiz{
		Language:  lang,
		Count:     len(questions),
		Questions: questions,
	}, nil
}

// GenerateQuestion returns a single question for a language.
func (s *QuizService) GenerateQuestion(ctx context.Context, language string) (domain.Question, error) {
	return s.Generator.GenerateOne(ctx, language)
}

// Score grades submitted answers against the quiz they came from. Answers
// beyond the question count are ignored; missing answers count as wrong.
func (s *QuizService) Score(questions []domain.Question, answers []int) domain.ScoreResult {
	total := len(questions)
	if total == 0 {
		return domain.ScoreResult{}
	}

	correct := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	return domain.ScoreResult{
		Total:      total,
		Correct:    correct,
		Percentage: int(math.Round(float64(correct) / float64(total) * 100)),
	}
}
