package service

import (
	"context"
	"errors"
	"strings"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/validation"
)

// QuizRound is the next quiz question. Question is nil once every eligible
// question has been asked.
type QuizRound struct {
	Question *domain.Question
	Category domain.Category
}

// AnswerResult reports whether an answer was accepted
type AnswerResult struct {
	QuestionID int
	Correct    bool
	Answer     string // The expected answer
}

// QuizService picks quiz questions and grades answers
type QuizService struct {
	questions  domain.QuestionRepository
	categories *CategoryService
}

// NewQuizService creates a new quiz service
func NewQuizService(questions domain.QuestionRepository, categories *CategoryService) *QuizService {
	return &QuizService{
		questions:  questions,
		categories: categories,
	}
}

// Next picks a random question from categoryID (domain.AllCategoriesID for
// every category) that is not among previous
func (s *QuizService) Next(ctx context.Context, categoryID int, previous []int) (*QuizRound, error) {
	round := &QuizRound{Category: domain.AllCategories()}

	if categoryID != domain.AllCategoriesID {
		category, err := s.categories.Get(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		round.Category = *category
	}

	question, err := s.questions.Random(ctx, categoryID, previous)
	if err != nil {
		if errors.Is(err, domain.ErrNoQuestions) {
			// Quiz complete
			return round, nil
		}
		return nil, err
	}

	round.Question = question
	return round, nil
}

// CheckAnswer grades a player's answer to a question
func (s *QuizService) CheckAnswer(ctx context.Context, questionID int, answer string) (*AnswerResult, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, domain.ErrInvalidAnswer
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	return &AnswerResult{
		QuestionID: question.ID,
		Correct:    validation.CheckAnswer(answer, question.Answer),
		Answer:     question.Answer,
	}, nil
}
