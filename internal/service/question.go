package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/pagination"
	"github.com/zizouhuweidi/trivia/internal/validation"
)

// CreateQuestionRequest represents the request to create a new question
type CreateQuestionRequest struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   int    `json:"category" validate:"required,min=1"`
	Difficulty int    `json:"difficulty" validate:"required,min=1,max=5"`
}

// QuestionListing is a page of questions with the categories used to label them
type QuestionListing struct {
	domain.QuestionPage
	Categories []domain.Category
}

// CategoryQuestions is a page of questions from a single category
type CategoryQuestions struct {
	domain.QuestionPage
	Category domain.Category
}

// QuestionService handles question listing, search, creation and deletion
type QuestionService struct {
	questions  domain.QuestionRepository
	categories *CategoryService
	events     EventPublisher
	log        *zap.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(questions domain.QuestionRepository, categories *CategoryService, events EventPublisher, log *zap.Logger) *QuestionService {
	if events == nil {
		events = NopPublisher
	}
	return &QuestionService{
		questions:  questions,
		categories: categories,
		events:     events,
		log:        log,
	}
}

// List returns a page of all questions plus every category. An empty page
// is ErrNoQuestions.
func (s *QuestionService) List(ctx context.Context, page pagination.Page) (*QuestionListing, error) {
	result, err := s.questions.List(ctx, domain.QuestionFilter{}, page)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, domain.ErrNoQuestions
	}

	categories, err := s.categories.All(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionListing{QuestionPage: *result, Categories: categories}, nil
}

// Search returns a page of questions whose text contains term, ignoring
// case. Total counts every match. An empty result is not an error.
func (s *QuestionService) Search(ctx context.Context, term string, page pagination.Page) (*domain.QuestionPage, error) {
	return s.questions.List(ctx, domain.QuestionFilter{SearchTerm: term}, page)
}

// ByCategory returns a page of the questions in one category. A missing
// category is reported before any question lookup.
func (s *QuestionService) ByCategory(ctx context.Context, categoryID int, page pagination.Page) (*CategoryQuestions, error) {
	category, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	result, err := s.questions.List(ctx, domain.QuestionFilter{Category: category.ID}, page)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, domain.ErrNoQuestions
	}

	return &CategoryQuestions{QuestionPage: *result, Category: *category}, nil
}

// Create stores a new question and returns it together with the requested
// page of all questions. Text is stored as given; blank text or text
// carrying HTML markup is ErrInvalidQuestion.
func (s *QuestionService) Create(ctx context.Context, req CreateQuestionRequest, page pagination.Page) (*domain.Question, *domain.QuestionPage, error) {
	for _, text := range []string{req.Question, req.Answer} {
		if strings.TrimSpace(text) == "" || validation.ContainsMarkup(text) {
			return nil, nil, domain.ErrInvalidQuestion
		}
	}

	question := &domain.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		Difficulty: req.Difficulty,
	}

	if err := s.questions.Create(ctx, question); err != nil {
		s.log.Error("failed to create question", zap.Error(err))
		return nil, nil, err
	}

	s.events.Publish(EventQuestionCreated, question.Category, question)

	result, err := s.afterWrite(ctx, page)
	if err != nil {
		return nil, nil, err
	}
	return question, result, nil
}

// Delete removes a question and returns the requested page of what remains
func (s *QuestionService) Delete(ctx context.Context, id int, page pagination.Page) (*domain.QuestionPage, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrQuestionNotFound) {
			s.log.Error("failed to delete question", zap.Int("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.events.Publish(EventQuestionDeleted, question.Category, map[string]int{"id": id})

	return s.afterWrite(ctx, page)
}

// afterWrite lists questions once a write has committed. The write already
// succeeded, so a failure here is a store failure rather than a missing row.
func (s *QuestionService) afterWrite(ctx context.Context, page pagination.Page) (*domain.QuestionPage, error) {
	result, err := s.questions.List(ctx, domain.QuestionFilter{}, page)
	if err != nil {
		s.log.Error("failed to list questions after write", zap.Error(err))
		return nil, errors.Join(domain.ErrStoreFailure, err)
	}
	return result, nil
}
