package domain

import (
	"context"

	"github.com/zizouhuweidi/trivia/internal/pagination"
)

// Question represents a trivia question in the bank
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`   // Weak reference to Category.ID, not enforced
	Difficulty int    `json:"difficulty"` // 1 (easy) to 5 (hard)
}

// QuestionFilter narrows a question listing. Zero values mean "no filter".
type QuestionFilter struct {
	Category   int    // Only questions in this category
	SearchTerm string // Case-insensitive substring of the question text
}

// QuestionPage is one page of an ordered question listing
type QuestionPage struct {
	Questions []Question
	Total     int // Count of all matching questions, not just this page
}

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List returns the page of questions matching filter, ordered by id
	List(ctx context.Context, filter QuestionFilter, page pagination.Page) (*QuestionPage, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create inserts a question and assigns its ID
	Create(ctx context.Context, question *Question) error

	// Delete removes a question by ID, returning ErrQuestionNotFound if absent
	Delete(ctx context.Context, id int) error

	// Random picks one question uniformly among those in category (0 for any)
	// whose ID is not in exclude. Returns ErrNoQuestions when none qualify.
	Random(ctx context.Context, category int, exclude []int) (*Question, error)
}
