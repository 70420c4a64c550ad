package domain

import "context"

// AllCategoriesID is the quiz sentinel meaning "questions from every category"
const AllCategoriesID = 0

// Category groups questions by subject
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// AllCategories is the pseudo-category reported for quizzes across every category
func AllCategories() Category {
	return Category{ID: AllCategoriesID, Type: "all"}
}

// CategoryRepository defines the interface for category-related operations.
// Categories are seeded out of band and read-only through the API.
type CategoryRepository interface {
	// List retrieves all categories ordered by id
	List(ctx context.Context) ([]Category, error)

	// GetByID retrieves a category by its ID, or ErrCategoryNotFound
	GetByID(ctx context.Context, id int) (*Category, error)
}
