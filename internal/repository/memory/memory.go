// Package memory provides in-process repositories for local runs and tests.
package memory

import (
	"context"
	"math/rand"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/pagination"
)

// Store holds questions and categories in maps guarded by a RWMutex.
// It implements both domain.QuestionRepository and domain.CategoryRepository
// through the Questions and Categories views.
type Store struct {
	mu         sync.RWMutex
	questions  map[int]domain.Question
	categories map[int]domain.Category
	nextQID    int
	nextCID    int
	rng        *rand.Rand
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		questions:  make(map[int]domain.Question),
		categories: make(map[int]domain.Category),
		nextQID:    1,
		nextCID:    1,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AddCategory inserts a category out of band, as seeding would
func (s *Store) AddCategory(name string) domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.Category{ID: s.nextCID, Type: name}
	s.categories[c.ID] = c
	s.nextCID++
	return c
}

// Questions returns the question repository view of the store
func (s *Store) Questions() *QuestionRepository {
	return &QuestionRepository{store: s}
}

// Categories returns the category repository view of the store
func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{store: s}
}

// QuestionRepository implements domain.QuestionRepository over a Store
type QuestionRepository struct {
	store *Store
}

// List returns one page of questions matching filter, ordered by id
func (r *QuestionRepository) List(ctx context.Context, filter domain.QuestionFilter, page pagination.Page) (*domain.QuestionPage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	term := strings.ToLower(filter.SearchTerm)
	var matches []domain.Question
	for _, q := range r.store.questions {
		if filter.Category != 0 && q.Category != filter.Category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(q.Question), term) {
			continue
		}
		matches = append(matches, q)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	return &domain.QuestionPage{
		Questions: pagination.Paginate(page, matches),
		Total:     len(matches),
	}, nil
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	q, ok := r.store.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return &q, nil
}

// Create inserts a question and assigns the next ID
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	question.ID = r.store.nextQID
	r.store.nextQID++
	r.store.questions[question.ID] = *question
	return nil
}

// Delete removes a question by ID
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(r.store.questions, id)
	return nil
}

// Random picks one eligible question uniformly at random
func (r *QuestionRepository) Random(ctx context.Context, category int, exclude []int) (*domain.Question, error) {
	// The rng is not safe for concurrent use, so take the write lock
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var eligible []domain.Question
	for _, q := range r.store.questions {
		if category != domain.AllCategoriesID && q.Category != category {
			continue
		}
		if slices.Contains(exclude, q.ID) {
			continue
		}
		eligible = append(eligible, q)
	}
	if len(eligible) == 0 {
		return nil, domain.ErrNoQuestions
	}
	// Map iteration order is random but not uniform; sort first so the draw is
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })

	q := eligible[r.store.rng.Intn(len(eligible))]
	return &q, nil
}

// CategoryRepository implements domain.CategoryRepository over a Store
type CategoryRepository struct {
	store *Store
}

// List retrieves all categories ordered by id
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}
