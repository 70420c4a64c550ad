package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/pagination"
	"github.com/zizouhuweidi/trivia/internal/repository/memory"
)

type fakeCache struct {
	categories []domain.Category
	gets       int
	stores     int
}

func (c *fakeCache) GetCategories(ctx context.Context) ([]domain.Category, error) {
	c.gets++
	if c.categories == nil {
		return nil, errors.New("miss")
	}
	return c.categories, nil
}

func (c *fakeCache) StoreCategories(ctx context.Context, categories []domain.Category) error {
	c.stores++
	c.categories = categories
	return nil
}

type event struct {
	Type     string
	Category int
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) Publish(eventType string, category int, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{Type: eventType, Category: category})
}

// failingLister makes List fail while every other call reaches the store
type failingLister struct {
	domain.QuestionRepository
}

func (failingLister) List(context.Context, domain.QuestionFilter, pagination.Page) (*domain.QuestionPage, error) {
	return nil, errors.New("connection reset")
}

func newStore(t *testing.T, questions int) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	store.AddCategory("Science")
	store.AddCategory("Art")

	for i := 1; i <= questions; i++ {
		require.NoError(t, store.Questions().Create(context.Background(), &domain.Question{
			Question:   fmt.Sprintf("Question %d", i),
			Answer:     fmt.Sprintf("Answer %d", i),
			Category:   1 + i%2,
			Difficulty: 1,
		}))
	}
	return store
}

func newServices(store *memory.Store, events EventPublisher) (*CategoryService, *QuestionService, *QuizService) {
	log := zap.NewNop()
	categories := NewCategoryService(store.Categories(), nil, log)
	questions := NewQuestionService(store.Questions(), categories, events, log)
	quiz := NewQuizService(store.Questions(), categories)
	return categories, questions, quiz
}

func TestCategoryServiceReadThrough(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, 0)
	cache := &fakeCache{}
	categories := NewCategoryService(store.Categories(), cache, zap.NewNop())

	first, err := categories.All(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, cache.stores)

	second, err := categories.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.stores, "second read must be served from cache")
	assert.Equal(t, 2, cache.gets)
}

func TestCategoryServiceListEmpty(t *testing.T) {
	categories := NewCategoryService(memory.NewStore().Categories(), &fakeCache{}, zap.NewNop())

	_, err := categories.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	all, err := categories.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestQuestionServiceList(t *testing.T) {
	ctx := context.Background()

	_, questions, _ := newServices(newStore(t, 0), nil)
	_, err := questions.List(ctx, pagination.NewPage(1))
	assert.ErrorIs(t, err, domain.ErrNoQuestions)

	_, questions, _ = newServices(newStore(t, 15), nil)
	listing, err := questions.List(ctx, pagination.NewPage(2))
	require.NoError(t, err)
	assert.Equal(t, 15, listing.Total)
	assert.Len(t, listing.Questions, 5)
	assert.Equal(t, 11, listing.Questions[0].ID)
	assert.Len(t, listing.Categories, 2)

	_, err = questions.List(ctx, pagination.NewPage(3))
	assert.ErrorIs(t, err, domain.ErrNoQuestions)
}

func TestQuestionServiceSearch(t *testing.T) {
	ctx := context.Background()
	_, questions, _ := newServices(newStore(t, 12), nil)

	result, err := questions.Search(ctx, "QUESTION 1", pagination.NewPage(1))
	require.NoError(t, err)
	// 1, 10, 11, 12
	assert.Equal(t, 4, result.Total)

	result, err = questions.Search(ctx, "nothing like this", pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Questions)
}

func TestQuestionServiceByCategory(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, 4)
	store.AddCategory("Geography")
	_, questions, _ := newServices(store, nil)

	result, err := questions.ByCategory(ctx, 1, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, domain.Category{ID: 1, Type: "Science"}, result.Category)
	assert.Equal(t, 2, result.Total)
	for _, q := range result.Questions {
		assert.Equal(t, 1, q.Category)
	}

	_, err = questions.ByCategory(ctx, 3, pagination.NewPage(1))
	assert.ErrorIs(t, err, domain.ErrNoQuestions)

	_, err = questions.ByCategory(ctx, 42, pagination.NewPage(1))
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestQuestionServiceCreateAndDelete(t *testing.T) {
	ctx := context.Background()
	events := &recorder{}
	_, questions, _ := newServices(newStore(t, 3), events)

	created, page, err := questions.Create(ctx, CreateQuestionRequest{
		Question:   "Q",
		Answer:     "A",
		Category:   2,
		Difficulty: 2,
	}, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, 4, page.Total)

	remaining, err := questions.Delete(ctx, created.ID, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 3, remaining.Total)

	_, err = questions.Delete(ctx, created.ID, pagination.NewPage(1))
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	assert.Equal(t, []event{
		{Type: EventQuestionCreated, Category: 2},
		{Type: EventQuestionDeleted, Category: 2},
	}, events.events)
}

func TestQuestionServiceCreateRejectsMarkup(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, 0)
	_, questions, _ := newServices(store, nil)

	created, _, err := questions.Create(ctx, CreateQuestionRequest{
		Question:   "Is 2 < 3 & 3 > 2?",
		Answer:     "Yes",
		Category:   1,
		Difficulty: 1,
	}, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, "Is 2 < 3 & 3 > 2?", created.Question, "plain text is stored as given")

	for _, req := range []CreateQuestionRequest{
		{Question: "What does the <br> tag do?", Answer: "Line break", Category: 1, Difficulty: 1},
		{Question: "Capital of France?", Answer: "<b>Paris</b>", Category: 1, Difficulty: 1},
		{Question: "   ", Answer: "x", Category: 1, Difficulty: 1},
	} {
		_, _, err := questions.Create(ctx, req, pagination.NewPage(1))
		assert.ErrorIs(t, err, domain.ErrInvalidQuestion, req.Question)
	}

	page, err := store.Questions().List(ctx, domain.QuestionFilter{}, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestQuestionServiceListFailureAfterWrite(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, 1)
	log := zap.NewNop()
	categories := NewCategoryService(store.Categories(), nil, log)
	questions := NewQuestionService(failingLister{store.Questions()}, categories, nil, log)

	_, err := questions.Delete(ctx, 1, pagination.NewPage(1))
	assert.ErrorIs(t, err, domain.ErrStoreFailure)

	_, err = store.Questions().GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound, "delete committed before the listing failed")
}

func TestQuizServiceNext(t *testing.T) {
	ctx := context.Background()
	_, _, quiz := newServices(newStore(t, 6), nil)

	// Category 2 holds the odd ids
	round, err := quiz.Next(ctx, 2, []int{1, 3})
	require.NoError(t, err)
	require.NotNil(t, round.Question)
	assert.Equal(t, 5, round.Question.ID)
	assert.Equal(t, domain.Category{ID: 2, Type: "Art"}, round.Category)

	round, err = quiz.Next(ctx, 2, []int{1, 3, 5})
	require.NoError(t, err)
	assert.Nil(t, round.Question)

	round, err = quiz.Next(ctx, domain.AllCategoriesID, nil)
	require.NoError(t, err)
	require.NotNil(t, round.Question)
	assert.Equal(t, domain.AllCategories(), round.Category)

	_, err = quiz.Next(ctx, 99, nil)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestQuizServiceNextNeverRepeats(t *testing.T) {
	ctx := context.Background()
	_, _, quiz := newServices(newStore(t, 10), nil)

	var asked []int
	for {
		round, err := quiz.Next(ctx, domain.AllCategoriesID, asked)
		require.NoError(t, err)
		if round.Question == nil {
			break
		}
		assert.NotContains(t, asked, round.Question.ID)
		asked = append(asked, round.Question.ID)
	}
	assert.Len(t, asked, 10)
}

func TestQuizServiceCheckAnswer(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, 0)
	q := &domain.Question{Question: "Largest planet?", Answer: "Jupiter", Category: 1, Difficulty: 1}
	require.NoError(t, store.Questions().Create(ctx, q))
	_, _, quiz := newServices(store, nil)

	result, err := quiz.CheckAnswer(ctx, q.ID, "jupiter")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "Jupiter", result.Answer)

	result, err = quiz.CheckAnswer(ctx, q.ID, "Saturn")
	require.NoError(t, err)
	assert.False(t, result.Correct)

	_, err = quiz.CheckAnswer(ctx, q.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidAnswer)

	_, err = quiz.CheckAnswer(ctx, 404, "Jupiter")
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}
