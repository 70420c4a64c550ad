package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/pagination"
)

// newTestPool connects to the database named by POSTGRES_TEST_URL and
// migrates and seeds a fresh schema that is dropped when the test ends
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	ctx := context.Background()
	admin, err := pgxpool.New(ctx, url)
	require.NoError(t, err)

	schema := "trivia_test_" + uuid.NewString()[:8]
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)

	cfg, err := pgxpool.ParseConfig(url)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	require.NoError(t, Migrate(ctx, pool))
	seeded, err := Seed(ctx, pool)
	require.NoError(t, err)
	require.Equal(t, len(DefaultCategories), seeded)

	return pool
}

func createQuestions(t *testing.T, repo *QuestionRepository, texts ...string) []int {
	t.Helper()
	ids := make([]int, 0, len(texts))
	for i, text := range texts {
		q := &domain.Question{
			Question:   text,
			Answer:     fmt.Sprintf("answer %d", i+1),
			Category:   1 + (i+1)%2,
			Difficulty: 1 + i%5,
		}
		require.NoError(t, repo.Create(context.Background(), q))
		ids = append(ids, q.ID)
	}
	return ids
}

func numbered(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("Question %d", i+1)
	}
	return texts
}

func TestSeedAndCategories(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewCategoryRepository(pool)

	again, err := Seed(ctx, pool)
	require.NoError(t, err)
	assert.Zero(t, again, "seeding a populated table is a no-op")

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(DefaultCategories))
	for i, c := range categories {
		assert.Equal(t, i+1, c.ID)
		assert.Equal(t, DefaultCategories[i], c.Type)
	}

	c, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Category{ID: 2, Type: "Art"}, *c)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestQuestionRepositoryList(t *testing.T) {
	repo := NewQuestionRepository(newTestPool(t))
	ctx := context.Background()
	ids := createQuestions(t, repo, numbered(15)...)
	require.Equal(t, 1, ids[0])

	page, err := repo.List(ctx, domain.QuestionFilter{}, pagination.NewPage(2))
	require.NoError(t, err)
	assert.Equal(t, 15, page.Total)
	require.Len(t, page.Questions, 5)
	for i, q := range page.Questions {
		assert.Equal(t, 11+i, q.ID)
	}

	byCategory, err := repo.List(ctx, domain.QuestionFilter{Category: 2}, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 8, byCategory.Total)
	for _, q := range byCategory.Questions {
		assert.Equal(t, 2, q.Category)
	}

	beyond, err := repo.List(ctx, domain.QuestionFilter{}, pagination.ParsePage("1000000000000000000"))
	require.NoError(t, err)
	assert.Equal(t, 15, beyond.Total)
	assert.Empty(t, beyond.Questions)
}

func TestQuestionRepositorySearch(t *testing.T) {
	repo := NewQuestionRepository(newTestPool(t))
	ctx := context.Background()

	texts := numbered(3)
	for i := 1; i <= 12; i++ {
		texts = append(texts, fmt.Sprintf("Which book TITLE is number %d?", i))
	}
	texts = append(texts, "Is 100% the same as 1_0_0?")
	createQuestions(t, repo, texts...)

	result, err := repo.List(ctx, domain.QuestionFilter{SearchTerm: "title"}, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 12, result.Total, "total counts every match, not just the page")
	assert.Len(t, result.Questions, 10)

	// Wildcards in the term match literally
	result, err = repo.List(ctx, domain.QuestionFilter{SearchTerm: "%"}, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	result, err = repo.List(ctx, domain.QuestionFilter{SearchTerm: "1_0"}, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	result, err = repo.List(ctx, domain.QuestionFilter{SearchTerm: "nowhere"}, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.NotNil(t, result.Questions)
}

func TestQuestionRepositoryRandom(t *testing.T) {
	repo := NewQuestionRepository(newTestPool(t))
	ctx := context.Background()
	ids := createQuestions(t, repo, numbered(6)...)

	q, err := repo.Random(ctx, domain.AllCategoriesID, nil)
	require.NoError(t, err)
	assert.Contains(t, ids, q.ID)

	// Category 2 holds the odd ids
	q, err = repo.Random(ctx, 2, []int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 5, q.ID)

	_, err = repo.Random(ctx, 2, []int{1, 3, 5})
	assert.ErrorIs(t, err, domain.ErrNoQuestions)

	_, err = repo.Random(ctx, domain.AllCategoriesID, ids)
	assert.ErrorIs(t, err, domain.ErrNoQuestions)
}

func TestQuestionRepositoryDelete(t *testing.T) {
	repo := NewQuestionRepository(newTestPool(t))
	ctx := context.Background()
	ids := createQuestions(t, repo, numbered(3)...)

	require.NoError(t, repo.Delete(ctx, ids[1]))

	_, err := repo.GetByID(ctx, ids[1])
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	page, err := repo.List(ctx, domain.QuestionFilter{}, pagination.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	err = repo.Delete(ctx, ids[1])
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	assert.NotErrorIs(t, err, domain.ErrStoreFailure)

	err = repo.Delete(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}
