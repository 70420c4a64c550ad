package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/pagination"
)

const questionColumns = `id, question, answer, category, difficulty`

// QuestionRepository implements the domain.QuestionRepository interface
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		pool: pool,
	}
}

// List returns one page of questions matching filter, ordered by id, along
// with the total number of matches
func (r *QuestionRepository) List(ctx context.Context, filter domain.QuestionFilter, page pagination.Page) (*domain.QuestionPage, error) {
	where, args := questionWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM questions%s ORDER BY id LIMIT $%d OFFSET $%d`,
		questionColumns, where, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0, page.Limit())
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return &domain.QuestionPage{Questions: questions, Total: total}, nil
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	var question domain.Question
	err := r.pool.QueryRow(ctx, `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE id = $1
	`, id).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Category,
		&question.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// Create inserts a new question in its own transaction and assigns its ID
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO questions (question, answer, category, difficulty)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`,
			question.Question,
			question.Answer,
			question.Category,
			question.Difficulty,
		).Scan(&question.ID)
		if err != nil {
			return classifyWriteError("failed to create question", err)
		}
		return nil
	})
}

// Delete removes a question in its own transaction
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var found int
		err := tx.QueryRow(ctx, `SELECT id FROM questions WHERE id = $1 FOR UPDATE`, id).Scan(&found)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrQuestionNotFound
			}
			return classifyWriteError("failed to look up question", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id); err != nil {
			return classifyWriteError("failed to delete question", err)
		}
		return nil
	})
}

// Random retrieves a random question from a category (0 for any category)
// that is not in exclude
func (r *QuestionRepository) Random(ctx context.Context, category int, exclude []int) (*domain.Question, error) {
	if exclude == nil {
		// A NULL array would make the NOT ANY predicate NULL for every row
		exclude = []int{}
	}

	var question domain.Question
	err := r.pool.QueryRow(ctx, `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE ($1 = 0 OR category = $1)
		  AND NOT (id = ANY($2))
		ORDER BY RANDOM()
		LIMIT 1
	`, category, exclude).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Category,
		&question.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoQuestions
		}
		return nil, fmt.Errorf("failed to get random question: %w", err)
	}
	return &question, nil
}

// withTx runs fn in a transaction, committing on success and rolling back otherwise
func (r *QuestionRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", domain.ErrStoreFailure, err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", domain.ErrStoreFailure, err)
	}
	return nil
}

// questionWhere builds the WHERE clause and positional args for filter
func questionWhere(filter domain.QuestionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Category != 0 {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.SearchTerm != "" {
		args = append(args, likeEscaper.Replace(filter.SearchTerm))
		conds = append(conds, fmt.Sprintf("question ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// likeEscaper makes LIKE wildcards in user input match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// classifyWriteError tags a failed write. Rejected input (data exceptions and
// integrity violations) becomes ErrInvalidQuestion, anything else ErrStoreFailure.
func classifyWriteError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")) {
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidQuestion, msg, pgErr.Message)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, msg, err)
}
