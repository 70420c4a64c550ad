package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// CategoriesResponse is the body of GET /categories
type CategoriesResponse struct {
	Success         bool              `json:"success"`
	Categories      []domain.Category `json:"categories"`
	TotalCategories int               `json:"total_categories"`
}

// QuestionsResponse is the body of GET /questions
type QuestionsResponse struct {
	Success        bool              `json:"success"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
	Categories     []domain.Category `json:"categories"`
}

// SearchResponse is the body of a question search
type SearchResponse struct {
	Success        bool              `json:"success"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// CreatedResponse is the body returned after creating a question
type CreatedResponse struct {
	Success        bool              `json:"success"`
	Created        int               `json:"created"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// DeletedResponse is the body returned after deleting a question
type DeletedResponse struct {
	Success        bool              `json:"success"`
	Deleted        int               `json:"deleted"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// CategoryQuestionsResponse is the body of GET /categories/:id/questions
type CategoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory domain.Category   `json:"current_category"`
}

// QuizResponse is the body of POST /quizzes. CurrentQuestion is null once
// the quiz is complete.
type QuizResponse struct {
	Success         bool             `json:"success"`
	CurrentQuestion *domain.Question `json:"current_question"`
	CurrentCategory domain.Category  `json:"current_category"`
}

// AnswerResponse is the body of POST /quizzes/answers
type AnswerResponse struct {
	Success    bool   `json:"success"`
	QuestionID int    `json:"question_id"`
	Correct    bool   `json:"correct"`
	Answer     string `json:"answer"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// flexInt decodes a JSON number or a numeric string. Form selects in the
// browser client post ids as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*f = 0
			return nil
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid integer %q", raw)
	}
	*f = flexInt(n)
	return nil
}

// quizCategory is the quiz_category field: a bare id or a {id, type} object.
// Zero selects every category.
type quizCategory int

func (q *quizCategory) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID flexInt `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*q = quizCategory(obj.ID)
		return nil
	}

	var id flexInt
	if err := id.UnmarshalJSON(data); err != nil {
		return err
	}
	*q = quizCategory(id)
	return nil
}
