package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/pagination"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	questions *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
	}
}

// Register registers the question routes. writes wraps the mutating routes,
// typically with a rate limiter.
func (h *QuestionHandler) Register(e *echo.Echo, writes ...echo.MiddlewareFunc) {
	e.GET("/questions", h.ListQuestions)
	e.POST("/questions", h.CreateOrSearchQuestions, writes...)
	e.POST("/questions/search", h.SearchQuestions)
	e.DELETE("/questions/:id", h.DeleteQuestion, writes...)
}

// QuestionRequest is the body of POST /questions. A non-empty searchTerm
// selects search; otherwise the remaining fields describe a new question.
type QuestionRequest struct {
	SearchTerm string  `json:"searchTerm"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   flexInt `json:"category"`
	Difficulty flexInt `json:"difficulty"`
}

// SearchRequest is the body of POST /questions/search
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// ListQuestions returns a page of every question with all categories
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	page := pagination.ParsePage(c.QueryParam("page"))
	result, err := h.questions.List(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, QuestionsResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
		Categories:     result.Categories,
	})
}

// CreateOrSearchQuestions serves the combined POST /questions route used by
// the browser client
func (h *QuestionHandler) CreateOrSearchQuestions(c echo.Context) error {
	var req QuestionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if req.SearchTerm != "" {
		return h.search(c, req.SearchTerm)
	}

	return h.create(c, service.CreateQuestionRequest{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   int(req.Category),
		Difficulty: int(req.Difficulty),
	})
}

// SearchQuestions returns a page of questions containing searchTerm
func (h *QuestionHandler) SearchQuestions(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.search(c, req.SearchTerm)
}

func (h *QuestionHandler) search(c echo.Context, term string) error {
	page := pagination.ParsePage(c.QueryParam("page"))
	result, err := h.questions.Search(c.Request().Context(), term, page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	})
}

func (h *QuestionHandler) create(c echo.Context, req service.CreateQuestionRequest) error {
	if err := c.Validate(&req); err != nil {
		return err
	}

	page := pagination.ParsePage(c.QueryParam("page"))
	question, result, err := h.questions.Create(c.Request().Context(), req, page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreatedResponse{
		Success:        true,
		Created:        question.ID,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	})
}

// DeleteQuestion removes a question and returns a page of what remains
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	page := pagination.ParsePage(c.QueryParam("page"))
	result, err := h.questions.Delete(c.Request().Context(), id, page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DeletedResponse{
		Success:        true,
		Deleted:        id,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	})
}
