package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/pagination"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categories *service.CategoryService
	questions  *service.QuestionService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories *service.CategoryService, questions *service.QuestionService) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		questions:  questions,
	}
}

// Register registers the category routes
func (h *CategoryHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.ListCategories)
	e.GET("/categories/:id/questions", h.ListCategoryQuestions)
}

// ListCategories returns every category
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CategoriesResponse{
		Success:         true,
		Categories:      categories,
		TotalCategories: len(categories),
	})
}

// ListCategoryQuestions returns a page of the questions in one category
func (h *CategoryHandler) ListCategoryQuestions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	page := pagination.ParsePage(c.QueryParam("page"))
	result, err := h.questions.ByCategory(c.Request().Context(), id, page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CategoryQuestionsResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  result.Total,
		CurrentCategory: result.Category,
	})
}

// pathID parses the :id path parameter
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id").SetInternal(err)
	}
	return id, nil
}
