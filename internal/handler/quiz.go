package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/service"
)

// QuizHandler handles quiz-mode HTTP requests
type QuizHandler struct {
	quiz *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quiz *service.QuizService) *QuizHandler {
	return &QuizHandler{
		quiz: quiz,
	}
}

// Register registers the quiz routes
func (h *QuizHandler) Register(e *echo.Echo) {
	e.POST("/quizzes", h.NextQuestion)
	e.POST("/quizzes/answers", h.CheckAnswer)
}

// QuizRequest is the body of POST /quizzes
type QuizRequest struct {
	QuizCategory      quizCategory `json:"quiz_category"`
	PreviousQuestions []int        `json:"previous_questions"`
}

// AnswerRequest is the body of POST /quizzes/answers
type AnswerRequest struct {
	QuestionID int    `json:"question_id" validate:"required,min=1"`
	Answer     string `json:"answer"`
}

// NextQuestion picks a question the player has not seen yet
func (h *QuizHandler) NextQuestion(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	round, err := h.quiz.Next(c.Request().Context(), int(req.QuizCategory), req.PreviousQuestions)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, QuizResponse{
		Success:         true,
		CurrentQuestion: round.Question,
		CurrentCategory: round.Category,
	})
}

// CheckAnswer grades a player's answer
func (h *QuizHandler) CheckAnswer(c echo.Context) error {
	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.quiz.CheckAnswer(c.Request().Context(), req.QuestionID, req.Answer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AnswerResponse{
		Success:    true,
		QuestionID: result.QuestionID,
		Correct:    result.Correct,
		Answer:     result.Answer,
	})
}
