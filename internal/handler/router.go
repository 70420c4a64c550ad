package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/validation"
	ws "github.com/zizouhuweidi/trivia/internal/websocket"
)

// Deps is everything the router needs to serve requests
type Deps struct {
	Categories *service.CategoryService
	Questions  *service.QuestionService
	Quiz       *service.QuizService
	Hub        *ws.Hub
	Log        *zap.Logger

	// Optional per-request timeout, zero for none
	RequestTimeout time.Duration

	// Optional write limiter for create and delete
	Limiter         RateLimiter
	WriteRateLimit  int
	WriteRateWindow time.Duration
}

// NewRouter builds the echo instance with middleware and every route
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.NewValidator()
	e.HTTPErrorHandler = ErrorHandler(d.Log)

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))
	if d.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/ws"
			},
			Timeout: d.RequestTimeout,
		}))
	}

	var writes []echo.MiddlewareFunc
	if d.Limiter != nil && d.WriteRateLimit > 0 {
		writes = append(writes, RateLimit(d.Limiter, d.WriteRateLimit, d.WriteRateWindow, d.Log))
	}

	// Routes
	NewCategoryHandler(d.Categories, d.Questions).Register(e)
	NewQuestionHandler(d.Questions).Register(e, writes...)
	NewQuizHandler(d.Quiz).Register(e)
	if d.Hub != nil {
		NewWebSocketHandler(d.Hub).Register(e)
	}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello World!")
	})

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	return e
}
