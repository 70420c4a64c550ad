package domain

import "errors"

// Common errors. The handler package maps each one to exactly one HTTP status.
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoQuestions      = errors.New("no questions found")
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrInvalidAnswer    = errors.New("invalid answer")
	ErrStoreFailure     = errors.New("store failure")
)
