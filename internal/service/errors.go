package service

import "errors"

// Not-found deliberately collapses "never existed", "belongs to someone
// else" and "wrong state" into one signal so existence never leaks.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrMissingParams    = errors.New("missing or invalid parameters")
)
