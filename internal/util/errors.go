package util

import "errors"

var (
	ErrInvalidQuestion      = errors.New("invalid question")
	ErrInvalidUserID        = errors.New("invalid user id")
	ErrSubmissionInProgress = errors.New("another submission for this user is in progress")
)
