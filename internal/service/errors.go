package service

import "errors"

var (
	ErrEmailTaken          = errors.New("email already taken")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrChildNotFound       = errors.New("child not found")
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrAssessmentSubmitted = errors.New("assessment already submitted")
)
