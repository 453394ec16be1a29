package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the authenticated member lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates a missing or invalid authentication credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrPinLocked indicates that PIN verification is temporarily locked for the member.
var ErrPinLocked = errors.New("pin verification locked")
