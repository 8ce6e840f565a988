package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRange indicates a character span violates the offset invariant
	// (start < 0, start >= end, or end beyond the reference text)
	ErrInvalidRange = errors.New("invalid range")

	// ErrSelectionNotFound indicates a text selection could not be mapped
	// to character offsets within the page content
	ErrSelectionNotFound = errors.New("selection not found")

	// ErrExtractionUnavailable indicates the page-aware extractor failed or
	// is absent; callers fall back to estimated pagination
	ErrExtractionUnavailable = errors.New("extraction unavailable")

	// ErrUnsupportedType indicates the file's mimetype is not accepted
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")
)
