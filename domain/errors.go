package domain

import "errors"

var (
	// ErrUnauthorized indicates missing, expired, or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoToken indicates a login response without a bearer token.
	ErrNoToken = errors.New("no token returned from API")

	// ErrEmptyPost indicates the user submitted a post without content.
	ErrEmptyPost = errors.New("content is required")

	// ErrEmptyComment indicates the user submitted a blank comment.
	ErrEmptyComment = errors.New("comment cannot be empty")

	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNameTooShort     = errors.New("name must be at least 2 characters")
	ErrInvalidURL       = errors.New("invalid URL")

	// ErrUnsupportedImage indicates a file that is not JPEG, PNG, GIF, or WebP.
	ErrUnsupportedImage = errors.New("please select an image (JPEG, PNG, GIF, WebP)")

	// ErrImageTooLarge indicates a file above MaxImageSize.
	ErrImageTooLarge = errors.New("image must be less than 5MB")
)
