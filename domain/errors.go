package domain

import "errors"

var (
	// ErrPostNotFound indicates the requested post does not exist in the source.
	ErrPostNotFound = errors.New("post not found")

	// ErrEmptyComment indicates the user submitted a blank comment.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrCommentTooLong indicates the comment exceeds the character limit.
	ErrCommentTooLong = errors.New("comment exceeds character limit")

	// ErrInvalidPage indicates a page request with a negative offset or non-positive limit.
	ErrInvalidPage = errors.New("invalid page request")
)
