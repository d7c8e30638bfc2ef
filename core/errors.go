package core

import "errors"

// Domain validation errors
var (
	// ErrMalformedDocument indicates a course document that cannot be parsed,
	// typically because the title header line is missing.
	ErrMalformedDocument = errors.New("malformed course document")

	// ErrEmptyTitle indicates a course with an empty title.
	ErrEmptyTitle = errors.New("course title cannot be empty")

	// ErrDuplicateLessonNumber indicates two lessons sharing a number
	// within the same course.
	ErrDuplicateLessonNumber = errors.New("duplicate lesson number")

	// ErrNegativeLessonNumber indicates a lesson with a negative number.
	ErrNegativeLessonNumber = errors.New("lesson number cannot be negative")

	// ErrEmptyChunkText indicates a chunk with no text.
	ErrEmptyChunkText = errors.New("chunk text cannot be empty")

	// ErrInvalidSequenceIndex indicates a chunk with a negative sequence index.
	ErrInvalidSequenceIndex = errors.New("sequence index cannot be negative")
)
