package core

import "fmt"

// ValidateCourse validates a Course according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Lesson numbers must be non-negative
//   - Lesson numbers must be unique within the course
//
// NOT validated:
//   - Lesson bodies (empty bodies are legal and simply yield no chunks)
//   - CourseLink / Instructor (optional header fields)
func ValidateCourse(course *Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", ErrMalformedDocument)
	}

	if course.Title == "" {
		return fmt.Errorf("%w: %w", ErrMalformedDocument, ErrEmptyTitle)
	}

	seen := make(map[int]bool, len(course.Lessons))
	for _, lesson := range course.Lessons {
		if lesson.Number < 0 {
			return fmt.Errorf("%w: %w: lesson %d", ErrMalformedDocument, ErrNegativeLessonNumber, lesson.Number)
		}
		if seen[lesson.Number] {
			return fmt.Errorf("%w: %w: lesson %d", ErrMalformedDocument, ErrDuplicateLessonNumber, lesson.Number)
		}
		seen[lesson.Number] = true
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - CourseTitle must not be empty
//   - Text must not be empty
//   - SequenceIndex must be non-negative
//
// NOT validated (populated at index time):
//   - Vector (empty until the chunk is embedded)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("chunk is nil")
	}

	if chunk.CourseTitle == "" {
		return ErrEmptyTitle
	}

	if chunk.Text == "" {
		return ErrEmptyChunkText
	}

	if chunk.SequenceIndex < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSequenceIndex, chunk.SequenceIndex)
	}

	return nil
}
