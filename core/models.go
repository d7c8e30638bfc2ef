package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated from content so that identical input produces identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Course represents one ingested course document.
// The title is the natural key: it must be unique across the corpus.
type Course struct {
	Title      string
	CourseLink string
	Instructor string
	Lessons    []Lesson
}

// CourseID returns the content-based ID for a course title.
func CourseID(title string) ID {
	return IDFromContent(title)
}

// Lesson is a numbered section of a course document.
// Numbers are unique within a course but not required to be contiguous.
type Lesson struct {
	Number int
	Title  string
	Link   string
	Body   string // raw lesson text; consumed by chunking, never persisted
}

// Chunk is the atomic unit of retrieval: a bounded, overlap-linked span of
// course text. LessonNumber is nil for text preceding the first lesson marker.
type Chunk struct {
	CourseTitle   string
	LessonNumber  *int
	SequenceIndex int // document-global emission order, strictly increasing
	Text          string
	Vector        []float32 // embedding of ContextualText, populated at index time
	InsertedAt    time.Time
}

// ChunkID returns the content-based ID for a chunk within its course.
func ChunkID(courseTitle string, sequenceIndex int) ID {
	return IDFromContent(fmt.Sprintf("%s:%d", courseTitle, sequenceIndex))
}

// ContextualText returns the chunk text prefixed with a short label naming
// its course and lesson, so the chunk is self-describing when retrieved out
// of context. This is the form that gets embedded and matched against.
func (c *Chunk) ContextualText() string {
	if c.LessonNumber != nil {
		return fmt.Sprintf("Course %s Lesson %d content: %s", c.CourseTitle, *c.LessonNumber, c.Text)
	}
	return fmt.Sprintf("Course %s content: %s", c.CourseTitle, c.Text)
}

// LessonRef is the lightweight lesson descriptor stored with a catalog entry.
type LessonRef struct {
	Number int
	Title  string
	Link   string
}

// CatalogEntry is the per-course record used for fuzzy title resolution.
// The vector embeds the course title; the rest is a structured side payload
// (analytics, lesson link lookup) and is never used for content matching.
type CatalogEntry struct {
	Title      string
	CourseLink string
	Instructor string
	Lessons    []LessonRef
	Vector     []float32
	InsertedAt time.Time
}

// CatalogEntry derives the catalog record for a course, dropping lesson bodies.
func (c *Course) CatalogEntry() *CatalogEntry {
	lessons := make([]LessonRef, len(c.Lessons))
	for i, l := range c.Lessons {
		lessons[i] = LessonRef{Number: l.Number, Title: l.Title, Link: l.Link}
	}
	return &CatalogEntry{
		Title:      c.Title,
		CourseLink: c.CourseLink,
		Instructor: c.Instructor,
		Lessons:    lessons,
	}
}

// LessonLink returns the stored link for a lesson number, or "" if unknown.
func (e *CatalogEntry) LessonLink(number int) (string, bool) {
	for _, l := range e.Lessons {
		if l.Number == number {
			return l.Link, true
		}
	}
	return "", false
}

// Source is the provenance attribution surfaced to the end user for a
// retrieved chunk, independent of the generated answer text.
type Source struct {
	CourseTitle  string
	LessonNumber *int
	LessonLink   string
}

// Label renders the source as "Title" or "Title - Lesson N".
func (s Source) Label() string {
	if s.LessonNumber != nil {
		return fmt.Sprintf("%s - Lesson %d", s.CourseTitle, *s.LessonNumber)
	}
	return s.CourseTitle
}

// ScoredChunk is a content search hit with its relevance score.
type ScoredChunk struct {
	Chunk *Chunk
	Score float32
}

// ScoredTitle is a catalog search hit with its relevance score.
type ScoredTitle struct {
	Title string
	Score float32
}
