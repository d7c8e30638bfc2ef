package docparse

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/courselens/courselens/core"
)

var (
	lessonMarkerRe = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.*)$`)
	lessonLinkRe   = regexp.MustCompile(`^Lesson Link:\s*(\S+)\s*$`)
)

// Header line labels for the course document format.
const (
	titleLabel      = "Course Title:"
	courseLinkLabel = "Course Link:"
	instructorLabel = "Course Instructor:"
)

// Parser turns a raw course document into a Course plus its retrieval chunks.
//
// The expected format is a three-line labelled header (title required, link
// and instructor optional) followed by "Lesson <N>: <title>" sections, each
// optionally opening with a "Lesson Link: <url>" line.
type Parser struct {
	config Config
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewParser creates a parser with the given chunking configuration.
func NewParser(config Config, opts ...Option) (*Parser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	p := &Parser{
		config: config,
		logger: slog.Default().With("component", "docparse"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse parses a raw course document into its Course and ordered chunks.
// Returns core.ErrMalformedDocument when the title header line is absent.
func (p *Parser) Parse(raw string) (*core.Course, []core.Chunk, error) {
	lines := strings.Split(raw, "\n")

	course, bodyStart, err := parseHeader(lines)
	if err != nil {
		return nil, nil, err
	}

	preamble := splitLessons(course, lines[bodyStart:])

	if err := core.ValidateCourse(course); err != nil {
		return nil, nil, err
	}

	chunks := p.chunkCourse(course, preamble)
	p.logger.Debug("parsed course document",
		"title", course.Title,
		"lessons", len(course.Lessons),
		"chunks", len(chunks))

	return course, chunks, nil
}

// parseHeader reads the labelled header lines. The title line is required;
// link and instructor are optional and may appear in any of the first lines
// before lesson content begins.
func parseHeader(lines []string) (*core.Course, int, error) {
	course := &core.Course{}
	consumed := 0

header:
	for i := 0; i < len(lines) && i < 4; i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(line, titleLabel):
			course.Title = strings.TrimSpace(strings.TrimPrefix(line, titleLabel))
			consumed = i + 1
		case strings.HasPrefix(line, courseLinkLabel):
			course.CourseLink = strings.TrimSpace(strings.TrimPrefix(line, courseLinkLabel))
			consumed = i + 1
		case strings.HasPrefix(line, instructorLabel):
			course.Instructor = strings.TrimSpace(strings.TrimPrefix(line, instructorLabel))
			consumed = i + 1
		case line == "":
			continue
		default:
			// First non-header line ends the header block.
			break header
		}
	}

	if course.Title == "" {
		return nil, 0, fmt.Errorf("%w: missing %q header line", core.ErrMalformedDocument, titleLabel)
	}

	return course, consumed, nil
}

// splitLessons walks the body lines, appending lessons to the course and
// returning the preamble text found before the first lesson marker.
func splitLessons(course *core.Course, lines []string) (preamble string) {
	var pre strings.Builder
	var current *core.Lesson
	var body strings.Builder

	flush := func() {
		if current != nil {
			current.Body = strings.TrimSpace(body.String())
			course.Lessons = append(course.Lessons, *current)
			body.Reset()
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := lessonMarkerRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			number, _ := strconv.Atoi(m[1])
			current = &core.Lesson{Number: number, Title: strings.TrimSpace(m[2])}

			// An optional link line directly follows the marker.
			if i+1 < len(lines) {
				if lm := lessonLinkRe.FindStringSubmatch(strings.TrimSpace(lines[i+1])); lm != nil {
					current.Link = lm[1]
					i++
				}
			}
			continue
		}

		if current == nil {
			pre.WriteString(line)
			pre.WriteString("\n")
		} else {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}
	flush()

	return strings.TrimSpace(pre.String())
}

// chunkCourse emits chunks for the preamble and every lesson, assigning
// document-global sequence indexes in emission order.
func (p *Parser) chunkCourse(course *core.Course, preamble string) []core.Chunk {
	var chunks []core.Chunk
	sequence := 0

	emit := func(text string, lessonNumber *int) {
		chunks = append(chunks, core.Chunk{
			CourseTitle:   course.Title,
			LessonNumber:  lessonNumber,
			SequenceIndex: sequence,
			Text:          text,
		})
		sequence++
	}

	if preamble != "" {
		for _, text := range p.chunkText(preamble) {
			emit(text, nil)
		}
	}

	for i := range course.Lessons {
		lesson := &course.Lessons[i]
		if lesson.Body == "" {
			// A lesson with no body yields zero chunks, not an empty chunk.
			continue
		}
		number := lesson.Number
		for _, text := range p.chunkText(lesson.Body) {
			emit(text, &number)
		}
	}

	return chunks
}
