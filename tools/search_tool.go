package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/courselens/courselens/core"
	"github.com/courselens/courselens/search"
)

// SearchToolName is the identifier the model uses to request a content search.
const SearchToolName = "search_course_content"

const searchToolDescription = "Search course materials with smart course name matching and lesson filtering"

// CourseSearchTool exposes the retrieval index to the generator as a
// callable capability.
type CourseSearchTool struct {
	index      *search.Index
	maxResults int
	logger     *slog.Logger
}

var _ Tool = (*CourseSearchTool)(nil)

// searchArguments is the wire shape of the model's arguments payload.
type searchArguments struct {
	Query        string `json:"query"`
	CourseName   string `json:"course_name"`
	LessonNumber *int   `json:"lesson_number"`
}

// NewCourseSearchTool creates a search tool over the given index.
// maxResults bounds each invocation; non-positive means the index default.
func NewCourseSearchTool(index *search.Index, maxResults int) *CourseSearchTool {
	return &CourseSearchTool{
		index:      index,
		maxResults: maxResults,
		logger:     slog.Default().With("component", "course-search-tool"),
	}
}

// Name implements Tool.
func (t *CourseSearchTool) Name() string {
	return SearchToolName
}

// Description implements Tool.
func (t *CourseSearchTool) Description() string {
	return searchToolDescription
}

// Parameters implements Tool.
func (t *CourseSearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "What to search for in the course content",
			},
			"course_name": map[string]any{
				"type":        "string",
				"description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
			},
			"lesson_number": map[string]any{
				"type":        "integer",
				"description": "Specific lesson number to search within (e.g. 1, 2, 3)",
			},
		},
		"required": []string{"query"},
	}
}

// Invoke runs the search and renders the hits for the model.
// Each hit becomes a "[<course> - Lesson <n>]" block; provenance for the
// same hits travels back in Result.Sources.
func (t *CourseSearchTool) Invoke(ctx context.Context, arguments string) (*Result, error) {
	var args searchArguments
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}

	query := search.Query{
		Text:         args.Query,
		CourseName:   args.CourseName,
		LessonNumber: args.LessonNumber,
	}

	hits, err := t.index.Search(ctx, query, t.maxResults)
	if err != nil {
		t.logger.Error("content search failed", "err", err)
		return nil, err
	}

	if len(hits) == 0 {
		return &Result{Text: t.emptyMessage(args)}, nil
	}

	return t.render(ctx, hits), nil
}

// emptyMessage reports that nothing matched, echoing the filters so the
// model can tell the user what was searched.
func (t *CourseSearchTool) emptyMessage(args searchArguments) string {
	var sb strings.Builder
	sb.WriteString("No relevant content found")
	if args.CourseName != "" {
		fmt.Fprintf(&sb, " in course '%s'", args.CourseName)
	}
	if args.LessonNumber != nil {
		fmt.Fprintf(&sb, " in lesson %d", *args.LessonNumber)
	}
	sb.WriteString(".")
	return sb.String()
}

// render formats hits into headed blocks and collects their provenance.
func (t *CourseSearchTool) render(ctx context.Context, hits []*core.ScoredChunk) *Result {
	blocks := make([]string, 0, len(hits))
	sources := make([]core.Source, 0, len(hits))

	for _, hit := range hits {
		chunk := hit.Chunk

		header := "[" + chunk.CourseTitle
		if chunk.LessonNumber != nil {
			header += fmt.Sprintf(" - Lesson %d", *chunk.LessonNumber)
		}
		header += "]"
		blocks = append(blocks, header+"\n"+chunk.Text)

		source := core.Source{
			CourseTitle:  chunk.CourseTitle,
			LessonNumber: chunk.LessonNumber,
		}
		if chunk.LessonNumber != nil {
			link, err := t.index.LessonLink(ctx, chunk.CourseTitle, *chunk.LessonNumber)
			if err != nil {
				t.logger.Debug("no lesson link for source",
					"course", chunk.CourseTitle,
					"lesson", *chunk.LessonNumber)
			} else {
				source.LessonLink = link
			}
		}
		sources = append(sources, source)
	}

	return &Result{
		Text:    strings.Join(blocks, "\n\n"),
		Sources: sources,
	}
}
