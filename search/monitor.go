package search

import (
	"github.com/courselens/courselens/core"
)

// Monitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps during a search.
type Monitor interface {
	Start(query Query)
	AfterCourseResolution(requested, resolved string)
	AfterChunkSearch(hits int)
	Finish(results []*core.ScoredChunk)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Query)                     {}
func (n *noopMonitor) AfterCourseResolution(_, _ string) {}
func (n *noopMonitor) AfterChunkSearch(_ int)            {}
func (n *noopMonitor) Finish(_ []*core.ScoredChunk)      {}
