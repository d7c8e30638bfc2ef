package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/courselens/courselens/core"
)

// Key prefixes for different data types
const (
	catalogRecordPrefix = "catrec"
	chunkRecordPrefix   = "chkrec"
)

// makeCatalogKey generates a key for a catalog entry.
// The entry ID is the content ID of the course title, so the key is
// stable across re-ingestion.
func makeCatalogKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", catalogRecordPrefix, id))
}

// makeChunkKey generates a composite key for a chunk.
// Format: prefix:courseID:sequenceIndex, with both numbers written in
// BigEndian order so chunks of one course sort by sequence.
func makeChunkKey(courseID core.ID, sequenceIndex int) []byte {
	buf := makePartialChunkKey(courseID)
	offset := len(buf)
	buf = append(buf, make([]byte, 8)...)
	binary.BigEndian.PutUint64(buf[offset:], uint64(sequenceIndex))
	return buf
}

// makePartialChunkKey generates a prefix covering all chunks of one course.
func makePartialChunkKey(courseID core.ID) []byte {
	prefix := chunkRecordPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(courseID))
	return buf
}
