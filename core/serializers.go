package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Binary serializers for records persisted in the index. Field order is part
// of the stored format: append new fields at the end only.

var (
	vectorMUS       = ord.NewSliceSer[float32](raw.Float32)
	lessonNumberMUS = ord.NewPtrSer[int](varint.Int)
	lessonRefsMUS   = ord.NewSliceSer[LessonRef](LessonRefMUS)
)

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// timeMUS serializes timestamps as microseconds since the Unix epoch.
type timeMUS struct{}

func (timeMUS) Marshal(t time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMUS) Unmarshal(bs []byte) (t time.Time, n int, err error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func (timeMUS) Size(t time.Time) (size int) {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

var timestampMUS mus.Serializer[time.Time] = timeMUS{}

// LessonRefMUS serializes LessonRef values.
var LessonRefMUS = lessonRefMUS{}

type lessonRefMUS struct{}

func (lessonRefMUS) Marshal(l LessonRef, bs []byte) (n int) {
	n = varint.Int.Marshal(l.Number, bs)
	n += ord.String.Marshal(l.Title, bs[n:])
	n += ord.String.Marshal(l.Link, bs[n:])
	return n
}

func (lessonRefMUS) Unmarshal(bs []byte) (l LessonRef, n int, err error) {
	l.Number, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return l, n, err
	}
	var n1 int
	l.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return l, n, err
	}
	l.Link, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return l, n, err
}

func (lessonRefMUS) Size(l LessonRef) (size int) {
	size = varint.Int.Size(l.Number)
	size += ord.String.Size(l.Title)
	size += ord.String.Size(l.Link)
	return size
}

func (s lessonRefMUS) Skip(bs []byte) (n int, err error) {
	l, n, err := s.Unmarshal(bs)
	_ = l
	return n, err
}

// CatalogEntryMUS serializes CatalogEntry values.
var CatalogEntryMUS = catalogEntryMUS{}

type catalogEntryMUS struct{}

func (catalogEntryMUS) Marshal(e CatalogEntry, bs []byte) (n int) {
	n = ord.String.Marshal(e.Title, bs)
	n += ord.String.Marshal(e.CourseLink, bs[n:])
	n += ord.String.Marshal(e.Instructor, bs[n:])
	n += lessonRefsMUS.Marshal(e.Lessons, bs[n:])
	n += vectorMUS.Marshal(e.Vector, bs[n:])
	n += timestampMUS.Marshal(e.InsertedAt, bs[n:])
	return n
}

func (catalogEntryMUS) Unmarshal(bs []byte) (e CatalogEntry, n int, err error) {
	e.Title, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return e, n, err
	}
	var n1 int
	e.CourseLink, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return e, n, err
	}
	e.Instructor, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return e, n, err
	}
	e.Lessons, n1, err = lessonRefsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return e, n, err
	}
	e.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return e, n, err
	}
	e.InsertedAt, n1, err = timestampMUS.Unmarshal(bs[n:])
	n += n1
	return e, n, err
}

func (catalogEntryMUS) Size(e CatalogEntry) (size int) {
	size = ord.String.Size(e.Title)
	size += ord.String.Size(e.CourseLink)
	size += ord.String.Size(e.Instructor)
	size += lessonRefsMUS.Size(e.Lessons)
	size += vectorMUS.Size(e.Vector)
	size += timestampMUS.Size(e.InsertedAt)
	return size
}

func (s catalogEntryMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

// ChunkMUS serializes Chunk values.
var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (chunkMUS) Marshal(c Chunk, bs []byte) (n int) {
	n = ord.String.Marshal(c.CourseTitle, bs)
	n += lessonNumberMUS.Marshal(c.LessonNumber, bs[n:])
	n += varint.Int.Marshal(c.SequenceIndex, bs[n:])
	n += ord.String.Marshal(c.Text, bs[n:])
	n += vectorMUS.Marshal(c.Vector, bs[n:])
	n += timestampMUS.Marshal(c.InsertedAt, bs[n:])
	return n
}

func (chunkMUS) Unmarshal(bs []byte) (c Chunk, n int, err error) {
	c.CourseTitle, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return c, n, err
	}
	var n1 int
	c.LessonNumber, n1, err = lessonNumberMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return c, n, err
	}
	c.SequenceIndex, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return c, n, err
	}
	c.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return c, n, err
	}
	c.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return c, n, err
	}
	c.InsertedAt, n1, err = timestampMUS.Unmarshal(bs[n:])
	n += n1
	return c, n, err
}

func (chunkMUS) Size(c Chunk) (size int) {
	size = ord.String.Size(c.CourseTitle)
	size += lessonNumberMUS.Size(c.LessonNumber)
	size += varint.Int.Size(c.SequenceIndex)
	size += ord.String.Size(c.Text)
	size += vectorMUS.Size(c.Vector)
	size += timestampMUS.Size(c.InsertedAt)
	return size
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}
