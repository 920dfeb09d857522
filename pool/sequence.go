package pool

import (
	"container/list"
	"iter"
)

type category int

const (
	randomAccess category = iota
	forward
	input
)

func (c category) String() string {
	switch c {
	case randomAccess:
		return "random-access"
	case forward:
		return "forward"
	case input:
		return "input"
	default:
		return "unknown"
	}
}

// ForwardIterator is a multi-pass cursor over a sequence. Clone returns an
// independent cursor at the same position; advancing one never moves the
// other. Value and Advance are only called while Valid reports true.
type ForwardIterator[E any] interface {
	Valid() bool
	Value() E
	Advance()
	Clone() ForwardIterator[E]
}

// Sequence describes a range of elements together with how it can be
// traversed, which decides how ForEachSeq splits it into tasks:
//
//   - random access (RandomAccess, FromSlice): chunks by index arithmetic.
//   - forward (Forward, FromList): one driving cursor hands a clone of itself
//     to each chunk, then skips over the chunk.
//   - input (Input, FromChan): single pass, one task per element.
//
// The zero Sequence is an empty random-access range.
type Sequence[E any] struct {
	cat    category
	length int
	at     func(i int) E
	first  ForwardIterator[E]
	seq    iter.Seq[E]
}

// RandomAccess describes length elements addressed by at(0) .. at(length-1).
// at is called concurrently from several workers.
func RandomAccess[E any](length int, at func(i int) E) Sequence[E] {
	return Sequence[E]{cat: randomAccess, length: max(length, 0), at: at}
}

// FromSlice describes the elements of s by value.
func FromSlice[E any](s []E) Sequence[E] {
	return RandomAccess(len(s), func(i int) E { return s[i] })
}

// Forward describes the elements from first until the cursor is no longer
// valid.
func Forward[E any](first ForwardIterator[E]) Sequence[E] {
	return Sequence[E]{cat: forward, first: first}
}

// FromList describes the values of a container/list. Every value must hold
// an E.
func FromList[E any](l *list.List) Sequence[E] {
	if l == nil {
		return Sequence[E]{}
	}
	return Forward[E](&listIterator[E]{elem: l.Front()})
}

// Input describes a single-pass sequence. seq is ranged over exactly once,
// on the goroutine calling ForEachSeq.
func Input[E any](seq iter.Seq[E]) Sequence[E] {
	return Sequence[E]{cat: input, seq: seq}
}

// FromChan describes the values received from ch until it is closed.
func FromChan[E any](ch <-chan E) Sequence[E] {
	return Input(func(yield func(E) bool) {
		for v := range ch {
			if !yield(v) {
				return
			}
		}
	})
}

type listIterator[E any] struct {
	elem *list.Element
}

func (it *listIterator[E]) Valid() bool {
	return it.elem != nil
}

func (it *listIterator[E]) Value() E {
	return it.elem.Value.(E)
}

func (it *listIterator[E]) Advance() {
	if it.elem != nil {
		it.elem = it.elem.Next()
	}
}

func (it *listIterator[E]) Clone() ForwardIterator[E] {
	return &listIterator[E]{elem: it.elem}
}
