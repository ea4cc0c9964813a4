// Package list implements the intrusive doubly-linked list that keeps cache
// entries in insertion order.
//
// The list owns no memory beyond the head/tail pointers: entries are linked
// in place, so unlinking an entry the caller already holds is O(1). Newest
// entries sit at the front, oldest at the back. The eviction scan walks an
// entry's Prev chain from back to front, which is why Entry exposes its
// neighbors read-only.
package list

// Entry is a single cache slot: a key/value pair plus the bookkeeping the
// eviction scan needs. Key and Visited are mutated only by the owning cache;
// Value may be overwritten in place on update.
type Entry[K comparable, V any] struct {
	Key     K
	Value   V
	Visited bool

	prev *Entry[K, V]
	next *Entry[K, V]
}

// Prev returns the neighbor toward the front (the next-newer entry), or nil
// when e is the front.
func (e *Entry[K, V]) Prev() *Entry[K, V] {
	return e.prev
}

// Next returns the neighbor toward the back (the next-older entry), or nil
// when e is the back.
func (e *Entry[K, V]) Next() *Entry[K, V] {
	return e.next
}

// List is a generic intrusive doubly-linked list with O(1) push-front and
// remove. The zero value is an empty list ready for use.
type List[K comparable, V any] struct {
	front *Entry[K, V]
	back  *Entry[K, V]
	size  int
}

// Len returns the number of entries in the list.
func (l *List[K, V]) Len() int {
	return l.size
}

// Front returns the newest entry, or nil when the list is empty.
func (l *List[K, V]) Front() *Entry[K, V] {
	return l.front
}

// Back returns the oldest entry, or nil when the list is empty.
func (l *List[K, V]) Back() *Entry[K, V] {
	return l.back
}

// PushFront links e at the front of the list. e must not currently belong to
// any list.
func (l *List[K, V]) PushFront(e *Entry[K, V]) {
	e.prev = nil
	e.next = l.front
	if l.front != nil {
		l.front.prev = e
	}
	l.front = e
	if l.back == nil {
		l.back = e
	}
	l.size++
}

// Remove unlinks e from the list. The caller must ensure e belongs to this
// list. e's links are cleared so it can be relinked later.
func (l *List[K, V]) Remove(e *Entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.front = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.back = e.prev
	}
	e.prev = nil
	e.next = nil
	l.size--
}

// Clear drops every entry. Entries still held by the caller keep their stale
// links; they must not be pushed back without relinking.
func (l *List[K, V]) Clear() {
	l.front = nil
	l.back = nil
	l.size = 0
}
