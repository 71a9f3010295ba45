package sim

import (
	"container/heap"
	"sync"
)

func init() {
	RegisterScheduler("heap", func() Scheduler { return NewHeapScheduler() })
}

// A HeapScheduler keeps pending events in a binary heap. The heap position
// of every event is tracked on the way, so Remove runs in O(log n) rather
// than scanning the slice.
type HeapScheduler struct {
	lock sync.Mutex
	h    eventHeap
}

// NewHeapScheduler creates an empty HeapScheduler.
func NewHeapScheduler() *HeapScheduler {
	s := &HeapScheduler{
		h: eventHeap{
			events: make([]*Event, 0),
			pos:    make(map[*Event]int),
		},
	}
	heap.Init(&s.h)

	return s
}

// Insert adds an event to the heap.
func (s *HeapScheduler) Insert(evt *Event) {
	s.lock.Lock()
	heap.Push(&s.h, evt)
	s.lock.Unlock()
}

// PeekEarliest returns the event with the smallest (time, sequence) key
// without removing it.
func (s *HeapScheduler) PeekEarliest() *Event {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.h.events) == 0 {
		return nil
	}

	return s.h.events[0]
}

// RemoveEarliest removes and returns the event with the smallest
// (time, sequence) key.
func (s *HeapScheduler) RemoveEarliest() *Event {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.h.events) == 0 {
		return nil
	}

	return heap.Pop(&s.h).(*Event)
}

// Remove deletes an event by identity using its tracked heap position.
func (s *HeapScheduler) Remove(evt *Event) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	i, ok := s.h.pos[evt]
	if !ok {
		return false
	}

	heap.Remove(&s.h, i)

	return true
}

// IsEmpty reports whether no event is pending.
func (s *HeapScheduler) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of pending events.
func (s *HeapScheduler) Len() int {
	s.lock.Lock()
	l := len(s.h.events)
	s.lock.Unlock()

	return l
}

type eventHeap struct {
	events []*Event
	pos    map[*Event]int
}

// Len returns the length of the event heap.
func (h eventHeap) Len() int {
	return len(h.events)
}

// Less determines the order between two events. Less returns true if the
// i-th event happens before the j-th event.
func (h eventHeap) Less(i, j int) bool {
	return h.events[i].before(h.events[j])
}

// Swap changes the position of two events in the heap and keeps the
// position index in sync.
func (h eventHeap) Swap(i, j int) {
	h.events[i], h.events[j] = h.events[j], h.events[i]
	h.pos[h.events[i]] = i
	h.pos[h.events[j]] = j
}

// Push adds an event to the end of the heap slice.
func (h *eventHeap) Push(x interface{}) {
	evt := x.(*Event)
	h.pos[evt] = len(h.events)
	h.events = append(h.events, evt)
}

// Pop removes the event at the end of the heap slice.
func (h *eventHeap) Pop() interface{} {
	old := h.events
	n := len(old)
	evt := old[n-1]
	h.events = old[0 : n-1]
	delete(h.pos, evt)

	return evt
}
