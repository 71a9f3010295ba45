package sim

import (
	"container/list"
	"sync"
)

func init() {
	RegisterScheduler("list", func() Scheduler { return NewListScheduler() })
}

// A ListScheduler keeps pending events in a sorted linked list, inserting
// by scanning from the front. Insert is O(n) and pop is O(1), which suits
// simulations with short queues. It also serves as the straightforward
// reference when checking the other strategies.
type ListScheduler struct {
	lock sync.RWMutex
	l    *list.List
}

// NewListScheduler creates an empty ListScheduler.
func NewListScheduler() *ListScheduler {
	return &ListScheduler{
		l: list.New(),
	}
}

// Insert adds an event before the first pending event it precedes. Equal
// times keep insertion order because sequence numbers only grow.
func (s *ListScheduler) Insert(evt *Event) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for ele := s.l.Front(); ele != nil; ele = ele.Next() {
		if evt.before(ele.Value.(*Event)) {
			s.l.InsertBefore(evt, ele)
			return
		}
	}

	s.l.PushBack(evt)
}

// PeekEarliest returns the event at the front of the list without removing
// it.
func (s *ListScheduler) PeekEarliest() *Event {
	s.lock.RLock()
	defer s.lock.RUnlock()

	front := s.l.Front()
	if front == nil {
		return nil
	}

	return front.Value.(*Event)
}

// RemoveEarliest removes and returns the event at the front of the list.
func (s *ListScheduler) RemoveEarliest() *Event {
	s.lock.Lock()
	defer s.lock.Unlock()

	front := s.l.Front()
	if front == nil {
		return nil
	}

	return s.l.Remove(front).(*Event)
}

// Remove deletes an event by identity, scanning for it.
func (s *ListScheduler) Remove(evt *Event) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	for ele := s.l.Front(); ele != nil; ele = ele.Next() {
		if ele.Value.(*Event) == evt {
			s.l.Remove(ele)
			return true
		}
	}

	return false
}

// IsEmpty reports whether no event is pending.
func (s *ListScheduler) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of pending events.
func (s *ListScheduler) Len() int {
	s.lock.RLock()
	l := s.l.Len()
	s.lock.RUnlock()

	return l
}
