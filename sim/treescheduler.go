package sim

import (
	"sync"

	"github.com/google/btree"
)

// Branching factor of the B-tree behind TreeScheduler.
const treeSchedulerDegree = 32

func init() {
	RegisterScheduler("tree", func() Scheduler { return NewTreeScheduler() })
}

// A TreeScheduler keeps pending events in a B-tree ordered by
// (time, sequence). Insert, RemoveEarliest, and Remove are all O(log n),
// which makes it the default strategy for large simulations.
type TreeScheduler struct {
	lock sync.Mutex
	tree *btree.BTree
}

type treeSchedulerItem struct {
	evt *Event
}

func (i treeSchedulerItem) Less(than btree.Item) bool {
	return i.evt.before(than.(treeSchedulerItem).evt)
}

// NewTreeScheduler creates an empty TreeScheduler.
func NewTreeScheduler() *TreeScheduler {
	return &TreeScheduler{
		tree: btree.New(treeSchedulerDegree),
	}
}

// Insert adds an event to the tree.
func (s *TreeScheduler) Insert(evt *Event) {
	s.lock.Lock()
	s.tree.ReplaceOrInsert(treeSchedulerItem{evt: evt})
	s.lock.Unlock()
}

// PeekEarliest returns the event with the smallest (time, sequence) key
// without removing it.
func (s *TreeScheduler) PeekEarliest() *Event {
	s.lock.Lock()
	defer s.lock.Unlock()

	item := s.tree.Min()
	if item == nil {
		return nil
	}

	return item.(treeSchedulerItem).evt
}

// RemoveEarliest removes and returns the event with the smallest
// (time, sequence) key.
func (s *TreeScheduler) RemoveEarliest() *Event {
	s.lock.Lock()
	defer s.lock.Unlock()

	item := s.tree.DeleteMin()
	if item == nil {
		return nil
	}

	return item.(treeSchedulerItem).evt
}

// Remove deletes an event by identity. Sequence numbers are unique, so the
// (time, sequence) key always addresses exactly one tree entry.
func (s *TreeScheduler) Remove(evt *Event) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.tree.Delete(treeSchedulerItem{evt: evt}) != nil
}

// IsEmpty reports whether no event is pending.
func (s *TreeScheduler) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of pending events.
func (s *TreeScheduler) Len() int {
	s.lock.Lock()
	l := s.tree.Len()
	s.lock.Unlock()

	return l
}
