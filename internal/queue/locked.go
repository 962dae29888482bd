package queue

import "sync"

// Locked serializes access to a PrintQueue with a single mutex.
//
// The engine mutates its heap in place on Insert and ExtractMin, so every
// operation, including the read-only views, takes the same exclusive lock.
type Locked struct {
	mu sync.Mutex
	q  *PrintQueue
}

// NewLocked wraps q. Callers must not use q directly afterwards.
func NewLocked(q *PrintQueue) *Locked {
	return &Locked{q: q}
}

func (l *Locked) Insert(job Job) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.q.Insert(job)
}

func (l *Locked) ExtractMin() (Job, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.ExtractMin()
}

func (l *Locked) Peek() (Job, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.Peek()
}

func (l *Locked) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.Len()
}

func (l *Locked) SnapshotOrdered() []Job {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.SnapshotOrdered()
}

func (l *Locked) RenderTree() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.RenderTree()
}
