package queue

import "slices"

// PrintQueue is a min-heap of jobs ordered by (priority, arrival).
//
// The zero value is not usable; construct with New.
// PrintQueue is not safe for concurrent use, see Locked.
type PrintQueue struct {
	heap    []entry
	counter Counter
}

// New creates an empty queue whose counter starts at 0.
func New() *PrintQueue {
	return &PrintQueue{
		heap: make([]entry, 0, 16),
	}
}

// Insert adds a job to the queue.
//
// The job is stamped with the next seq number, appended at the end of the
// heap and sifted up until its parent is not larger.
func (q *PrintQueue) Insert(job Job) {
	q.heap = append(q.heap, entry{job: job, seq: q.counter.Next()})
	q.siftUp(len(q.heap) - 1)
}

// ExtractMin removes and returns the most urgent, earliest submitted job.
// Returns (Job{}, false) if the queue is empty; the queue is left untouched.
func (q *PrintQueue) ExtractMin() (Job, bool) {
	if len(q.heap) == 0 {
		return Job{}, false
	}

	root := q.heap[0].job
	last := len(q.heap) - 1
	q.heap[0] = q.heap[last]
	q.heap[last] = entry{}
	q.heap = q.heap[:last]

	if len(q.heap) > 0 {
		q.siftDown(0)
	}
	return root, true
}

// Peek returns the job ExtractMin would return, without removing it.
func (q *PrintQueue) Peek() (Job, bool) {
	if len(q.heap) == 0 {
		return Job{}, false
	}
	return q.heap[0].job, true
}

// Len returns the number of pending jobs.
func (q *PrintQueue) Len() int {
	return len(q.heap)
}

// SnapshotOrdered returns every pending job in extraction order.
//
// It sorts a copy of the heap, so neither the heap layout nor the counter
// changes. Calling it twice with no mutation in between yields equal slices.
func (q *PrintQueue) SnapshotOrdered() []Job {
	sorted := slices.Clone(q.heap)
	slices.SortFunc(sorted, entry.compare)

	jobs := make([]Job, len(sorted))
	for i, e := range sorted {
		jobs[i] = e.job
	}
	return jobs
}

func (q *PrintQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.heap[i].less(q.heap[parent]) {
			return
		}
		q.heap[i], q.heap[parent] = q.heap[parent], q.heap[i]
		i = parent
	}
}

// siftDown moves the entry at i down to its place. When both children are
// smaller the smaller one wins; equal children resolve to the left one.
func (q *PrintQueue) siftDown(i int) {
	n := len(q.heap)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2

		if left < n && q.heap[left].less(q.heap[smallest]) {
			smallest = left
		}
		if right < n && q.heap[right].less(q.heap[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}

		q.heap[i], q.heap[smallest] = q.heap[smallest], q.heap[i]
		i = smallest
	}
}
