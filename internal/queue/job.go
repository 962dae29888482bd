package queue

import "fmt"

// Job is a named unit of work. Lower Priority values are more urgent.
// Jobs carry no identity beyond their fields; duplicates are distinct
// submissions.
type Job struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// String renders the job the way the tree view labels nodes.
func (j Job) String() string {
	return fmt.Sprintf("%s (P:%d)", j.Name, j.Priority)
}

// entry pairs a job with the seq number it was inserted under.
type entry struct {
	job Job
	seq int64
}

// less orders entries by (priority, seq).
func (e entry) less(o entry) bool {
	if e.job.Priority != o.job.Priority {
		return e.job.Priority < o.job.Priority
	}
	return e.seq < o.seq
}

// compare is the three-way form of less, for sorting.
func (e entry) compare(o entry) int {
	switch {
	case e.less(o):
		return -1
	case o.less(e):
		return 1
	default:
		return 0
	}
}
