// Package queue implements the printq priority queue engine.
//
// The engine is an array-backed binary min-heap of entries keyed on
// (priority, seq). Lower priority values are more urgent. The seq number is
// handed out by a per-queue Counter at insertion time, so jobs with equal
// priority leave the queue in the order they arrived.
//
// Index arithmetic:
//
//	parent(i) = (i-1)/2
//	left(i)   = 2i+1
//	right(i)  = 2i+2
//
// Operations:
//
//   - Insert: append, then sift up while strictly smaller than the parent
//   - ExtractMin: take the root, move the last entry to the root, sift down
//   - SnapshotOrdered: sorted copy, the heap is not touched
//   - RenderTree: pre-order drawing of the physical heap layout
//
// PrintQueue does no locking. Hosts that share a queue between goroutines
// wrap it in Locked.
package queue
