package queue

import "strings"

// Connectors used by RenderTree.
const (
	branchMid  = "├── "
	branchLast = "└── "
	indentBar  = "│   "
	indentNone = "    "

	labelLeft  = "(Esq) "
	labelRight = "(Dir) "
)

// RenderTree draws the heap as a binary tree in its physical layout.
//
// The root comes first, then the left subtree, then the right subtree. Each
// node is shown as "name (P:priority)"; children are tagged (Esq) for left
// and (Dir) for right. An empty queue renders as "".
//
// The drawing follows heap order, not extraction order; use SnapshotOrdered
// for the latter.
//
// Example for a heap holding B(1), A(2), C(1):
//
//	B (P:1)
//	├── (Esq) A (P:2)
//	└── (Dir) C (P:1)
func (q *PrintQueue) RenderTree() string {
	if len(q.heap) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(q.heap[0].job.String())
	sb.WriteByte('\n')
	q.renderChildren(&sb, 0, "")
	return sb.String()
}

// renderChildren writes the subtrees below index i, each line prefixed by
// the indentation accumulated from its ancestors.
func (q *PrintQueue) renderChildren(sb *strings.Builder, i int, prefix string) {
	left, right := 2*i+1, 2*i+2
	hasLeft := left < len(q.heap)
	hasRight := right < len(q.heap)

	if hasLeft {
		q.renderNode(sb, left, prefix, labelLeft, !hasRight)
	}
	if hasRight {
		q.renderNode(sb, right, prefix, labelRight, true)
	}
}

func (q *PrintQueue) renderNode(sb *strings.Builder, i int, prefix, label string, last bool) {
	branch, indent := branchMid, indentBar
	if last {
		branch, indent = branchLast, indentNone
	}

	sb.WriteString(prefix)
	sb.WriteString(branch)
	sb.WriteString(label)
	sb.WriteString(q.heap[i].job.String())
	sb.WriteByte('\n')

	q.renderChildren(sb, i, prefix+indent)
}
