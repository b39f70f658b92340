package codegen

import "strconv"

// labelAllocator hands out a monotonically increasing integer id per call;
// compound constructs derive suffixed labels (".L<id>_else", ".L<id>_end")
// from a single base id to avoid collisions (SPEC_FULL.md §4.5).
type labelAllocator struct {
	next int
}

func (l *labelAllocator) allocate() int {
	id := l.next
	l.next++
	return id
}

func labelName(prefix string, id int) string {
	return prefix + strconv.Itoa(id)
}
