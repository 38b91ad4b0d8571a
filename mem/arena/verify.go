package arena

import "fmt"

// CheckInvariants walks every list and verifies link symmetry, membership
// tags, per-list counts, and that the counts sum to the arena's capacity.
// It costs O(capacity) and is meant for tests and diagnostics.
func (a *Arena[T]) CheckInvariants() error {
	seen := make([]bool, len(a.slots))
	total := 0
	for li, l := range a.lists {
		n := 0
		prev := None
		for id := l.head; id != None; id = a.slots[id].next {
			if !a.validSlot(id) {
				return fmt.Errorf("list %d: link to invalid slot %d", li, id)
			}
			if seen[id] {
				return fmt.Errorf("list %d: slot %d reached twice", li, id)
			}
			seen[id] = true
			s := a.slots[id]
			if s.list != li {
				return fmt.Errorf("list %d: slot %d tagged with list %d", li, id, s.list)
			}
			if s.prev != prev {
				return fmt.Errorf("list %d: slot %d prev=%d, want %d", li, id, s.prev, prev)
			}
			prev = id
			n++
		}
		if prev != l.tail {
			return fmt.Errorf("list %d: tail=%d, walk ended at %d", li, l.tail, prev)
		}
		if n != l.count {
			return fmt.Errorf("list %d: count=%d, walked %d", li, l.count, n)
		}
		total += n
	}
	if total != len(a.slots) {
		return fmt.Errorf("lists hold %d slots, capacity is %d", total, len(a.slots))
	}
	return nil
}
