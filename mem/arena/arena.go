package arena

import (
	"fmt"
	"iter"
	"unsafe"
)

const (
	// None is the "no slot" index: an absent link, an empty list's head or
	// tail, or the result of a query on an invalid id.
	None = -1

	// Pool is the reserved default list.
	Pool = 0
)

// slot carries the link metadata of one payload.
type slot struct {
	list int // owning list id
	prev int
	next int
}

// list is one named doubly-linked list.
type list struct {
	head  int
	tail  int
	count int
}

// Arena is a fixed-capacity multi-list arena. See the package documentation.
type Arena[T any] struct {
	data  []T
	slots []slot
	lists []list // len == number of application lists + 1 (pool)
}

// New creates an arena of capacity slots and lists application-defined
// lists in addition to Pool. All slots start in Pool in index order.
func New[T any](capacity, lists int) (*Arena[T], error) {
	if capacity <= 0 || lists < 0 {
		return nil, fmt.Errorf("%w (capacity=%d lists=%d)", ErrInvalidArgument, capacity, lists)
	}
	a := &Arena[T]{
		data:  make([]T, capacity),
		slots: make([]slot, capacity),
		lists: make([]list, lists+1),
	}
	a.Reset()
	return a, nil
}

// Reset relinks every slot into Pool in index order and empties all other
// lists. Payload values are left untouched.
func (a *Arena[T]) Reset() {
	for i := range a.lists {
		a.lists[i] = list{head: None, tail: None}
	}
	n := len(a.slots)
	for i := range n {
		a.slots[i] = slot{list: Pool, prev: i - 1, next: i + 1}
	}
	a.slots[n-1].next = None
	a.lists[Pool] = list{head: 0, tail: n - 1, count: n}
}

// Capacity returns the number of slots.
func (a *Arena[T]) Capacity() int { return len(a.slots) }

// Lists returns the number of application lists (Pool excluded).
func (a *Arena[T]) Lists() int { return len(a.lists) - 1 }

// Move detaches the head of src and appends it to the tail of dst,
// returning the moved slot id. Moving a list onto itself rotates its head
// to the tail.
func (a *Arena[T]) Move(src, dst int) (int, error) {
	if !a.validList(src) || !a.validList(dst) {
		return None, fmt.Errorf("%w (src=%d dst=%d)", ErrBadList, src, dst)
	}
	id := a.lists[src].head
	if id == None {
		return None, fmt.Errorf("%w (list=%d)", ErrEmpty, src)
	}
	a.unlink(id)
	a.linkTail(dst, id)
	return id, nil
}

// Append takes a slot from Pool and appends it to l.
func (a *Arena[T]) Append(l int) (int, error) { return a.Move(Pool, l) }

// Remove returns the head of l to Pool.
func (a *Arena[T]) Remove(l int) (int, error) { return a.Move(l, Pool) }

// Swap exchanges the positions of slots x and y, which must belong to the
// same list. Every other member keeps its relative order.
func (a *Arena[T]) Swap(x, y int) error {
	if err := a.sameList(x, y); err != nil {
		return err
	}
	switch {
	case x == y:
		return nil
	case a.slots[x].next == y:
		a.unlink(x)
		a.linkAfter(x, y)
	case a.slots[y].next == x:
		a.unlink(y)
		a.linkAfter(y, x)
	default:
		xNext, l := a.slots[x].next, a.slots[x].list
		a.unlink(x)
		a.linkBefore(x, y)
		a.unlink(y)
		if xNext == None {
			a.linkTail(l, y)
		} else {
			a.linkBefore(y, xNext)
		}
	}
	return nil
}

// MoveBefore relocates src to be the immediate predecessor of dst.
func (a *Arena[T]) MoveBefore(src, dst int) error {
	if err := a.sameList(src, dst); err != nil {
		return err
	}
	if src == dst || a.slots[src].next == dst {
		return nil
	}
	a.unlink(src)
	a.linkBefore(src, dst)
	return nil
}

// MoveAfter relocates src to be the immediate successor of dst.
func (a *Arena[T]) MoveAfter(src, dst int) error {
	if err := a.sameList(src, dst); err != nil {
		return err
	}
	if src == dst || a.slots[src].prev == dst {
		return nil
	}
	a.unlink(src)
	a.linkAfter(src, dst)
	return nil
}

// Get returns the payload of slot id.
func (a *Arena[T]) Get(id int) (*T, bool) {
	if !a.validSlot(id) {
		return nil, false
	}
	return &a.data[id], true
}

// IndexOf maps a payload pointer obtained from Get or All back to its slot.
// Pointers that do not address one of this arena's payloads report false.
func (a *Arena[T]) IndexOf(p *T) (int, bool) {
	size := unsafe.Sizeof(*new(T))
	if p == nil || size == 0 {
		return None, false
	}
	base := uintptr(unsafe.Pointer(&a.data[0]))
	addr := uintptr(unsafe.Pointer(p))
	if addr < base {
		return None, false
	}
	idx := (addr - base) / size
	if idx >= uintptr(len(a.data)) || &a.data[idx] != p {
		return None, false
	}
	return int(idx), true
}

// All yields the members of l from head to tail. Each step follows the
// current slot's link after the loop body runs, so moving other slots during
// iteration is safe but moving the current slot out of l ends the walk
// wherever that slot landed.
func (a *Arena[T]) All(l int) iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		if !a.validList(l) {
			return
		}
		for id := a.lists[l].head; id != None; id = a.slots[id].next {
			if !yield(id, &a.data[id]) {
				return
			}
		}
	}
}

// Count returns the number of members of l, or -1 for an invalid list.
func (a *Arena[T]) Count(l int) int {
	if !a.validList(l) {
		return -1
	}
	return a.lists[l].count
}

// Head returns the first member of l, or None.
func (a *Arena[T]) Head(l int) int {
	if !a.validList(l) {
		return None
	}
	return a.lists[l].head
}

// Tail returns the last member of l, or None.
func (a *Arena[T]) Tail(l int) int {
	if !a.validList(l) {
		return None
	}
	return a.lists[l].tail
}

// ListOf returns the list that slot id belongs to, or None.
func (a *Arena[T]) ListOf(id int) int {
	if !a.validSlot(id) {
		return None
	}
	return a.slots[id].list
}

// Next returns the successor of id in its list, or None.
func (a *Arena[T]) Next(id int) int {
	if !a.validSlot(id) {
		return None
	}
	return a.slots[id].next
}

// Prev returns the predecessor of id in its list, or None.
func (a *Arena[T]) Prev(id int) int {
	if !a.validSlot(id) {
		return None
	}
	return a.slots[id].prev
}

func (a *Arena[T]) validSlot(id int) bool { return id >= 0 && id < len(a.slots) }

func (a *Arena[T]) validList(l int) bool { return l >= 0 && l < len(a.lists) }

func (a *Arena[T]) sameList(x, y int) error {
	if !a.validSlot(x) || !a.validSlot(y) {
		return fmt.Errorf("%w (x=%d y=%d)", ErrBadSlot, x, y)
	}
	if a.slots[x].list != a.slots[y].list {
		return fmt.Errorf("%w (slot %d in %d, slot %d in %d)",
			ErrListMismatch, x, a.slots[x].list, y, a.slots[y].list)
	}
	return nil
}

// unlink detaches id from its list. The slot's own links are left stale.
func (a *Arena[T]) unlink(id int) {
	s := &a.slots[id]
	l := &a.lists[s.list]
	if s.prev == None {
		l.head = s.next
	} else {
		a.slots[s.prev].next = s.next
	}
	if s.next == None {
		l.tail = s.prev
	} else {
		a.slots[s.next].prev = s.prev
	}
	l.count--
}

func (a *Arena[T]) linkTail(li, id int) {
	l := &a.lists[li]
	a.slots[id] = slot{list: li, prev: l.tail, next: None}
	if l.tail == None {
		l.head = id
	} else {
		a.slots[l.tail].next = id
	}
	l.tail = id
	l.count++
}

// linkBefore inserts detached id immediately before at, in at's list.
func (a *Arena[T]) linkBefore(id, at int) {
	li := a.slots[at].list
	l := &a.lists[li]
	prev := a.slots[at].prev
	a.slots[id] = slot{list: li, prev: prev, next: at}
	a.slots[at].prev = id
	if prev == None {
		l.head = id
	} else {
		a.slots[prev].next = id
	}
	l.count++
}

// linkAfter inserts detached id immediately after at, in at's list.
func (a *Arena[T]) linkAfter(id, at int) {
	li := a.slots[at].list
	l := &a.lists[li]
	next := a.slots[at].next
	a.slots[id] = slot{list: li, prev: at, next: next}
	a.slots[at].next = id
	if next == None {
		l.tail = id
	} else {
		a.slots[next].prev = id
	}
	l.count++
}
