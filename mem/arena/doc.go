// Package arena provides a fixed-capacity array of slots partitioned across
// named doubly-linked lists.
//
// # Overview
//
// An Arena[T] owns capacity payload values of type T. Every slot is always a
// member of exactly one of lists+1 lists. List 0 (Pool) is the reserved
// default list and initially holds every slot in index order; lists 1..lists
// are application-defined states. Slots are never created or destroyed after
// New, only relinked, so every transition is O(1) and allocation-free:
//
//   - Move(src, dst): head of src to tail of dst
//   - Append(l) / Remove(l): take from / return to the pool
//   - Swap(a, b): exchange two members of the same list
//   - MoveBefore / MoveAfter: reposition within a list
//
// # Usage Example
//
//	a, err := arena.New[job](1024, 2) // pool + "queued" + "running"
//	if err != nil {
//	    return err
//	}
//	id, err := a.Append(queued)       // pool -> queued
//	j, _ := a.Get(id)
//	j.name = "flush"
//	_, err = a.Move(queued, running)  // oldest queued job starts
//
//	for id, j := range a.All(running) {
//	    ...
//	}
//
// # Capacity
//
// There is no per-list capacity: any single list may hold every slot of the
// arena. The only bound is the arena's total capacity.
//
// # Thread Safety
//
// Arena instances are not thread-safe. Callers must synchronize access
// externally.
package arena
