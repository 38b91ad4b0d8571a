// Package rbtree implements an order-statistics left-leaning red-black tree.
//
// A Tree maps keys to values under a caller-supplied three-way comparison
// and keeps every node's subtree size, so rank queries run in O(log n)
// alongside the usual ordered lookups:
//
//	t := rbtree.New[int, string](cmp.Compare[int], &alloc.Heap{})
//	_ = t.Insert(5, "five")
//	r, _ := t.Rank(5)        // 1-indexed position in key order
//	k, v, ok := t.ByRank(r)  // and back
//
// # Node storage
//
// Every node is accounted against an alloc.Allocator: Insert reserves
// NodeSize bytes before touching the tree and Remove hands them back. A
// capability that runs out (a small Segregated allocator or a Heap with a
// Limit) makes Insert fail with ErrOutOfMemory and leaves the tree as it
// was. The nodes themselves are ordinary Go values; the capability only
// meters them.
//
// # Duplicates
//
// Inserting a key that is already present is a no-op: the existing value is
// kept, the new one is discarded, and the reserved storage is returned.
// Callers wanting upsert semantics should Remove first.
//
// # Concurrency
//
// A Tree is not safe for concurrent use. Callers serialize access.
package rbtree
