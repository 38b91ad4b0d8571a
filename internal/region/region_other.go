//go:build !unix

// Package region provides the backing byte storage for allocator pools.
package region

import "fmt"

// Map allocates size zeroed bytes on the Go heap when anonymous mappings are
// not available.
func Map(size int) ([]byte, func() error, error) {
	if size < 0 {
		return nil, nil, fmt.Errorf("region: negative size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
