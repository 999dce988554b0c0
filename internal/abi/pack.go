// Package abi manages the guest side of the wasip1 binding: allocations in
// linear memory that the host reads or writes, and the packed (ptr<<32)|len
// references exchanged across the boundary.
package abi

import "fmt"

// PackPtrLen packs a pointer into the high 32 bits and a length into the low
// 32 bits. A null pointer with a non-zero length is rejected.
func PackPtrLen(ptr, length uint32) (uint64, error) {
	if ptr == 0 && length > 0 {
		return 0, fmt.Errorf("abi: null pointer with non-zero length (%d)", length)
	}
	return uint64(ptr)<<32 | uint64(length), nil
}

// UnpackPtrLen is the inverse of PackPtrLen.
func UnpackPtrLen(packed uint64) (ptr, length uint32, err error) {
	ptr = uint32(packed >> 32)
	length = uint32(packed)
	if ptr == 0 && length > 0 {
		return 0, 0, fmt.Errorf("abi: null pointer with non-zero length (%d)", length)
	}
	return ptr, length, nil
}
