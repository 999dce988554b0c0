//go:build wasip1

package abi

import (
	"unsafe"
)

var pinned = NewTable(MaxTotalAllocations)

// allocate reserves size bytes of linear memory for the host to write into.
// It returns 0 when size is 0 or the allocation limit would be exceeded.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}
	buf := make([]byte, size)
	//nolint:gosec // G103: linear memory addresses fit in 32 bits under wasm
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	if err := pinned.Pin(ptr, buf); err != nil {
		return 0
	}
	return ptr
}

// deallocate releases memory returned by allocate. The size argument is
// ignored in favour of the recorded length.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, _ uint32) {
	pinned.Unpin(ptr)
}

// PtrFromBytes copies data into a fresh allocation and returns its packed
// reference. It returns 0 for empty data or when allocation fails.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	ptr := allocate(uint32(len(data)))
	if ptr == 0 {
		return 0
	}
	buf, _ := pinned.Lookup(ptr)
	copy(buf, data)
	packed, err := PackPtrLen(ptr, uint32(len(data)))
	if err != nil {
		pinned.Unpin(ptr)
		return 0
	}
	return packed
}

// BytesFromPtr copies the bytes referenced by packed out of linear memory.
func BytesFromPtr(packed uint64) []byte {
	ptr, length, err := UnpackPtrLen(packed)
	if err != nil || ptr == 0 || length == 0 {
		return nil
	}
	//nolint:gosec // G103: valid unsafe.Pointer use for linear memory access
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	out := make([]byte, length)
	copy(out, src)
	return out
}

// DeallocatePacked releases the allocation behind a packed reference.
func DeallocatePacked(packed uint64) {
	ptr, _, err := UnpackPtrLen(packed)
	if err != nil || ptr == 0 {
		return
	}
	pinned.Unpin(ptr)
}
