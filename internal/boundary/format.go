package boundary

import (
	"strconv"
	"unsafe"
)

func formatPtr(p unsafe.Pointer) string {
	return "0x" + strconv.FormatUint(uint64(uintptr(p)), 16)
}
