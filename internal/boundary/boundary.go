// Package boundary owns the C heap buffers handed to foreign callers. Each
// buffer is created by Acquire and must be destroyed by exactly one Release.
package boundary

/*
#include <stdlib.h>
*/
import "C"

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"unsafe"

	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
)

var errEmbeddedNUL = errors.New("payload contains a NUL byte")

var (
	mu        sync.Mutex
	live      = make(map[unsafe.Pointer]int)
	liveBytes int

	logger atomic.Pointer[slog.Logger]
)

// SetLogger sets the logger used for boundary diagnostics. Nil restores
// slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func log() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Acquire runs produce and copies its output into a NUL-terminated C buffer
// owned by the caller. It returns nil only when no payload could be
// produced: produce failed or panicked, the payload contains a NUL byte, or
// allocation failed.
func Acquire(produce func() ([]byte, error)) (ptr unsafe.Pointer) {
	defer func() {
		if r := recover(); r != nil {
			log().Error("boundary: payload producer panicked", slog.Any("error", sdkerrors.FromPanic("acquire", r)))
			ptr = nil
		}
	}()

	data, err := produce()
	if err != nil {
		log().Error("boundary: no payload produced", slog.Any("error", err))
		return nil
	}
	if bytes.IndexByte(data, 0) >= 0 {
		log().Error("boundary: payload rejected", slog.Any("error", errEmbeddedNUL))
		return nil
	}

	size := len(data) + 1
	p := C.malloc(C.size_t(size))
	if p == nil {
		log().Error("boundary: allocation failed", slog.Int("size", size))
		return nil
	}
	buf := unsafe.Slice((*byte)(p), size)
	copy(buf, data)
	buf[len(data)] = 0

	mu.Lock()
	live[p] = size
	liveBytes += size
	mu.Unlock()
	return p
}

// Release frees a buffer returned by Acquire and reports whether anything was
// freed. Nil is a no-op. A pointer this package does not own, including one
// already released, is logged and ignored.
func Release(ptr unsafe.Pointer) bool {
	if ptr == nil {
		return false
	}

	mu.Lock()
	size, ok := live[ptr]
	if ok {
		delete(live, ptr)
		liveBytes -= size
	}
	mu.Unlock()

	if !ok {
		log().Warn("boundary: release of unknown or already released buffer",
			slog.String("ptr", formatPtr(ptr)))
		return false
	}
	C.free(ptr)
	return true
}

// Copy returns the contents of a live buffer as a Go string, or "" if ptr is
// not live.
func Copy(ptr unsafe.Pointer) string {
	mu.Lock()
	_, ok := live[ptr]
	mu.Unlock()
	if !ok {
		return ""
	}
	return C.GoString((*C.char)(ptr))
}

// Stats reports the number of outstanding buffers and their total size
// including terminators.
func Stats() (buffers, size int) {
	mu.Lock()
	defer mu.Unlock()
	return len(live), liveBytes
}
