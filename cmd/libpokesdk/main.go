// Command libpokesdk is the native shared library. Build it with
//
//	go build -buildmode=c-shared -o libpoke_sdk.so ./cmd/libpokesdk
//
// and add -tags jni to include the JNI entry points.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf16"
	"unsafe"

	pokesdk "github.com/pokesdk/poke-sdk"
	"github.com/pokesdk/poke-sdk/domain/entities"
	"github.com/pokesdk/poke-sdk/internal/boundary"
	"github.com/pokesdk/poke-sdk/wireformat"
)

var setupOnce sync.Once

// sdk returns the process-wide SDK and routes boundary diagnostics to its
// logger.
func sdk() *pokesdk.SDK {
	s := pokesdk.Default()
	setupOnce.Do(func() {
		boundary.SetLogger(s.Logger())
	})
	return s
}

// exportPokemon fetches id and returns the envelope in a boundary buffer.
func exportPokemon(s *pokesdk.SDK, id uint32) unsafe.Pointer {
	return boundary.Acquire(func() ([]byte, error) {
		return []byte(s.GetPokemonJSON(context.Background(), id)), nil
	})
}

// exportFailure returns a Failure envelope in a boundary buffer.
func exportFailure(message string) unsafe.Pointer {
	return boundary.Acquire(func() ([]byte, error) {
		return []byte(wireformat.EncodeOrFallback(entities.Failure(message))), nil
	})
}

// jniChars fetches id and returns the envelope as UTF-16 code units, the
// form NewString takes. The boundary buffer is released before returning. A
// negative id yields a Failure without a request; ok is false when no
// envelope could be produced.
func jniChars(s *pokesdk.SDK, id int32) (chars []uint16, ok bool) {
	var ptr unsafe.Pointer
	if id < 0 {
		ptr = exportFailure(negativeIDMessage(int64(id)))
	} else {
		ptr = exportPokemon(s, uint32(id))
	}
	if ptr == nil {
		return nil, false
	}
	defer boundary.Release(ptr)

	text := boundary.Copy(ptr)
	if text == "" {
		return nil, false
	}
	return utf16.Encode([]rune(text)), true
}

func negativeIDMessage(id int64) string {
	return fmt.Sprintf("invalid pokemon id %d: must not be negative", id)
}

// get_pokemon_json returns the envelope for id as a NUL-terminated string
// that the caller must pass to free_string. It returns NULL only when no
// envelope could be produced.
//
//export get_pokemon_json
func get_pokemon_json(id C.uint) *C.char {
	return (*C.char)(exportPokemon(sdk(), uint32(id)))
}

// free_string releases a string returned by get_pokemon_json.
//
//export free_string
func free_string(ptr *C.char) {
	boundary.Release(unsafe.Pointer(ptr))
}

func main() {}
