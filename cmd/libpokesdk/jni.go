//go:build jni

package main

/*
#include <jni.h>
#include "jni_bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/pokesdk/poke-sdk/internal/boundary"
)

// The natives are bound for com.example.pokesdk.PokemonSDK and for a
// PokeSDK class in the default package:
//
//	public static native String getPokemonJson(int id);
//	public static native void freeString(long ptr);

//export Java_com_example_pokesdk_PokemonSDK_getPokemonJson
func Java_com_example_pokesdk_PokemonSDK_getPokemonJson(env *C.JNIEnv, _ C.jclass, id C.jint) C.jstring {
	return pokemonJString(env, id)
}

//export Java_com_example_pokesdk_PokemonSDK_freeString
func Java_com_example_pokesdk_PokemonSDK_freeString(_ *C.JNIEnv, _ C.jclass, ptr C.jlong) {
	releaseHandle(ptr)
}

//export Java_PokeSDK_getPokemonJson
func Java_PokeSDK_getPokemonJson(env *C.JNIEnv, _ C.jclass, id C.jint) C.jstring {
	return pokemonJString(env, id)
}

//export Java_PokeSDK_freeString
func Java_PokeSDK_freeString(_ *C.JNIEnv, _ C.jclass, ptr C.jlong) {
	releaseHandle(ptr)
}

// pokemonJString builds a JVM string from UTF-16, so characters outside the
// BMP arrive as surrogate pairs. NULL means no envelope could be produced.
func pokemonJString(env *C.JNIEnv, id C.jint) C.jstring {
	chars, ok := jniChars(sdk(), int32(id))
	if !ok {
		return C.jstring(nil)
	}
	return C.pokesdk_new_string(env, (*C.jchar)(unsafe.Pointer(&chars[0])), C.jsize(len(chars)))
}

// releaseHandle frees a raw handle obtained from get_pokemon_json.
func releaseHandle(ptr C.jlong) {
	//nolint:govet // the handle is a C heap address round-tripped through a Java long
	boundary.Release(unsafe.Pointer(uintptr(ptr)))
}
