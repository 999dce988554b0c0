package host

import (
	"context"
	"fmt"
	"sync"

	"github.com/pokesdk/poke-sdk/domain/entities"
	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
	"github.com/pokesdk/poke-sdk/internal/abi"
	"github.com/pokesdk/poke-sdk/wireformat"
	"github.com/tetratelabs/wazero/api"
)

// Instance is a loaded guest. Calls are serialized because a wasip1 guest
// is single-threaded.
type Instance struct {
	module api.Module
	mu     sync.Mutex
}

// GetPokemonJSON calls the guest's get_pokemon_json export and returns the
// envelope text. The guest buffer is released before returning. An error
// means no envelope was produced.
func (i *Instance) GetPokemonJSON(ctx context.Context, id uint32) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	fn := i.module.ExportedFunction("get_pokemon_json")
	if fn == nil {
		return "", &sdkerrors.InternalError{Operation: "get_pokemon_json", Err: fmt.Errorf("export %q not found", "get_pokemon_json")}
	}
	results, err := fn.Call(ctx, uint64(id))
	if err != nil {
		return "", &sdkerrors.InternalError{Operation: "get_pokemon_json", Err: err}
	}
	if len(results) == 0 || results[0] == 0 {
		return "", &sdkerrors.InternalError{Operation: "get_pokemon_json", Err: fmt.Errorf("guest returned a null envelope")}
	}

	ptr, length, err := abi.UnpackPtrLen(results[0])
	if err != nil {
		return "", &sdkerrors.InternalError{Operation: "get_pokemon_json", Err: err}
	}
	data, ok := i.module.Memory().Read(ptr, length)
	if !ok {
		return "", &sdkerrors.InternalError{Operation: "get_pokemon_json", Err: fmt.Errorf("envelope out of bounds")}
	}
	out := string(data)

	if dealloc := i.module.ExportedFunction("deallocate"); dealloc != nil {
		if _, err := dealloc.Call(ctx, uint64(ptr), uint64(length)); err != nil {
			return out, &sdkerrors.InternalError{Operation: "deallocate", Err: err}
		}
	}
	return out, nil
}

// GetPokemon is GetPokemonJSON followed by a strict decode.
func (i *Instance) GetPokemon(ctx context.Context, id uint32) (entities.Envelope, error) {
	s, err := i.GetPokemonJSON(ctx, id)
	if err != nil {
		return entities.Envelope{}, err
	}
	return wireformat.Decode(s)
}

// Close closes the guest module.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}
