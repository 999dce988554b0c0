package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/pokesdk/poke-sdk/domain/entities"
)

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// Uint32Ptr returns a pointer to v.
func Uint32Ptr(v uint32) *uint32 { return &v }

const spriteBase = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon"

// Bulbasaur is national dex entry 1.
func Bulbasaur() entities.Pokemon {
	return entities.Pokemon{
		ID:             1,
		Name:           "bulbasaur",
		Height:         7,
		Weight:         69,
		BaseExperience: Uint32Ptr(64),
		Sprites: entities.Sprites{
			FrontDefault: StrPtr(spriteBase + "/1.png"),
			BackDefault:  StrPtr(spriteBase + "/back/1.png"),
		},
		Types: []entities.TypeSlot{
			{Slot: 1, Type: entities.TypeInfo{Name: "grass", URL: "https://pokeapi.co/api/v2/type/12/"}},
			{Slot: 2, Type: entities.TypeInfo{Name: "poison", URL: "https://pokeapi.co/api/v2/type/4/"}},
		},
	}
}

// Pikachu is national dex entry 25.
func Pikachu() entities.Pokemon {
	return entities.Pokemon{
		ID:             25,
		Name:           "pikachu",
		Height:         4,
		Weight:         60,
		BaseExperience: Uint32Ptr(112),
		Sprites: entities.Sprites{
			FrontDefault: StrPtr(spriteBase + "/25.png"),
			BackDefault:  StrPtr(spriteBase + "/back/25.png"),
		},
		Types: []entities.TypeSlot{
			{Slot: 1, Type: entities.TypeInfo{Name: "electric", URL: "https://pokeapi.co/api/v2/type/13/"}},
		},
	}
}

// Unknown is an entry with every optional attribute absent.
func Unknown() entities.Pokemon {
	return entities.Pokemon{
		ID:     10001,
		Name:   "deoxys-attack",
		Height: 17,
		Weight: 608,
		Types: []entities.TypeSlot{
			{Slot: 1, Type: entities.TypeInfo{Name: "psychic", URL: "https://pokeapi.co/api/v2/type/14/"}},
		},
	}
}

// UpstreamJSON renders p the way the upstream service does, including fields
// the SDK ignores.
func UpstreamJSON(p entities.Pokemon) []byte {
	sprites := map[string]any{
		"front_default": p.Sprites.FrontDefault,
		"back_default":  p.Sprites.BackDefault,
		"front_shiny":   nil,
		"other":         map[string]any{"home": map[string]any{"front_default": nil}},
	}
	types := make([]map[string]any, 0, len(p.Types))
	for _, ts := range p.Types {
		types = append(types, map[string]any{
			"slot": ts.Slot,
			"type": map[string]any{"name": ts.Type.Name, "url": ts.Type.URL},
		})
	}
	doc := map[string]any{
		"id":              p.ID,
		"name":            p.Name,
		"height":          p.Height,
		"weight":          p.Weight,
		"base_experience": p.BaseExperience,
		"is_default":      true,
		"order":           p.ID,
		"species":         map[string]any{"name": p.Name, "url": fmt.Sprintf("https://pokeapi.co/api/v2/pokemon-species/%d/", p.ID)},
		"abilities":       []any{},
		"sprites":         sprites,
		"types":           types,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return data
}
