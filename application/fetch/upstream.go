package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pokesdk/poke-sdk/domain/entities"
	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
	"github.com/pokesdk/poke-sdk/wireformat"
)

// upstreamPokemon is the subset of the upstream document the SDK reads.
// Pointers distinguish missing fields from zero values.
type upstreamPokemon struct {
	ID             *uint32 `json:"id"`
	Name           *string `json:"name"`
	Height         *uint32 `json:"height"`
	Weight         *uint32 `json:"weight"`
	BaseExperience *uint32 `json:"base_experience"`
	Sprites        *struct {
		FrontDefault *string `json:"front_default"`
		BackDefault  *string `json:"back_default"`
	} `json:"sprites"`
	Types []struct {
		Slot uint32 `json:"slot"`
		Type struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"type"`
	} `json:"types"`
}

// parsePokemon converts an upstream body into a validated Pokemon whose id
// must equal want.
func parsePokemon(body []byte, want uint32) (entities.Pokemon, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return entities.Pokemon{}, &sdkerrors.UpstreamMalformedError{Reason: "empty body"}
	}

	var doc upstreamPokemon
	if err := json.Unmarshal(body, &doc); err != nil {
		return entities.Pokemon{}, &sdkerrors.UpstreamMalformedError{Reason: "invalid JSON", Err: err}
	}

	switch {
	case doc.ID == nil:
		return entities.Pokemon{}, missing("id")
	case doc.Name == nil:
		return entities.Pokemon{}, missing("name")
	case doc.Height == nil:
		return entities.Pokemon{}, missing("height")
	case doc.Weight == nil:
		return entities.Pokemon{}, missing("weight")
	}
	if *doc.ID != want {
		return entities.Pokemon{}, &sdkerrors.UpstreamMalformedError{
			Reason: fmt.Sprintf("requested id %d but received id %d", want, *doc.ID),
		}
	}

	p := entities.Pokemon{
		ID:             *doc.ID,
		Name:           *doc.Name,
		Height:         *doc.Height,
		Weight:         *doc.Weight,
		BaseExperience: doc.BaseExperience,
		Types:          make([]entities.TypeSlot, 0, len(doc.Types)),
	}
	if doc.Sprites != nil {
		p.Sprites = entities.Sprites{
			FrontDefault: doc.Sprites.FrontDefault,
			BackDefault:  doc.Sprites.BackDefault,
		}
	}
	for _, t := range doc.Types {
		p.Types = append(p.Types, entities.TypeSlot{
			Slot: t.Slot,
			Type: entities.TypeInfo{Name: t.Type.Name, URL: t.Type.URL},
		})
	}

	if err := wireformat.ValidatePokemon(p); err != nil {
		return entities.Pokemon{}, &sdkerrors.UpstreamMalformedError{Reason: "invalid pokemon", Err: err}
	}
	return p, nil
}

func missing(field string) error {
	return &sdkerrors.UpstreamMalformedError{Reason: fmt.Sprintf("missing field %q", field)}
}
