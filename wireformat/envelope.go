package wireformat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/pokesdk/poke-sdk/domain/entities"
	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
)

// SerializeFailureMessage is the error reported when an envelope could not be
// encoded and a failure envelope was substituted.
const SerializeFailureMessage = "failed to serialize result"

// CriticalFallback is returned by EncodeOrFallback when even the substituted
// failure envelope cannot be encoded.
const CriticalFallback = `{"success":false,"pokemon":null,"error":"Critical serialization error"}`

// validate is a package-level singleton; building a validator caches struct
// metadata and is expensive.
var validate = validator.New()

// EnvelopeWire is the JSON layout of an envelope. Field order is the order of
// keys in the encoded object.
type EnvelopeWire struct {
	Success bool              `json:"success"`
	Pokemon *entities.Pokemon `json:"pokemon" jsonschema:"nullable"`
	Error   *string           `json:"error" jsonschema:"nullable"`
}

// ToWire converts an envelope into its wire layout.
func ToWire(env entities.Envelope) EnvelopeWire {
	if p, ok := env.Pokemon(); ok {
		if p.Types == nil {
			p.Types = []entities.TypeSlot{}
		}
		return EnvelopeWire{Success: true, Pokemon: &p}
	}
	msg, _ := env.Message()
	return EnvelopeWire{Success: false, Error: &msg}
}

// Encode serializes env to its canonical JSON string.
func Encode(env entities.Envelope) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ToWire(env)); err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// EncodeOrFallback serializes env and never fails. If env cannot be encoded a
// failure envelope is encoded instead; if that fails too CriticalFallback is
// returned.
func EncodeOrFallback(env entities.Envelope) string {
	s, err := Encode(env)
	if err == nil {
		return s
	}
	s, err = Encode(entities.Failure(SerializeFailureMessage))
	if err == nil {
		return s
	}
	return CriticalFallback
}

// ToMap returns env as a generic value tree (maps, slices, float64, string,
// bool, nil) with the wire key names. Hosts that receive structured values
// instead of text use this form.
func ToMap(env entities.Envelope) (map[string]any, error) {
	s, err := Encode(env)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("failed to convert envelope: %w", err)
	}
	return m, nil
}

// Decode parses a wire envelope. It is total over strings produced by Encode
// and fails closed on anything else: unknown or missing keys, trailing data,
// a success flag that disagrees with the populated fields, or a pokemon that
// fails validation all return a *errors.DecodeError.
func Decode(s string) (entities.Envelope, error) {
	top, err := objectWithKeys([]byte(s), "envelope", "success", "pokemon", "error")
	if err != nil {
		return entities.Envelope{}, err
	}

	var success bool
	if isNull(top["success"]) {
		return entities.Envelope{}, decodeErr("success must be a boolean", nil)
	}
	if err := json.Unmarshal(top["success"], &success); err != nil {
		return entities.Envelope{}, decodeErr("success must be a boolean", err)
	}

	if !success {
		if !isNull(top["pokemon"]) {
			return entities.Envelope{}, decodeErr("failure envelope carries a pokemon", nil)
		}
		var msg *string
		if err := json.Unmarshal(top["error"], &msg); err != nil || msg == nil {
			return entities.Envelope{}, decodeErr("failure envelope needs an error string", err)
		}
		if *msg == "" {
			return entities.Envelope{}, decodeErr("failure envelope has an empty error", nil)
		}
		return entities.Failure(*msg), nil
	}

	if !isNull(top["error"]) {
		return entities.Envelope{}, decodeErr("success envelope carries an error", nil)
	}
	p, err := decodePokemon(top["pokemon"])
	if err != nil {
		return entities.Envelope{}, err
	}
	return entities.Success(p), nil
}

// ValidatePokemon checks the invariants of a Pokemon: positive id, non-empty
// name, positive and unique type slots, named types.
func ValidatePokemon(p entities.Pokemon) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("pokemon validation failed: %w", err)
	}
	return nil
}

func decodePokemon(raw json.RawMessage) (entities.Pokemon, error) {
	fields, err := objectWithKeys(raw, "pokemon",
		"id", "name", "height", "weight", "base_experience", "sprites", "types")
	if err != nil {
		return entities.Pokemon{}, err
	}
	if _, err := objectWithKeys(fields["sprites"], "sprites", "front_default", "back_default"); err != nil {
		return entities.Pokemon{}, err
	}

	var types []json.RawMessage
	if isNull(fields["types"]) {
		return entities.Pokemon{}, decodeErr("types must be an array", nil)
	}
	if err := json.Unmarshal(fields["types"], &types); err != nil {
		return entities.Pokemon{}, decodeErr("types must be an array", err)
	}
	for _, item := range types {
		slot, err := objectWithKeys(item, "types[]", "slot", "type")
		if err != nil {
			return entities.Pokemon{}, err
		}
		if _, err := objectWithKeys(slot["type"], "type", "name", "url"); err != nil {
			return entities.Pokemon{}, err
		}
	}

	var p entities.Pokemon
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return entities.Pokemon{}, decodeErr("invalid pokemon", err)
	}
	if err := ValidatePokemon(p); err != nil {
		return entities.Pokemon{}, decodeErr("invalid pokemon", err)
	}
	if p.Types == nil {
		p.Types = []entities.TypeSlot{}
	}
	return p, nil
}

// objectWithKeys parses raw as a single JSON object whose key set is exactly keys.
func objectWithKeys(raw []byte, what string, keys ...string) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var obj map[string]json.RawMessage
	if err := dec.Decode(&obj); err != nil {
		return nil, decodeErr(what+" is not a JSON object", err)
	}
	if obj == nil {
		return nil, decodeErr(what+" is not a JSON object", nil)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, decodeErr("trailing data after "+what, nil)
	}

	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return nil, decodeErr(fmt.Sprintf("%s is missing key %q", what, k), nil)
		}
	}
	if len(obj) != len(keys) {
		for k := range obj {
			if !contains(keys, k) {
				return nil, decodeErr(fmt.Sprintf("%s has unknown key %q", what, k), nil)
			}
		}
	}
	return obj, nil
}

func contains(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeErr(reason string, err error) *sdkerrors.DecodeError {
	return &sdkerrors.DecodeError{Reason: reason, Err: err}
}
