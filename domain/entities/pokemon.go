package entities

// Pokemon is a single species entry as returned by the upstream service.
// Height and weight are expressed in tenths of a unit (decimetres and
// hectograms).
type Pokemon struct {
	// ID is the national dex number.
	ID uint32 `json:"id" validate:"gt=0" jsonschema:"minimum=1"`

	// Name is the lowercase species name (e.g. "bulbasaur").
	Name string `json:"name" validate:"required" jsonschema:"minLength=1"`

	Height uint32 `json:"height"`
	Weight uint32 `json:"weight"`

	// BaseExperience is nil when the upstream service does not know it.
	// It is always encoded, as JSON null when absent.
	BaseExperience *uint32 `json:"base_experience" jsonschema:"nullable"`

	// Sprites holds the front and back image URLs.
	Sprites Sprites `json:"sprites"`

	// Types is ordered by display order; slots are unique.
	Types []TypeSlot `json:"types" validate:"unique=Slot,dive"`
}

// Sprites contains the default sprite URLs. Either may be absent.
type Sprites struct {
	FrontDefault *string `json:"front_default" jsonschema:"nullable"`
	BackDefault  *string `json:"back_default" jsonschema:"nullable"`
}

// TypeSlot binds an elemental type to its display slot.
type TypeSlot struct {
	Slot uint32   `json:"slot" validate:"gt=0" jsonschema:"minimum=1"`
	Type TypeInfo `json:"type"`
}

// TypeInfo names a type and links to its upstream resource.
type TypeInfo struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url"`
}

// TypeNames returns the type names in slot order.
func (p Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}
