package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pokesdk/poke-sdk/domain/entities"
	"github.com/pokesdk/poke-sdk/wireformat"
	"gopkg.in/yaml.v3"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"json":   true,
	"pretty": true,
	"yaml":   true,
}

// OutputEnvelope writes an envelope in the specified format to the writer.
func OutputEnvelope(format string, env entities.Envelope, out io.Writer) error {
	switch format {
	case "json":
		return OutputJSON(env, out)
	case "pretty":
		return OutputPretty(env, out)
	case "yaml":
		return OutputYAML(env, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes the envelope text exactly as the bindings return it.
func OutputJSON(env entities.Envelope, out io.Writer) error {
	_, err := fmt.Fprintln(out, wireformat.EncodeOrFallback(env))
	return err
}

// OutputYAML writes the envelope as a YAML document with the same keys.
func OutputYAML(env entities.Envelope, out io.Writer) error {
	m, err := wireformat.ToMap(env)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

// OutputPretty writes a human-readable summary.
func OutputPretty(env entities.Envelope, out io.Writer) error {
	p, ok := env.Pokemon()
	if !ok {
		msg, _ := env.Message()
		_, err := fmt.Fprintf(out, "error: %s\n", msg)
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d %s\n", p.ID, p.Name)
	fmt.Fprintf(&sb, "  height: %s m\n", tenths(p.Height))
	fmt.Fprintf(&sb, "  weight: %s kg\n", tenths(p.Weight))
	if p.BaseExperience != nil {
		fmt.Fprintf(&sb, "  base experience: %d\n", *p.BaseExperience)
	} else {
		sb.WriteString("  base experience: unknown\n")
	}
	if names := p.TypeNames(); len(names) > 0 {
		fmt.Fprintf(&sb, "  types: %s\n", strings.Join(names, ", "))
	}
	if p.Sprites.FrontDefault != nil {
		fmt.Fprintf(&sb, "  front sprite: %s\n", *p.Sprites.FrontDefault)
	}
	if p.Sprites.BackDefault != nil {
		fmt.Fprintf(&sb, "  back sprite: %s\n", *p.Sprites.BackDefault)
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

// tenths renders a value measured in tenths of a unit, e.g. 69 -> "6.9".
func tenths(v uint32) string {
	return fmt.Sprintf("%d.%d", v/10, v%10)
}
