package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a content package file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported content file extension: %s", filepath.Ext(path))
	}
}

// Decode reads a package without validating references. Unknown fields are
// rejected so typos in content surface early.
func Decode(r io.Reader, format Format) (*Package, error) {
	var p Package
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode json content: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode yaml content: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported content format %q", format)
	}
	p.normalize()
	return &p, nil
}

// Load decodes and validates a package. Any integrity problem is fatal.
func Load(data []byte, format Format) (*Package, error) {
	p, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Encode writes the package in the given format.
func Encode(w io.Writer, p *Package, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported content format %q", format)
	}
}

// normalize fills IDs omitted inside map values from their keys.
func (p *Package) normalize() {
	if p.Items == nil {
		p.Items = make(map[string]Item)
	}
	for id, item := range p.Items {
		if item.ID == "" {
			item.ID = id
			p.Items[id] = item
		}
	}
	if p.NPCs == nil {
		p.NPCs = make(map[string]*NPC)
	}
	for id, npc := range p.NPCs {
		if npc != nil && npc.ID == "" {
			npc.ID = id
		}
	}
	if p.Puzzles == nil {
		p.Puzzles = make(map[string]*Puzzle)
	}
	for id, pz := range p.Puzzles {
		if pz != nil && pz.ID == "" {
			pz.ID = id
		}
	}
	if p.Locations == nil {
		p.Locations = make(map[string]*Location)
	}
	for id, loc := range p.Locations {
		if loc != nil && loc.ID == "" {
			loc.ID = id
		}
	}
}
