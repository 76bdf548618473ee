// Package preset defines the JSON document used to save and load surface
// definitions, and the built-in example catalog. The expressions and
// bounds are kept as raw text: a preset is a record of what the user
// typed, not of what it evaluated to.
package preset

import (
	"encoding/json"
	"fmt"
)

const (
	// TypeName identifies a preset document.
	TypeName = "paramSurfacePreset"
	// Version is the current preset document version.
	Version = 1
)

// Preset is one saved surface definition. Absent expression and bound
// fields decode as empty strings; absent step counts decode as 0, which
// callers interpret as "keep the current value".
type Preset struct {
	Type    string `json:"type"`
	Version int    `json:"version"`
	Name    string `json:"name"`
	X       string `json:"x"`
	Y       string `json:"y"`
	Z       string `json:"z"`
	UMin    string `json:"uMin"`
	UMax    string `json:"uMax"`
	VMin    string `json:"vMin"`
	VMax    string `json:"vMax"`
	USteps  int    `json:"uSteps,omitempty"`
	VSteps  int    `json:"vSteps,omitempty"`
}

// Decode parses a preset document. The data may be a single preset object
// or a collection {"presets": [...]}, in which case the first element is
// used. A collection with an empty presets array is an error, not an
// empty preset.
func Decode(data []byte) (*Preset, error) {
	var wrapper struct {
		Presets *[]Preset `json:"presets"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Presets != nil {
		if len(*wrapper.Presets) == 0 {
			return nil, fmt.Errorf("decode preset: collection has no presets")
		}
		p := (*wrapper.Presets)[0]
		return &p, nil
	}

	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode preset: %w", err)
	}
	return &p, nil
}

// Encode serializes the preset with the type and version stamped in.
func (p Preset) Encode() ([]byte, error) {
	p.Type = TypeName
	p.Version = Version
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode preset: %w", err)
	}
	return data, nil
}
