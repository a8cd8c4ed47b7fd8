package lens

import (
	"fmt"
	"sort"
	"strings"
)

var modelNames = map[string]Model{
	"point":      PointMass,
	"pointmass":  PointMass,
	"point_mass": PointMass,
	"nfw":        NFW,
	"void":       VoidToy,
	"voidtoy":    VoidToy,
	"void_toy":   VoidToy,
	"hsw":        HSWVoid,
	"hswvoid":    HSWVoid,
	"hsw_void":   HSWVoid,
}

// ParseModel maps a model name (case-insensitive, with a few aliases) to its
// variant.
func ParseModel(name string) (Model, error) {
	m, ok := modelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PointMass, fmt.Errorf("%w: %q (available: %v)", ErrUnknownModel, name, ListModels())
	}
	return m, nil
}

// ListModels returns the canonical model names in variant order.
func ListModels() []string {
	return []string{PointMass.String(), NFW.String(), VoidToy.String(), HSWVoid.String()}
}

// Models returns every variant in order.
func Models() []Model {
	return []Model{PointMass, NFW, VoidToy, HSWVoid}
}

// Next returns the variant after m, wrapping around.
func (m Model) Next() Model {
	return Model((int(m) + 1) % len(Models()))
}

// MarshalText implements encoding.TextMarshaler so models round-trip through
// YAML and JSON as names.
func (m Model) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Model) UnmarshalText(b []byte) error {
	parsed, err := ParseModel(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
