package generation

import (
	"math/rand"

	"dungeon-layout/components"
	"dungeon-layout/config"
)

// StencilTable picks mask shapes for new rooms by frequency
type StencilTable struct {
	Entries []StencilTableEntry
	total   float64
}

// StencilTableEntry is one mask with its selection frequency
type StencilTableEntry struct {
	Name      string
	Mask      *components.Mask
	Frequency float64
}

// NewStencilTable parses the stencil definitions of a profile. Frequencies
// are used as-is while they sum to at most 1, and scaled down to sum to 1
// otherwise.
func NewStencilTable(defs []config.StencilDefinition) (*StencilTable, error) {
	st := &StencilTable{}
	for _, def := range defs {
		mask, err := components.ParseMask(def.Mask)
		if err != nil {
			return nil, err
		}
		st.Entries = append(st.Entries, StencilTableEntry{
			Name:      def.Name,
			Mask:      mask,
			Frequency: def.Frequency,
		})
		st.total += def.Frequency
	}
	return st, nil
}

// Empty reports whether the table has no stencils
func (st *StencilTable) Empty() bool {
	return st == nil || len(st.Entries) == 0
}

// Pick returns a stencil room with a random rotation, or nil when the roll
// selects a plain rectangular room. An empty table never consumes randomness.
func (st *StencilTable) Pick(rng *rand.Rand) *components.Room {
	if st.Empty() {
		return nil
	}

	scale := 1.0
	if st.total > 1 {
		scale = 1 / st.total
	}

	// Walk the cumulative frequencies
	roll := rng.Float64()
	cumulative := 0.0
	for _, entry := range st.Entries {
		cumulative += entry.Frequency * scale
		if roll < cumulative {
			rotation := components.Rotations[rng.Intn(len(components.Rotations))]
			return components.NewStencilRoom(entry.Mask, rotation)
		}
	}

	return nil
}
