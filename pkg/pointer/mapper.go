package pointer

import (
	"fmt"
	"strings"

	"github.com/matzehuels/boxscope/pkg/geom"
)

// ZeroWidthPolicy decides what happens when the display width is zero and no
// scale factor can be computed.
type ZeroWidthPolicy int

const (
	// ZeroWidthSkip drops the sample.
	ZeroWidthSkip ZeroWidthPolicy = iota
	// ZeroWidthUnit uses a scale of 1.
	ZeroWidthUnit
)

// ParseZeroWidthPolicy parses "skip" or "unit". The empty string is "skip".
func ParseZeroWidthPolicy(s string) (ZeroWidthPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return ZeroWidthSkip, nil
	case "unit":
		return ZeroWidthUnit, nil
	}
	return ZeroWidthSkip, fmt.Errorf("unknown zero-width policy %q (want skip or unit)", s)
}

func (p ZeroWidthPolicy) String() string {
	if p == ZeroWidthUnit {
		return "unit"
	}
	return "skip"
}

// Mapper converts viewport coordinates into the snapshot's coordinate units.
// The visualization is drawn scaled to fit DisplayWidth, with its top-left
// corner at Origin on screen.
type Mapper struct {
	Origin        geom.Coordinate
	SnapshotWidth float64
	DisplayWidth  float64
	ZeroWidth     ZeroWidthPolicy
}

// Scale returns SnapshotWidth / DisplayWidth. ok is false when DisplayWidth
// is not positive and the policy is ZeroWidthSkip.
func (m Mapper) Scale() (float64, bool) {
	if m.DisplayWidth <= 0 {
		return 1, m.ZeroWidth == ZeroWidthUnit
	}
	return m.SnapshotWidth / m.DisplayWidth, true
}

// Map converts a viewport coordinate. ok mirrors Scale.
func (m Mapper) Map(p geom.Coordinate) (geom.Coordinate, bool) {
	scale, ok := m.Scale()
	if !ok {
		return geom.Coordinate{}, false
	}
	return p.Sub(m.Origin).Scale(scale), true
}
