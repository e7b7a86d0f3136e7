// Package model describes wire-antenna geometry in relative position,
// independent of the solver's textual wire-definition syntax.
package model

import (
	"fmt"

	"github.com/wiless/vlib"
)

// Element is a straight wire segment between two endpoints, discretized
// into Segments sub-segments by the solver.
type Element struct {
	P1       vlib.Location3D `json:"p1"`
	P2       vlib.Location3D `json:"p2"`
	Segments int             `json:"segments"`
	RadiusM  float64         `json:"radiusM"`
}

// NewElement builds an element from raw endpoint coordinates (metres).
func NewElement(x1, y1, z1, x2, y2, z2 float64, segments int, radiusM float64) Element {
	return Element{
		P1:       vlib.Location3D{X: x1, Y: y1, Z: z1},
		P2:       vlib.Location3D{X: x2, Y: y2, Z: z2},
		Segments: segments,
		RadiusM:  radiusM,
	}
}

// Feedpoint records where RF energy is injected: a segment on one of the
// model's elements and the complex excitation voltage applied there.
type Feedpoint struct {
	Element int
	Segment int
	Voltage complex128
}

// Model is an ordered set of elements plus the feedpoints driving them.
// Feedpoint indices are validated at simulation time, not here.
type Model struct {
	Elements   []Element
	Feedpoints []Feedpoint
}

// AddElement appends el to the element list.
func (m *Model) AddElement(el Element) {
	m.Elements = append(m.Elements, el)
}

// AddFeedpoint records a feed at the given element and segment with unit
// voltage at zero phase.
func (m *Model) AddFeedpoint(element, segment int) {
	m.AddFeedpointV(element, segment, 1+0i)
}

// AddFeedpointV records a feed with an explicit complex excitation voltage.
func (m *Model) AddFeedpointV(element, segment int, voltage complex128) {
	m.Feedpoints = append(m.Feedpoints, Feedpoint{Element: element, Segment: segment, Voltage: voltage})
}

// Validate checks that every feedpoint references an existing element and a
// segment inside [1, segments-1]; the solver excites the junction below the
// segment, so the outermost segment has no usable pulse.
func (m *Model) Validate() error {
	for i, fp := range m.Feedpoints {
		if fp.Element < 0 || fp.Element >= len(m.Elements) {
			return fmt.Errorf("feedpoint %d: element index %d out of range (%d elements)", i, fp.Element, len(m.Elements))
		}
		segs := m.Elements[fp.Element].Segments
		if fp.Segment < 1 || fp.Segment > segs-1 {
			return fmt.Errorf("feedpoint %d: segment %d outside [1,%d] on element %d", i, fp.Segment, segs-1, fp.Element)
		}
	}
	return nil
}

// CenterSegment returns the segment nearest the electrical centre of an
// element with the given segment count.
func CenterSegment(segments int) int {
	return (segments + 1) / 2
}
