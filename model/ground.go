package model

import (
	"fmt"
	"strings"
)

// Ground selects one of the solver's predefined ground media.
type Ground int

const (
	GroundFree Ground = iota
	GroundPoor
	GroundAverage
	GroundGood
)

var groundNames = [...]string{
	"free",
	"poor",
	"average",
	"good",
}

func (g Ground) String() string {
	if g < GroundFree || g > GroundGood {
		return fmt.Sprintf("Ground(%d)", int(g))
	}
	return groundNames[g]
}

// Medium returns the relative permittivity and conductivity (S/m) the solver
// expects for this ground. ok is false for GroundFree, which takes no medium
// argument at all.
func (g Ground) Medium() (permittivity, conductivity float64, ok bool) {
	switch g {
	case GroundPoor:
		return 4, 0.001, true
	case GroundAverage:
		return 13, 0.005, true
	case GroundGood:
		return 20, 0.03, true
	default:
		return 0, 0, false
	}
}

// ParseGround maps a configuration string onto a Ground value. Unknown names
// are rejected here, at configuration time, rather than handed to the solver.
func ParseGround(s string) (Ground, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range groundNames {
		if n == name {
			return Ground(i), nil
		}
	}
	return GroundFree, fmt.Errorf("unknown ground type %q (want one of %v)", s, groundNames)
}
