package text

import (
	"fmt"

	"github.com/go-text/typesetting/di"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the writing direction of a run.
type Direction uint8

// Writing directions.
const (
	LTR Direction = iota
	RTL
)

// String returns "LTR" or "RTL".
func (d Direction) String() string {
	if d == RTL {
		return "RTL"
	}
	return "LTR"
}

func (d Direction) shapingDirection() di.Direction {
	if d == RTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// Run is a logical span of runes [Start, End) with a single direction.
type Run struct {
	Start, End int
	Direction  Direction
}

// SplitRuns splits s into direction runs in logical order. base is the
// paragraph direction used for neutral characters.
func SplitRuns(s string, base Direction) ([]Run, error) {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, nil
	}

	def := bidi.LeftToRight
	if base == RTL {
		def = bidi.RightToLeft
	}
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(def)); err != nil {
		return nil, fmt.Errorf("text: bidi paragraph: %w", err)
	}
	ordering, err := p.Order()
	if err != nil {
		return nil, fmt.Errorf("text: bidi order: %w", err)
	}

	dirs := make([]Direction, len(runes))
	for i := range dirs {
		dirs[i] = base
	}
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos() // rune indices, end inclusive
		d := LTR
		if run.Direction() == bidi.RightToLeft {
			d = RTL
		}
		for j := start; j <= end && j < len(dirs); j++ {
			dirs[j] = d
		}
	}

	var runs []Run
	start := 0
	for i := 1; i <= len(dirs); i++ {
		if i == len(dirs) || dirs[i] != dirs[start] {
			runs = append(runs, Run{Start: start, End: i, Direction: dirs[start]})
			start = i
		}
	}
	return runs, nil
}
