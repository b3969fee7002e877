// Package view maps board state to what a shell draws: cell colours and
// step-by-step playback of a recorded search.
package view

import (
	"image/color"

	"github.com/zucenko/pathgrid/model"
)

var (
	White     = color.RGBA{255, 255, 255, 255}
	Black     = color.RGBA{0, 0, 0, 255}
	Orange    = color.RGBA{255, 165, 0, 255}
	Turquoise = color.RGBA{64, 224, 208, 255}
	Green     = color.RGBA{0, 255, 0, 255}
	Red       = color.RGBA{255, 0, 0, 255}
	Purple    = color.RGBA{128, 0, 128, 255}
	Grey      = color.RGBA{128, 128, 128, 255}
)

// GridLine is the colour of the lines between cells.
var GridLine = Grey

func Color(k model.Kind) color.RGBA {
	switch k {
	case model.Barrier:
		return Black
	case model.Start:
		return Orange
	case model.End:
		return Turquoise
	case model.Open:
		return Green
	case model.Closed:
		return Red
	case model.Path:
		return Purple
	default:
		return White
	}
}

// Playback replays recorded frames over a copy of the baseline.
type Playback struct {
	Kinds  [][]model.Kind
	frames []model.Frame
	next   int
}

func NewPlayback(baseline [][]model.Kind, frames []model.Frame) *Playback {
	kinds := make([][]model.Kind, len(baseline))
	for r, line := range baseline {
		kinds[r] = append([]model.Kind(nil), line...)
	}
	return &Playback{Kinds: kinds, frames: frames}
}

// Advance applies up to n frames and returns the changes it applied.
func (p *Playback) Advance(n int) []model.CellChange {
	var applied []model.CellChange
	for ; n > 0 && p.next < len(p.frames); n-- {
		for _, ch := range p.frames[p.next].Changes {
			p.Kinds[ch.Row][ch.Col] = ch.Kind
			applied = append(applied, ch)
		}
		p.next++
	}
	return applied
}

// Skip applies every remaining frame.
func (p *Playback) Skip() []model.CellChange {
	return p.Advance(len(p.frames) - p.next)
}

func (p *Playback) Done() bool {
	return p.next >= len(p.frames)
}

func (p *Playback) Progress() (int, int) {
	return p.next, len(p.frames)
}
