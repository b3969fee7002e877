package model

// CellChange is a single classification change.
type CellChange struct {
	Row, Col int
	Kind     Kind
}

// Frame holds the changes made between two step callbacks.
type Frame struct {
	Index   int
	Changes []CellChange
}

// Recorder turns step callbacks into frames by diffing the grid against
// the classifications seen at the previous step.
type Recorder struct {
	grid     *Grid
	baseline [][]Kind
	last     [][]Kind
	frames   []Frame
	limit    int
}

// NewRecorder snapshots g. A positive limit makes Step report false once
// that many frames are recorded.
func NewRecorder(g *Grid, limit int) *Recorder {
	return &Recorder{
		grid:     g,
		baseline: g.Kinds(),
		last:     g.Kinds(),
		limit:    limit,
	}
}

// Step records one frame. It has the shape of a search step callback.
func (r *Recorder) Step() bool {
	r.frames = append(r.frames, r.Diff())
	return r.limit <= 0 || len(r.frames) < r.limit
}

// Diff returns the changes since the previous Diff or Step and moves the
// comparison point forward without recording a frame.
func (r *Recorder) Diff() Frame {
	frame := Frame{Index: len(r.frames)}
	r.grid.Each(func(c *Cell) {
		if r.last[c.Row][c.Col] != c.Kind {
			r.last[c.Row][c.Col] = c.Kind
			frame.Changes = append(frame.Changes, CellChange{Row: c.Row, Col: c.Col, Kind: c.Kind})
		}
	})
	return frame
}

// Baseline is the grid as it was when the recorder was created.
func (r *Recorder) Baseline() [][]Kind {
	return r.baseline
}

func (r *Recorder) Frames() []Frame {
	return r.frames
}
