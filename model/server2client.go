package model

// Client actions understood by a board session.
const (
	ActionPlace   = "place"
	ActionStart   = "start"
	ActionEnd     = "end"
	ActionBarrier = "barrier"
	ActionErase   = "erase"
	ActionRun     = "run"
	ActionStop    = "stop"
	ActionClear   = "clear"
)

type ClientMessage struct {
	Action   string
	Row, Col int
}

type ServerMessage struct {
	Setup   []Setup
	Frames  []Frame
	Outcome []Outcome
	Error   string
}

type Setup struct {
	SessionId   string
	Rows, Width int
	Kinds       [][]Kind
}

type Outcome struct {
	Found     bool
	Cancelled bool
	Cost      int
	Expanded  int
	Path      []Position
}
