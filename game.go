package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/zucenko/pathgrid/astar"
	"github.com/zucenko/pathgrid/config"
	"github.com/zucenko/pathgrid/model"
	"github.com/zucenko/pathgrid/view"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	statusHeight = 40
	tick         = float32(1) / 60
)

var Font font.Face

func init() {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	const dpi = 72
	Font = truetype.NewFace(tt, &truetype.Options{
		Size:    18,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsReleased() bool
}

// MouseStrokeSource is a StrokeSource implementation of one mouse button.
type MouseStrokeSource struct {
	Button ebiten.MouseButton
}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsReleased() bool {
	return !ebiten.IsMouseButtonPressed(m.Button)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke paints one board action on every cell a press drags over.
type Stroke struct {
	source   StrokeSource
	apply    func(row, col int) error
	lastRow  int
	lastCol  int
	released bool
}

func NewStroke(source StrokeSource, apply func(row, col int) error) *Stroke {
	return &Stroke{source: source, apply: apply, lastRow: -1, lastCol: -1}
}

type GameState int

const (
	IDLE GameState = iota + 1
	PLAYING
	FINISHED
)

func (s GameState) Name() string {
	switch s {
	case IDLE:
		return "IDLE"
	case PLAYING:
		return "PLAYING"
	case FINISHED:
		return "FINISHED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Game struct {
	State   GameState
	Cfg     config.Config
	Board   *model.Board
	strokes map[*Stroke]struct{}

	playback   *view.Playback
	result     astar.Result
	Tweens     map[*gween.Tween]Action
	fades      map[model.Position]float32
	fadeTweens map[model.Position]*gween.Tween

	status      string
	StatusLabel *ebiten.Image
}

func NewGame(cfg config.Config, board *model.Board) *Game {
	g := &Game{
		State:      IDLE,
		Cfg:        cfg,
		Board:      board,
		strokes:    map[*Stroke]struct{}{},
		Tweens:     make(map[*gween.Tween]Action),
		fades:      make(map[model.Position]float32),
		fadeTweens: make(map[model.Position]*gween.Tween),
	}
	g.setStatus("left: start, end, barriers  right: erase  space: run  c: clear")
	return g
}

func (g *Game) setStatus(s string) {
	if s == g.status {
		return
	}
	g.status = s
	g.StatusLabel = prepareTextImage(s, g.Cfg.Width)
}

func prepareTextImage(s string, width int) *ebiten.Image {
	image, _ := ebiten.NewImage(width, statusHeight, ebiten.FilterLinear)
	text.Draw(image, s, Font, 8, 26, color.Black)
	return image
}

func (g *Game) updateStroke(stroke *Stroke) {
	if stroke.source.IsReleased() {
		stroke.released = true
		return
	}
	x, y := stroke.source.Position()
	row, col, err := model.CellFromPixel(x, y, g.Board.Grid.Rows, g.Board.Grid.Width)
	if err != nil {
		return
	}
	if row == stroke.lastRow && col == stroke.lastCol {
		return
	}
	stroke.lastRow, stroke.lastCol = row, col
	if err := stroke.apply(row, col); err != nil {
		log.Debugf("edit (%d,%d): %v", row, col, err)
		return
	}
	g.State = IDLE
}

func (g *Game) run() {
	rec := model.NewRecorder(g.Board.Grid, 0)
	res, err := astar.RunBoard(context.Background(), g.Board, rec.Step)
	if err != nil {
		log.Warnf("run: %v", err)
		g.setStatus(err.Error())
		return
	}
	log.Infof("run found=%v cost=%d expanded=%d frames=%d", res.Found, res.Cost, res.Expanded, len(rec.Frames()))
	g.result = res
	g.playback = view.NewPlayback(rec.Baseline(), rec.Frames())
	g.State = PLAYING
	g.setStatus("searching...")
}

func (g *Game) finish() {
	g.State = FINISHED
	g.playback = nil
	if g.result.Found {
		g.setStatus(fmt.Sprintf("path length %d, %d cells expanded", g.result.Cost, g.result.Expanded))
	} else {
		g.setStatus(fmt.Sprintf("no path, %d cells expanded", g.result.Expanded))
	}
}

func (g *Game) clear() {
	if err := g.Board.Rebuild(); err != nil {
		log.Errorf("clear: %v", err)
		return
	}
	g.strokes = map[*Stroke]struct{}{}
	g.playback = nil
	g.State = IDLE
	g.setStatus("cleared")
}

func (g *Game) handleInput() {
	if g.State == PLAYING {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.playback.Skip()
			g.finish()
		}
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.run()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.clear()
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{ebiten.MouseButtonLeft}, g.place)] = struct{}{}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.strokes[NewStroke(&MouseStrokeSource{ebiten.MouseButtonRight}, g.erase)] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(&TouchStrokeSource{id}, g.place)] = struct{}{}
	}

	for s := range g.strokes {
		g.updateStroke(s)
		if s.released {
			delete(g.strokes, s)
		}
	}
}

// place and erase read g.Board on every call so strokes keep working after clear.
func (g *Game) place(row, col int) error { return g.Board.Place(row, col) }
func (g *Game) erase(row, col int) error { return g.Board.Erase(row, col) }

func (g *Game) kindAt(row, col int) model.Kind {
	if g.playback != nil {
		return g.playback.Kinds[row][col]
	}
	return g.Board.Grid.Matrix[row][col].Kind
}

func (g *Game) update(screen *ebiten.Image) error {
	g.updateTweens(tick)
	g.handleInput()

	if g.State == PLAYING {
		for _, ch := range g.playback.Advance(g.Cfg.FramesPerTick) {
			g.fade(model.Position{Row: ch.Row, Col: ch.Col})
		}
		if g.playback.Done() {
			g.finish()
		}
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	if e := screen.Fill(view.White); e != nil {
		log.Printf("%v", e)
	}

	grid := g.Board.Grid
	gap := float64(grid.CellSize)
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Rows; c++ {
			clr := view.Color(g.kindAt(r, c))
			if a, ok := g.fades[model.Position{Row: r, Col: c}]; ok {
				clr = blend(view.White, clr, a)
			}
			ebitenutil.DrawRect(screen, float64(c)*gap, float64(r)*gap, gap, gap, clr)
		}
	}
	side := gap * float64(grid.Rows)
	for i := 0; i <= grid.Rows; i++ {
		ebitenutil.DrawLine(screen, 0, float64(i)*gap, side, float64(i)*gap, view.GridLine)
		ebitenutil.DrawLine(screen, float64(i)*gap, 0, float64(i)*gap, side, view.GridLine)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(g.Cfg.Width))
	screen.DrawImage(g.StatusLabel, op)
	ebitenutil.DebugPrintAt(screen, g.State.Name(), g.Cfg.Width-80, g.Cfg.Width+12)

	return nil
}

func blend(from, to color.RGBA, t float32) color.RGBA {
	mix := func(a, b uint8) uint8 { return uint8(float32(a) + (float32(b)-float32(a))*t) }
	return color.RGBA{mix(from.R, to.R), mix(from.G, to.G), mix(from.B, to.B), 255}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.ApplyLogLevel()
	board, err := loadBoard(cfg)
	if err != nil {
		log.Fatal(err)
	}
	g := NewGame(cfg, board)
	if err := ebiten.Run(g.update, cfg.Width, cfg.Width+statusHeight, 1, "A* Path Finding"); err != nil {
		log.Fatal(err)
	}
}
