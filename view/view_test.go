package view_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/pathgrid/astar"
	"github.com/zucenko/pathgrid/model"
	"github.com/zucenko/pathgrid/view"
)

func TestColor(t *testing.T) {
	cases := map[model.Kind]interface{}{
		model.Empty:   view.White,
		model.Barrier: view.Black,
		model.Start:   view.Orange,
		model.End:     view.Turquoise,
		model.Open:    view.Green,
		model.Closed:  view.Red,
		model.Path:    view.Purple,
	}
	for k, want := range cases {
		assert.Equal(t, want, view.Color(k), k.Name())
	}
	assert.Equal(t, view.White, view.Color(model.Kind(99)))
}

func TestPlayback_ReplaysRecordedRun(t *testing.T) {
	b, err := model.ReadBoard(strings.NewReader("S...\n.##.\n....\n...E\n"), 40)
	require.NoError(t, err)
	rec := model.NewRecorder(b.Grid, 0)
	_, err = astar.RunBoard(context.Background(), b, rec.Step)
	require.NoError(t, err)

	p := view.NewPlayback(rec.Baseline(), rec.Frames())
	assert.Equal(t, rec.Baseline(), p.Kinds)
	assert.False(t, p.Done())

	changes := p.Advance(1)
	assert.Equal(t, rec.Frames()[0].Changes, changes)
	done, total := p.Progress()
	assert.Equal(t, 1, done)
	assert.Equal(t, len(rec.Frames()), total)

	p.Skip()
	assert.True(t, p.Done())
	assert.Equal(t, b.Grid.Kinds(), p.Kinds)
	assert.Empty(t, p.Advance(5))
}

func TestPlayback_DoesNotAliasBaseline(t *testing.T) {
	baseline := [][]model.Kind{{model.Empty}}
	p := view.NewPlayback(baseline, []model.Frame{{Changes: []model.CellChange{{Row: 0, Col: 0, Kind: model.Open}}}})
	p.Advance(1)
	assert.Equal(t, model.Open, p.Kinds[0][0])
	assert.Equal(t, model.Empty, baseline[0][0])
}
