package server

import (
	"encoding/gob"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/pathgrid/config"
	"github.com/zucenko/pathgrid/model"
)

func newSession(t *testing.T, rows int) *BoardSession {
	t.Helper()
	b, err := model.NewBoard(rows, rows*10)
	require.NoError(t, err)
	return NewBoardSession(b)
}

func apply(kinds [][]model.Kind, frames []model.Frame) {
	for _, f := range frames {
		for _, ch := range f.Changes {
			kinds[ch.Row][ch.Col] = ch.Kind
		}
	}
}

func drain(bs *BoardSession) []model.ServerMessage {
	var out []model.ServerMessage
	for {
		select {
		case m := <-bs.MessagesToSend:
			out = append(out, m)
		default:
			return out
		}
	}
}

func TestApply_Edits(t *testing.T) {
	bs := newSession(t, 3)
	assert.NotEmpty(t, bs.Id)

	msg := bs.Apply(model.ClientMessage{Action: model.ActionPlace, Row: 0, Col: 0})
	assert.Empty(t, msg.Error)
	require.Len(t, msg.Frames, 1)
	assert.Equal(t, []model.CellChange{{Row: 0, Col: 0, Kind: model.Start}}, msg.Frames[0].Changes)

	msg = bs.Apply(model.ClientMessage{Action: model.ActionEnd, Row: 0, Col: 0})
	assert.Contains(t, msg.Error, "different cells")
	assert.Empty(t, msg.Frames)

	msg = bs.Apply(model.ClientMessage{Action: model.ActionBarrier, Row: 5, Col: 0})
	assert.Contains(t, msg.Error, "out of bounds")

	msg = bs.Apply(model.ClientMessage{Action: model.ActionEnd, Row: 2, Col: 2})
	assert.Empty(t, msg.Error)
	msg = bs.Apply(model.ClientMessage{Action: model.ActionBarrier, Row: 1, Col: 1})
	assert.Empty(t, msg.Error)
	assert.Equal(t, "S..\n.#.\n..E\n", bs.Board.Grid.String())

	msg = bs.Apply(model.ClientMessage{Action: model.ActionErase, Row: 1, Col: 1})
	require.Len(t, msg.Frames, 1)
	assert.Equal(t, []model.CellChange{{Row: 1, Col: 1, Kind: model.Empty}}, msg.Frames[0].Changes)

	msg = bs.Apply(model.ClientMessage{Action: "fly"})
	assert.Contains(t, msg.Error, "unknown action")
}

func TestApply_Clear(t *testing.T) {
	bs := newSession(t, 3)
	bs.Apply(model.ClientMessage{Action: model.ActionStart, Row: 0, Col: 0})

	msg := bs.Apply(model.ClientMessage{Action: model.ActionClear})
	require.Len(t, msg.Setup, 1)
	assert.Equal(t, bs.Id, msg.Setup[0].SessionId)
	assert.Equal(t, 3, msg.Setup[0].Rows)
	assert.Nil(t, bs.Board.Start)

	// the tracker follows the new grid
	msg = bs.Apply(model.ClientMessage{Action: model.ActionStart, Row: 1, Col: 1})
	require.Len(t, msg.Frames, 1)
	assert.Equal(t, []model.CellChange{{Row: 1, Col: 1, Kind: model.Start}}, msg.Frames[0].Changes)
}

func TestRun_StreamsFrames(t *testing.T) {
	bs := newSession(t, 3)
	for _, cm := range []model.ClientMessage{
		{Action: model.ActionStart, Row: 0, Col: 0},
		{Action: model.ActionEnd, Row: 2, Col: 2},
		{Action: model.ActionBarrier, Row: 1, Col: 1},
	} {
		require.Empty(t, bs.Apply(cm).Error)
	}
	kinds := bs.Board.Grid.Kinds()

	msg := bs.Apply(model.ClientMessage{Action: model.ActionRun})
	require.Len(t, msg.Outcome, 1)
	assert.True(t, msg.Outcome[0].Found)
	assert.Equal(t, 4, msg.Outcome[0].Cost)
	assert.Len(t, msg.Outcome[0].Path, 5)
	assert.Equal(t, BS_EDIT, bs.State)

	streamed := drain(bs)
	// one frame per expansion before the end, one per interior path cell
	assert.Len(t, streamed, msg.Outcome[0].Expanded-1+3)
	for _, m := range streamed {
		apply(kinds, m.Frames)
	}
	apply(kinds, msg.Frames)
	assert.Equal(t, bs.Board.Grid.Kinds(), kinds)
}

func TestRun_MissingEnd(t *testing.T) {
	bs := newSession(t, 3)
	bs.Apply(model.ClientMessage{Action: model.ActionStart, Row: 0, Col: 0})

	msg := bs.Apply(model.ClientMessage{Action: model.ActionRun})
	assert.Contains(t, msg.Error, "end not assigned")
	assert.Empty(t, msg.Outcome)
	assert.Empty(t, drain(bs))
}

func TestRun_ClosedSessionCancels(t *testing.T) {
	bs := newSession(t, 4)
	bs.Apply(model.ClientMessage{Action: model.ActionStart, Row: 0, Col: 0})
	bs.Apply(model.ClientMessage{Action: model.ActionEnd, Row: 3, Col: 3})
	bs.close()

	msg := bs.Apply(model.ClientMessage{Action: model.ActionRun})
	require.Len(t, msg.Outcome, 1)
	assert.True(t, msg.Outcome[0].Cancelled)
	assert.Equal(t, 1, msg.Outcome[0].Expanded)
}

func TestLoadBoard(t *testing.T) {
	b, err := LoadBoard(config.Config{Rows: 4, Width: 40})
	require.NoError(t, err)
	assert.Equal(t, 4, b.Grid.Rows)

	path := filepath.Join(t.TempDir(), "board.txt")
	require.NoError(t, os.WriteFile(path, []byte("S.\n.E\n"), 0o600))
	b, err = LoadBoard(config.Config{Rows: 4, Width: 40, BoardFile: path})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Grid.Rows)
	assert.NoError(t, b.Ready())

	_, err = LoadBoard(config.Config{Rows: 4, Width: 40, BoardFile: filepath.Join(t.TempDir(), "none.txt")})
	assert.Error(t, err)
}

func TestSessionState_Name(t *testing.T) {
	assert.Equal(t, "BS_RUN", BS_RUN.Name())
	assert.Equal(t, "n/a:9", SessionState(9).Name())
	assert.Equal(t, HTTP_SERVER_ERR, SESSION_INVALID.ToHttp())
}

func readMessage(t *testing.T, conn *websocket.Conn) model.ServerMessage {
	t.Helper()
	_, r, err := conn.NextReader()
	require.NoError(t, err)
	msg := model.ServerMessage{}
	require.NoError(t, gob.NewDecoder(r).Decode(&msg))
	return msg
}

func writeMessage(t *testing.T, conn *websocket.Conn, cm model.ClientMessage) {
	t.Helper()
	w, err := conn.NextWriter(websocket.BinaryMessage)
	require.NoError(t, err)
	require.NoError(t, gob.NewEncoder(w).Encode(cm))
	require.NoError(t, w.Close())
}

func TestHandleHttpCall_Websocket(t *testing.T) {
	s := NewBoardServer(config.Config{Rows: 3, Width: 30})
	go s.Loop()
	ts := httptest.NewServer(s.HandleHttpCall())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/play", nil)
	require.NoError(t, err)
	defer conn.Close()

	setup := readMessage(t, conn)
	require.Len(t, setup.Setup, 1)
	assert.Equal(t, 3, setup.Setup[0].Rows)
	assert.NotEmpty(t, setup.Setup[0].SessionId)

	writeMessage(t, conn, model.ClientMessage{Action: model.ActionStart, Row: 0, Col: 0})
	msg := readMessage(t, conn)
	require.Len(t, msg.Frames, 1)
	assert.Equal(t, model.Start, msg.Frames[0].Changes[0].Kind)

	writeMessage(t, conn, model.ClientMessage{Action: model.ActionEnd, Row: 0, Col: 1})
	readMessage(t, conn)
	writeMessage(t, conn, model.ClientMessage{Action: model.ActionRun})

	// one step for the start expansion, then the outcome
	var outcome []model.Outcome
	for i := 0; i < 5 && outcome == nil; i++ {
		outcome = readMessage(t, conn).Outcome
	}
	require.Len(t, outcome, 1)
	assert.True(t, outcome[0].Found)
	assert.Equal(t, 1, outcome[0].Cost)
}
