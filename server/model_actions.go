package server

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathgrid/astar"
	"github.com/zucenko/pathgrid/config"
	"github.com/zucenko/pathgrid/model"
)

func NewBoardServer(cfg config.Config) *BoardServer {
	return &BoardServer{
		Sessions:        make(map[string]*BoardSession),
		SessionRequests: make(chan SessionRequest),
		Finished:        make(chan string),
		Upgrader:        &websocket.Upgrader{},
		Cfg:             cfg,
	}
}

func (s *BoardServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")

		awaiting := make(chan SessionAwaiting, 1)
		select {
		case s.SessionRequests <- SessionRequest{SessionAwaiting: awaiting}:
		case <-time.After(timeout):
			log.Warn("SessionRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var sa SessionAwaiting
		select {
		case sa = <-awaiting:
			if sa.ResponseCode != SESSION_READY {
				log.Errorf("HandleHttpCall no session: %v", sa.Err)
				w.WriteHeader(sa.ResponseCode.ToHttp())
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall SessionAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client.
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			s.Finished <- sa.Session.Id
			return
		}
		defer con.Close()

		bs := sa.Session
		bs.Attach(con)
		log.WithField("session", bs.Id).Info("HandleHttpCall wait for session end")
		<-bs.Closed
		s.Finished <- bs.Id
	}
}

// Loop owns the session table.
func (s *BoardServer) Loop() {
	log.Printf("BoardServer.Loop starting")
	for {
		select {
		case req := <-s.SessionRequests:
			board, err := LoadBoard(s.Cfg)
			if err != nil {
				req.SessionAwaiting <- SessionAwaiting{ResponseCode: SESSION_INVALID, Err: err}
				continue
			}
			bs := NewBoardSession(board)
			s.Sessions[bs.Id] = bs
			log.WithField("session", bs.Id).Info("create BoardSession")
			req.SessionAwaiting <- SessionAwaiting{ResponseCode: SESSION_READY, Session: bs}
		case id := <-s.Finished:
			delete(s.Sessions, id)
			log.WithField("session", id).Info("BoardSession finished")
		}
	}
}

func NewBoardSession(board *model.Board) *BoardSession {
	return &BoardSession{
		Id:             uuid.NewString(),
		State:          BS_NEW,
		Board:          board,
		Events:         make(chan model.ClientMessage, 16),
		MessagesToSend: make(chan model.ServerMessage, 64),
		Closed:         make(chan struct{}),
		tracker:        model.NewRecorder(board.Grid, 0),
	}
}

// Attach binds a websocket to the session, sends the setup message and
// starts the session goroutines.
func (bs *BoardSession) Attach(conn *websocket.Conn) {
	bs.Conn = conn
	bs.State = BS_EDIT
	bs.MessagesToSend <- bs.MakeSetupMessage()
	go bs.LoopChannelRead()
	go bs.LoopChannelWrite()
	go bs.Loop()
}

func (bs *BoardSession) close() {
	bs.closeOnce.Do(func() { close(bs.Closed) })
}

func (bs *BoardSession) Loop() {
	logger := log.WithField("session", bs.Id)
	logger.Info("BoardSession.Loop start")
	for {
		select {
		case cm := <-bs.Events:
			bs.send(bs.Apply(cm))
		case <-bs.Closed:
			bs.State = BS_OVER
			logger.Info("BoardSession.Loop end")
			return
		}
	}
}

// Apply executes one client action and returns the reply.
func (bs *BoardSession) Apply(cm model.ClientMessage) model.ServerMessage {
	var err error
	switch cm.Action {
	case model.ActionPlace:
		err = bs.Board.Place(cm.Row, cm.Col)
	case model.ActionStart:
		err = bs.Board.SetStart(cm.Row, cm.Col)
	case model.ActionEnd:
		err = bs.Board.SetEnd(cm.Row, cm.Col)
	case model.ActionBarrier:
		err = bs.Board.SetBarrier(cm.Row, cm.Col)
	case model.ActionErase:
		err = bs.Board.Erase(cm.Row, cm.Col)
	case model.ActionClear:
		if err = bs.Board.Rebuild(); err == nil {
			bs.tracker = model.NewRecorder(bs.Board.Grid, 0)
			return bs.MakeSetupMessage()
		}
	case model.ActionRun:
		return bs.Run()
	case model.ActionStop:
		return model.ServerMessage{}
	default:
		err = errors.New("unknown action " + cm.Action)
	}
	msg := model.ServerMessage{}
	if frame := bs.tracker.Diff(); len(frame.Changes) > 0 {
		msg.Frames = []model.Frame{frame}
	}
	if err != nil {
		msg.Error = err.Error()
	}
	return msg
}

// Run searches the board, streaming one frame per step. A stop request or
// a closed connection cancels the search.
func (bs *BoardSession) Run() model.ServerMessage {
	bs.State = BS_RUN
	defer func() { bs.State = BS_EDIT }()
	bs.stop.Store(false)

	rec := model.NewRecorder(bs.Board.Grid, 0)
	step := func() bool {
		rec.Step()
		frames := rec.Frames()
		if !bs.send(model.ServerMessage{Frames: frames[len(frames)-1:]}) {
			return false
		}
		return !bs.stop.Load()
	}
	res, err := astar.RunBoard(context.Background(), bs.Board, step)
	bs.tracker = model.NewRecorder(bs.Board.Grid, 0)

	msg := model.ServerMessage{}
	if last := rec.Diff(); len(last.Changes) > 0 {
		msg.Frames = []model.Frame{last}
	}
	switch {
	case errors.Is(err, astar.ErrCancelled):
		msg.Outcome = []model.Outcome{{Cancelled: true, Expanded: res.Expanded}}
	case err != nil:
		msg.Error = err.Error()
	default:
		msg.Outcome = []model.Outcome{{
			Found:    res.Found,
			Cost:     res.Cost,
			Expanded: res.Expanded,
			Path:     res.Path,
		}}
	}
	log.WithField("session", bs.Id).Infof("run found=%v expanded=%d err=%v", res.Found, res.Expanded, err)
	return msg
}

// send queues a message for the write loop; false once the session closed.
func (bs *BoardSession) send(msg model.ServerMessage) bool {
	select {
	case <-bs.Closed:
		return false
	default:
	}
	select {
	case bs.MessagesToSend <- msg:
		return true
	case <-bs.Closed:
		return false
	}
}

func (bs *BoardSession) MakeSetupMessage() model.ServerMessage {
	return model.ServerMessage{
		Setup: []model.Setup{{
			SessionId: bs.Id,
			Rows:      bs.Board.Grid.Rows,
			Width:     bs.Board.Grid.Width,
			Kinds:     bs.Board.Grid.Kinds(),
		}},
	}
}

func (bs *BoardSession) LoopChannelRead() {
	logger := log.WithField("session", bs.Id)
	logger.Printf("LoopChannelRead STARTED")
	defer bs.close()
	for {
		_, r, err := bs.Conn.NextReader()
		if err != nil {
			logger.Printf("LoopChannelRead err reading message from Conn %v", err)
			return
		}
		cm := model.ClientMessage{}
		if err = gob.NewDecoder(r).Decode(&cm); err != nil {
			logger.Warnf("cant decode %v", err)
			return
		}
		bs.DebugLastMessage = time.Now()
		bs.DebugInMessages++

		if cm.Action == model.ActionStop {
			bs.stop.Store(true)
			continue
		}
		select {
		case bs.Events <- cm:
		default:
			logger.Warnf("Dropping %q, Events FULL", cm.Action)
		}
	}
}

// this function only consumes. no worries about full buffer stuck
func (bs *BoardSession) LoopChannelWrite() {
	logger := log.WithField("session", bs.Id)
	logger.Printf("LoopChannelWrite STARTED")
	for {
		select {
		case mes := <-bs.MessagesToSend:
			w, err := bs.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				logger.Warnf("LoopChannelWrite cant get writer %v", err)
				bs.close()
				return
			}
			if err = gob.NewEncoder(w).Encode(mes); err != nil {
				logger.Warnf("LoopChannelWrite cant encode %v", err)
				bs.close()
				return
			}
			if err = w.Close(); err != nil {
				logger.Warnf("LoopChannelWrite cant flush %v", err)
				bs.close()
				return
			}
			bs.DebugOutMessages++
		case <-bs.Closed:
			logger.Printf("LoopChannelWrite ENDED")
			return
		}
	}
}
