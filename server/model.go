package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/pathgrid/config"
	"github.com/zucenko/pathgrid/model"
)

type BoardServer struct {
	Sessions        map[string]*BoardSession
	SessionRequests chan SessionRequest
	Finished        chan string
	Upgrader        *websocket.Upgrader
	Cfg             config.Config
}

type SessionState int

const (
	BS_NEW SessionState = iota
	BS_EDIT
	BS_RUN
	BS_OVER
)

// BoardSession is one remote board. Loop is the only goroutine that
// touches Board; the read loop only queues events and raises the stop flag.
type BoardSession struct {
	Id             string
	State          SessionState
	Board          *model.Board
	Conn           *websocket.Conn
	Events         chan model.ClientMessage
	MessagesToSend chan model.ServerMessage
	Closed         chan struct{}

	tracker   *model.Recorder
	stop      atomic.Bool
	closeOnce sync.Once

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
}
