package server

import (
	"fmt"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	SESSION_READY ResponseCode = iota
	SESSION_INVALID
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case SESSION_READY:
		return HTTP_SUCCESS
	case SESSION_INVALID:
		return HTTP_SERVER_ERR
	default:
		panic(h)
	}
}

func (ss SessionState) Name() string {
	switch ss {
	case BS_NEW:
		return "BS_NEW"
	case BS_EDIT:
		return "BS_EDIT"
	case BS_RUN:
		return "BS_RUN"
	case BS_OVER:
		return "BS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", ss)
	}
}

type SessionAwaiting struct {
	ResponseCode ResponseCode
	Session      *BoardSession
	Err          error
}

type SessionRequest struct {
	SessionAwaiting chan SessionAwaiting
}
