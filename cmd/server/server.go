package main

import (
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathgrid/config"
	"github.com/zucenko/pathgrid/server"
)

type Server struct {
	router      *way.Router
	BoardServer *server.BoardServer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}
	cfg.ApplyLogLevel()

	s := Server{
		BoardServer: server.NewBoardServer(cfg),
	}
	go s.BoardServer.Loop()
	s.routes()
	log.Printf("listening on :%s, %dx%d boards", cfg.Port, cfg.Rows, cfg.Rows)
	log.Fatalln(http.ListenAndServe(":"+cfg.Port, s.router))
}
