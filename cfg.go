package main

import (
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathgrid/config"
	"github.com/zucenko/pathgrid/model"
)

// loadBoard opens the configured layout, or returns an empty board.
func loadBoard(cfg config.Config) (*model.Board, error) {
	if cfg.BoardFile == "" {
		return model.NewBoard(cfg.Rows, cfg.Width)
	}
	file, err := ebitenutil.OpenFile(cfg.BoardFile)
	if err != nil {
		log.Printf("failed opening file: %s", err)
		return nil, err
	}
	defer file.Close()
	return model.ReadBoard(file, cfg.Width)
}
