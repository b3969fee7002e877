package server

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathgrid/config"
	"github.com/zucenko/pathgrid/model"
)

// LoadBoard builds the board a new session starts from: the configured
// layout file when there is one, an empty grid otherwise.
func LoadBoard(cfg config.Config) (*model.Board, error) {
	if cfg.BoardFile == "" {
		return model.NewBoard(cfg.Rows, cfg.Width)
	}
	file, err := os.Open(cfg.BoardFile)
	if err != nil {
		log.Printf("failed opening file: %s", err)
		return nil, err
	}
	defer file.Close()
	return model.ReadBoard(file, cfg.Width)
}
