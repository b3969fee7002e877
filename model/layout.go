package model

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadBoard parses a square text layout into a board drawn on a canvas of
// the given width. Each line is a row: '.' empty, '#' barrier, 'S' start,
// 'E' end. Blank lines are skipped.
func ReadBoard(reader io.Reader, width int) (*Board, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	lines := make([]string, 0)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			continue
		}
		lines = append(lines, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	rows := len(lines)
	if rows == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadLayout)
	}

	b, err := NewBoard(rows, width)
	if err != nil {
		return nil, err
	}
	for r, line := range lines {
		runes := []rune(line)
		if len(runes) != rows {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadLayout, r, len(runes), rows)
		}
		for c, char := range runes {
			switch char {
			case '.':
			case '#':
				err = b.SetBarrier(r, c)
			case 'S':
				err = b.SetStart(r, c)
			case 'E':
				err = b.SetEnd(r, c)
			default:
				err = fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrBadLayout, char, r, c)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}
