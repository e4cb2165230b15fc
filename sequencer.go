package sc2

import "fmt"

// TileSequencer produces the coordinates of a square grid in raster order:
// x runs from 0 to side-1 for each y, and y runs from 0 to side-1.
//
// Advancing past the last tile is an error rather than a wrap back to
// (0, 0), so a segment carrying too many tiles cannot silently overwrite
// the start of the grid.
type TileSequencer struct {
	side int
	next int // raster index of the tile returned by the next call to Next
}

// NewTileSequencer returns a sequencer positioned before tile (0, 0).
func NewTileSequencer(side int) *TileSequencer {
	return &TileSequencer{side: side}
}

// Next returns the next coordinate pair, or ErrTilesExhausted once all
// side*side pairs have been produced.
func (s *TileSequencer) Next() (x, y int, err error) {
	if s.next >= s.side*s.side {
		return 0, 0, fmt.Errorf("%w: all %d tiles of a %dx%d grid produced", ErrTilesExhausted, s.side*s.side, s.side, s.side)
	}
	x, y = s.next%s.side, s.next/s.side
	s.next++
	return x, y, nil
}

// Reset restarts the sequence at (0, 0).
func (s *TileSequencer) Reset() {
	s.next = 0
}

// Index reports how many coordinates have been produced since the last
// reset.
func (s *TileSequencer) Index() int {
	return s.next
}

// Remaining reports how many coordinates are left.
func (s *TileSequencer) Remaining() int {
	return s.side*s.side - s.next
}

// Side returns the grid edge length.
func (s *TileSequencer) Side() int {
	return s.side
}
