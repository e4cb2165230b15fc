// Package sc2 decodes SC2 city save files into an in-memory City.
//
// An SC2 file is an IFF-style container: a 12-byte header followed by named,
// length-prefixed segments. Most segments are compressed with the scheme in
// package rle. Decode reads every segment it understands; DecodeQuick reads
// only the city name, the statistics and the mayor's name.
package sc2

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
)

const (
	// TilesPerSide is the edge length of the square city grid.
	TilesPerSide = 128
	// TileCount is the number of tiles in a city.
	TileCount = TilesPerSide * TilesPerSide

	headerSize        = 12
	segmentHeaderSize = 8

	containerSignature = "FORM"
	containerType      = "SCDH"

	// Files this large are rejected without looking at them.
	maxContainerSize = 307200
)

var (
	// ErrInvalidContainer reports a stream that is not an SC2 container.
	ErrInvalidContainer = errors.New("invalid container")
	// ErrMalformedSegment reports a segment whose framing or payload does
	// not match its type.
	ErrMalformedSegment = errors.New("malformed segment")
	// ErrStatisticIndex reports a MISC segment too short for the statistic
	// table.
	ErrStatisticIndex = errors.New("statistic index out of range")
	// ErrTilesExhausted reports a tile sequence advanced past its last tile.
	ErrTilesExhausted = errors.New("tile sequence exhausted")
)

// SegmentError describes a failure while reading or decoding one segment.
type SegmentError struct {
	Name   string // segment tag, e.g. "XZON"
	Offset int64  // file offset of the segment header
	Index  int    // position of the segment in the file, counting from 0
	Err    error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("decode segment %q at offset %d (segment index %d): %v", e.Name, e.Offset, e.Index, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// BuildingPlacer receives the raw building code of every tile while an XBLD
// segment is decoded. The code is not interpreted by this package.
type BuildingPlacer interface {
	PlaceBuilding(x, y int, code byte) error
}

// Config holds decoder configuration.
type Config struct {
	Quick     bool               // read only CNAM, MISC and the mayor's XLAB slot
	Logger    logrus.FieldLogger // nil discards log output
	Buildings BuildingPlacer     // optional building collaborator
	Charmap   *charmap.Charmap   // text encoding of names and labels (nil = Windows-1252)

	// CoarseMaps accepts integer maps stored at 64x64 or 32x32 and
	// expands them to the tile grid. Without it a map must hold exactly
	// TileCount values.
	CoarseMaps bool
}

// Option is a functional option for configuring the decoder.
type Option func(*Config)

// WithQuick restricts decoding to the city name, statistics and mayor name.
func WithQuick() Option {
	return func(c *Config) {
		c.Quick = true
	}
}

// WithLogger sets the logger that receives debug output about skipped and
// decoded segments.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithBuildingPlacer installs a collaborator that is handed every XBLD code.
func WithBuildingPlacer(p BuildingPlacer) Option {
	return func(c *Config) {
		c.Buildings = p
	}
}

// WithCharmap sets the code page used for city names and labels. Saves made
// on the Macintosh use charmap.Macintosh.
func WithCharmap(cm *charmap.Charmap) Option {
	return func(c *Config) {
		c.Charmap = cm
	}
}

// WithCoarseMaps accepts integer maps stored at a coarser resolution than
// the tile grid, copying each value over its block of tiles.
func WithCoarseMaps() Option {
	return func(c *Config) {
		c.CoarseMaps = true
	}
}

func newConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}
	if cfg.Charmap == nil {
		cfg.Charmap = charmap.Windows1252
	}
	return cfg
}
