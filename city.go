package sc2

import "slices"

// City is a decoded save file. A City returned by Decode is not modified
// afterwards and its accessors return copies, so it may be shared between
// goroutines.
type City struct {
	name     string
	mayor    string
	tiles    []Tile // raster order, index x + y*TilesPerSide
	maps     map[MapKind][]byte
	stats    map[Statistic]int32
	misc     []int32
	signs    []string
	segments []string
}

func newCity() *City {
	return &City{
		tiles: make([]Tile, TileCount),
		maps:  make(map[MapKind][]byte),
		stats: make(map[Statistic]int32),
	}
}

// Name returns the city's name.
func (c *City) Name() string { return c.name }

// MayorName returns the name stored in label slot 0.
func (c *City) MayorName() string { return c.mayor }

// Signs returns the texts of label slots 1 to 255 in slot order, one entry
// per slot: Signs()[i] is slot i+1, and unused slots are empty strings.
// A quick decode reads no signs and returns nil.
func (c *City) Signs() []string { return slices.Clone(c.signs) }

// Segments returns the tags of the segments that were decoded, in file
// order. Skipped segments are not included.
func (c *City) Segments() []string { return slices.Clone(c.segments) }

// Tile returns the tile at (x, y). The second result is false when the
// coordinates are outside the grid.
func (c *City) Tile(x, y int) (Tile, bool) {
	if !inGrid(x, y) {
		return Tile{}, false
	}
	return c.tiles[tileIndex(x, y)], true
}

// Map returns a copy of a simulation layer, TileCount values in raster
// order. The second result is false if the file had no such layer.
func (c *City) Map(kind MapKind) ([]byte, bool) {
	m, ok := c.maps[kind]
	if !ok {
		return nil, false
	}
	return slices.Clone(m), true
}

// MapValue returns one value of a simulation layer.
func (c *City) MapValue(kind MapKind, x, y int) (byte, bool) {
	m, ok := c.maps[kind]
	if !ok || !inGrid(x, y) {
		return 0, false
	}
	return m[tileIndex(x, y)], true
}

// Statistic returns a named MISC value. The second result is false if the
// file had no MISC segment.
func (c *City) Statistic(s Statistic) (int32, bool) {
	v, ok := c.stats[s]
	return v, ok
}

// MiscValue returns the MISC value at position i, including positions that
// have no Statistic name.
func (c *City) MiscValue(i int) (int32, bool) {
	if i < 0 || i >= len(c.misc) {
		return 0, false
	}
	return c.misc[i], true
}

// MiscValues returns a copy of every MISC value.
func (c *City) MiscValues() []int32 { return slices.Clone(c.misc) }

// ZoneCounts returns the number of tiles in each zone.
func (c *City) ZoneCounts() map[Zone]int {
	counts := make(map[Zone]int)
	for _, t := range c.tiles {
		counts[t.Zone]++
	}
	return counts
}

// The remaining methods are used by the segment decoders only.

func (c *City) tileAt(x, y int) *Tile {
	return &c.tiles[tileIndex(x, y)]
}

func (c *City) setMap(kind MapKind, values []byte) {
	c.maps[kind] = values
}

func (c *City) setMisc(values []int32) {
	c.misc = values
	for s, i := range statisticIndex {
		c.stats[Statistic(s)] = values[i]
	}
}

func inGrid(x, y int) bool {
	return x >= 0 && x < TilesPerSide && y >= 0 && y < TilesPerSide
}

func tileIndex(x, y int) int {
	return x + y*TilesPerSide
}
