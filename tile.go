package sc2

// Flags is the set of utility flags of a tile.
type Flags uint8

const (
	FlagSalty Flags = 1 << iota
	FlagWaterCovered
	FlagWaterSupplied
	FlagPiped
	FlagPowered
	FlagConductive
)

// Has reports whether every flag in f2 is set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Underground is the structure found below a tile.
type Underground uint8

const (
	UndergroundNone Underground = iota
	UndergroundSubway
	UndergroundPipe
	UndergroundPipeAndSubway
	UndergroundTunnel
	UndergroundSubwayStation
)

var undergroundNames = [...]string{"none", "subway", "pipe", "pipe-and-subway", "tunnel", "subway-station"}

func (u Underground) String() string {
	if int(u) < len(undergroundNames) {
		return undergroundNames[u]
	}
	return "unknown"
}

// HasPipe reports whether the tile carries a water pipe.
func (u Underground) HasPipe() bool {
	return u == UndergroundPipe || u == UndergroundPipeAndSubway
}

// HasSubway reports whether the tile carries subway track.
func (u Underground) HasSubway() bool {
	return u == UndergroundSubway || u == UndergroundPipeAndSubway
}

// Zone is the zoning of a tile.
type Zone uint8

const (
	ZoneNone Zone = iota
	ZoneLightResidential
	ZoneDenseResidential
	ZoneLightCommercial
	ZoneDenseCommercial
	ZoneLightIndustrial
	ZoneDenseIndustrial
	ZoneMilitary
	ZoneAirport
	ZoneSeaport

	zoneCount
)

var zoneNames = [...]string{
	"none",
	"light-residential", "dense-residential",
	"light-commercial", "dense-commercial",
	"light-industrial", "dense-industrial",
	"military", "airport", "seaport",
}

func (z Zone) String() string {
	if z < zoneCount {
		return zoneNames[z]
	}
	return "unknown"
}

func (z Zone) IsResidential() bool { return z == ZoneLightResidential || z == ZoneDenseResidential }
func (z Zone) IsCommercial() bool  { return z == ZoneLightCommercial || z == ZoneDenseCommercial }
func (z Zone) IsIndustrial() bool  { return z == ZoneLightIndustrial || z == ZoneDenseIndustrial }

// Corners is the set of tile corners touched by a building's footprint.
// A 1x1 building has all four set.
type Corners uint8

const (
	CornerTopLeft Corners = 1 << iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// Has reports whether every corner in c2 is set in c.
func (c Corners) Has(c2 Corners) bool { return c&c2 == c2 }

// Tile is one cell of the city grid. Tile carries no sign text: label
// slots are not correlated with tile positions, see City.Signs.
type Tile struct {
	Altitude    int // meters
	Flags       Flags
	Underground Underground
	Zone        Zone
	Corners     Corners
	Building    byte // raw XBLD code
}

// Byte layouts of the per-tile segments. Bit 0 is the least significant.

var flagBits = [...]struct {
	mask byte
	flag Flags
}{
	{0x01, FlagSalty},
	{0x04, FlagWaterCovered},
	{0x10, FlagWaterSupplied},
	{0x20, FlagPiped},
	{0x40, FlagPowered},
	{0x80, FlagConductive},
}

var undergroundRanges = [...]struct {
	lo, hi byte
	item   Underground
}{
	{0x00, 0x00, UndergroundNone},
	{0x01, 0x0F, UndergroundSubway},
	{0x10, 0x1E, UndergroundPipe},
	{0x1F, 0x20, UndergroundPipeAndSubway},
	{0x21, 0x22, UndergroundTunnel},
	{0x23, 0x23, UndergroundSubwayStation},
}

const zoneMask = 0x0F

var cornerBits = [...]struct {
	mask   byte
	corner Corners
}{
	{0x10, CornerTopRight},
	{0x20, CornerBottomRight},
	{0x40, CornerBottomLeft},
	{0x80, CornerTopLeft},
}

const (
	altitudeMask = 0x1F
	altitudeStep = 50
	altitudeBase = 50
)

// FlagsFromByte decodes one XBIT byte. Bits 1 and 3 are ignored.
func FlagsFromByte(b byte) Flags {
	var f Flags
	for _, fb := range flagBits {
		if b&fb.mask != 0 {
			f |= fb.flag
		}
	}
	return f
}

// UndergroundFromByte decodes one XUND byte. The second result is false for
// codes outside the known ranges.
func UndergroundFromByte(b byte) (Underground, bool) {
	for _, r := range undergroundRanges {
		if b >= r.lo && b <= r.hi {
			return r.item, true
		}
	}
	return UndergroundNone, false
}

// ZoneFromByte decodes the zone nibble of an XZON byte. The second result is
// false for nibble values above 9.
func ZoneFromByte(b byte) (Zone, bool) {
	z := Zone(b & zoneMask)
	if z >= zoneCount {
		return ZoneNone, false
	}
	return z, true
}

// CornersFromByte decodes the corner bits of an XZON byte.
func CornersFromByte(b byte) Corners {
	var c Corners
	for _, cb := range cornerBits {
		if b&cb.mask != 0 {
			c |= cb.corner
		}
	}
	return c
}

// AltitudeFromBytes decodes one ALTM entry into meters. The first byte is
// not part of the altitude.
func AltitudeFromBytes(_, lo byte) int {
	return int(lo&altitudeMask)*altitudeStep + altitudeBase
}
