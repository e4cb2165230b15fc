package sc2

// MapKind identifies one of the per-tile simulation layers.
type MapKind uint8

const (
	MapPolice MapKind = iota
	MapFire
	MapPopulation
	MapPopulationGrowth
	MapTraffic
	MapPollution
	MapPropertyValue
	MapCrime

	mapKindCount
)

var mapKindNames = [mapKindCount]string{
	"police", "fire", "population", "population-growth",
	"traffic", "pollution", "property-value", "crime",
}

func (k MapKind) String() string {
	if k < mapKindCount {
		return mapKindNames[k]
	}
	return "unknown"
}

// MapKinds returns every map kind.
func MapKinds() []MapKind {
	out := make([]MapKind, mapKindCount)
	for i := range out {
		out[i] = MapKind(i)
	}
	return out
}

// integerMapSegments maps segment tags to the layer they carry.
var integerMapSegments = map[string]MapKind{
	"XPLC": MapPolice,
	"XFIR": MapFire,
	"XPOP": MapPopulation,
	"XROG": MapPopulationGrowth,
	"XTRF": MapTraffic,
	"XPLT": MapPollution,
	"XVAL": MapPropertyValue,
	"XCRM": MapCrime,
}

// coarseBlockSizes lists the block edges of the coarse map layouts, keyed by
// payload length. They are only accepted with WithCoarseMaps.
var coarseBlockSizes = map[int]int{
	TileCount / (2 * 2): 2,
	TileCount / (4 * 4): 4,
}
