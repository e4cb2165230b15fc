package sc2

import "fmt"

// Statistic names a value stored at a fixed position of the MISC segment.
type Statistic int

const (
	StatYearOfFounding Statistic = iota
	StatDaysSinceFounding
	StatAvailableFunds
	StatWorkforcePercentage
	StatLifeExpectancy
	StatEducationQuotient
	StatNeighborSize1
	StatNeighborSize2
	StatNeighborSize3
	StatNeighborSize4
	StatCitySize

	// Per-industry statistics follow; see IndustryDemand, IndustryTaxRate
	// and IndustryRatio.
	statIndustryDemand
	statIndustryTaxRate = statIndustryDemand + Statistic(industryCount)
	statIndustryRatio   = statIndustryTaxRate + Statistic(industryCount)
	statisticCount      = statIndustryRatio + Statistic(industryCount)
)

// Industry is one of the city's industry sectors.
type Industry int

const (
	IndustrySteelMining Industry = iota
	IndustryTextiles
	IndustryPetrochemical
	IndustryFood
	IndustryConstruction
	IndustryAutomotive
	IndustryAerospace
	IndustryFinance
	IndustryMedia
	IndustryElectronics
	IndustryTourism

	industryCount = 11
)

var industryNames = [industryCount]string{
	"steel-mining", "textiles", "petrochemical", "food", "construction",
	"automotive", "aerospace", "finance", "media", "electronics", "tourism",
}

func (i Industry) String() string {
	if i >= 0 && i < industryCount {
		return industryNames[i]
	}
	return fmt.Sprintf("industry(%d)", int(i))
}

// IndustryDemand returns the demand statistic of an industry.
func IndustryDemand(i Industry) Statistic { return statIndustryDemand + Statistic(i) }

// IndustryTaxRate returns the tax rate statistic of an industry.
func IndustryTaxRate(i Industry) Statistic { return statIndustryTaxRate + Statistic(i) }

// IndustryRatio returns the share of the workforce employed by an industry.
func IndustryRatio(i Industry) Statistic { return statIndustryRatio + Statistic(i) }

// MISC positions. The industry tables are 12 entries wide; the last entry
// of each is unused.
const (
	miscYearOfFounding      = 3
	miscDaysSinceFounding   = 4
	miscAvailableFunds      = 5
	miscWorkforcePercentage = 17
	miscLifeExpectancy      = 18
	miscEducationQuotient   = 19
	miscNeighborBase        = 439
	miscNeighborStride      = 4
	miscCitySize            = 1035
	miscIndustryRatioBase   = 1050
	miscIndustryTaxBase     = 1062
	miscIndustryDemandBase  = 1074
	miscIndustryStride      = 12
)

var statisticIndex = func() [statisticCount]int {
	var idx [statisticCount]int
	idx[StatYearOfFounding] = miscYearOfFounding
	idx[StatDaysSinceFounding] = miscDaysSinceFounding
	idx[StatAvailableFunds] = miscAvailableFunds
	idx[StatWorkforcePercentage] = miscWorkforcePercentage
	idx[StatLifeExpectancy] = miscLifeExpectancy
	idx[StatEducationQuotient] = miscEducationQuotient
	for n, s := range []Statistic{StatNeighborSize1, StatNeighborSize2, StatNeighborSize3, StatNeighborSize4} {
		idx[s] = miscNeighborBase + n*miscNeighborStride
	}
	idx[StatCitySize] = miscCitySize
	for i := Industry(0); i < industryCount; i++ {
		idx[IndustryRatio(i)] = miscIndustryRatioBase + int(i)
		idx[IndustryTaxRate(i)] = miscIndustryTaxBase + int(i)
		idx[IndustryDemand(i)] = miscIndustryDemandBase + int(i)
	}
	return idx
}()

// minMiscValues is the number of MISC values needed to resolve every
// statistic.
var minMiscValues = func() int {
	hi := 0
	for _, i := range statisticIndex {
		hi = max(hi, i)
	}
	return hi + 1
}()

var statisticNames = [...]string{
	StatYearOfFounding:      "year-of-founding",
	StatDaysSinceFounding:   "days-since-founding",
	StatAvailableFunds:      "available-funds",
	StatWorkforcePercentage: "workforce-percentage",
	StatLifeExpectancy:      "life-expectancy",
	StatEducationQuotient:   "education-quotient",
	StatNeighborSize1:       "neighbor-size-1",
	StatNeighborSize2:       "neighbor-size-2",
	StatNeighborSize3:       "neighbor-size-3",
	StatNeighborSize4:       "neighbor-size-4",
	StatCitySize:            "city-size",
}

func (s Statistic) String() string {
	switch {
	case s >= 0 && int(s) < len(statisticNames):
		return statisticNames[s]
	case s >= statIndustryDemand && s < statIndustryTaxRate:
		return "demand/" + Industry(s-statIndustryDemand).String()
	case s >= statIndustryTaxRate && s < statIndustryRatio:
		return "tax-rate/" + Industry(s-statIndustryTaxRate).String()
	case s >= statIndustryRatio && s < statisticCount:
		return "ratio/" + Industry(s-statIndustryRatio).String()
	}
	return fmt.Sprintf("statistic(%d)", int(s))
}

// MiscIndex returns the MISC position a statistic is read from.
func (s Statistic) MiscIndex() (int, bool) {
	if s < 0 || s >= statisticCount {
		return 0, false
	}
	return statisticIndex[s], true
}

// Statistics returns every named statistic in declaration order.
func Statistics() []Statistic {
	out := make([]Statistic, statisticCount)
	for i := range out {
		out[i] = Statistic(i)
	}
	return out
}
