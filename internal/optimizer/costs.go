package optimizer

// categoryCosts holds simplified per-mile operating costs by powertrain
// class, used for the indicative cost series. In practice these would
// come from a detailed cost model.
type categoryCosts struct {
	fossil   float64
	electric float64
	hydrogen float64
}

var costTable = map[string]categoryCosts{
	"Passenger Cars":                     {fossil: 0.12, electric: 0.08, hydrogen: 0.15},
	"Buses":                              {fossil: 0.25, electric: 0.18, hydrogen: 0.22},
	"Heavy Goods Vehicles (HGVs)":        {fossil: 0.35, electric: 0.28, hydrogen: 0.32},
	"Vans / Light Goods Vehicles (LGVs)": {fossil: 0.20, electric: 0.15, hydrogen: 0.18},
	"Motorcycles":                        {fossil: 0.08, electric: 0.05, hydrogen: 0.10},
}

// defaultCosts applies to categories without an entry in the table.
var defaultCosts = categoryCosts{fossil: 0.20, electric: 0.15, hydrogen: 0.20}

// costFactors returns the cost profile for a vehicle category.
func costFactors(category string) categoryCosts {
	if c, ok := costTable[category]; ok {
		return c
	}
	return defaultCosts
}
