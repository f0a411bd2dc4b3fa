package catalog

// vehicleEmissions maps category -> technology -> emissions factor.
// Values follow DEFRA greenhouse gas conversion factors (kgCO2e per km).
var vehicleEmissions = map[string]map[string]Factor{
	"Passenger Cars": {
		"Petrol Car (Mini)":   {Tailpipe: 0.120, Lifecycle: 0.150},
		"Petrol Car (Small)":  {Tailpipe: 0.150, Lifecycle: 0.180},
		"Petrol Car (Medium)": {Tailpipe: 0.180, Lifecycle: 0.210},
		"Petrol Car (Large)":  {Tailpipe: 0.220, Lifecycle: 0.250},
		"Petrol Car (Luxury)": {Tailpipe: 0.280, Lifecycle: 0.310},
		"Petrol Car (Sports)": {Tailpipe: 0.320, Lifecycle: 0.350},

		"Diesel Car (Mini)":   {Tailpipe: 0.110, Lifecycle: 0.140},
		"Diesel Car (Small)":  {Tailpipe: 0.140, Lifecycle: 0.170},
		"Diesel Car (Medium)": {Tailpipe: 0.170, Lifecycle: 0.200},
		"Diesel Car (Large)":  {Tailpipe: 0.200, Lifecycle: 0.230},
		"Diesel Car (Luxury)": {Tailpipe: 0.250, Lifecycle: 0.280},

		"Hybrid Car (Mild Petrol)": {Tailpipe: 0.140, Lifecycle: 0.180},
		"Hybrid Car (Full Petrol)": {Tailpipe: 0.130, Lifecycle: 0.170},
		"Hybrid Car (Mild Diesel)": {Tailpipe: 0.130, Lifecycle: 0.170},
		"Hybrid Car (Full Diesel)": {Tailpipe: 0.120, Lifecycle: 0.160},
		"Plug-in Hybrid (PHEV)":    {Tailpipe: 0.070, Lifecycle: 0.135},

		"Battery Electric Car (Mini)":   {Tailpipe: 0, Lifecycle: 0.055},
		"Battery Electric Car (Small)":  {Tailpipe: 0, Lifecycle: 0.060},
		"Battery Electric Car (Medium)": {Tailpipe: 0, Lifecycle: 0.065},
		"Battery Electric Car (Large)":  {Tailpipe: 0, Lifecycle: 0.070},
		"Battery Electric Car (Luxury)": {Tailpipe: 0, Lifecycle: 0.075},

		"Hydrogen Car (FCEV)": {Tailpipe: 0, Lifecycle: 0.040},
		"Hydrogen Car (ICE)":  {Tailpipe: 0.080, Lifecycle: 0.120},
	},
	"Buses": {
		"Diesel Bus (Mini)":        {Tailpipe: 0.750, Lifecycle: 0.850},
		"Diesel Bus (Single Deck)": {Tailpipe: 0.850, Lifecycle: 0.950},
		"Diesel Bus (Double Deck)": {Tailpipe: 0.950, Lifecycle: 1.050},
		"Diesel Bus (Articulated)": {Tailpipe: 1.100, Lifecycle: 1.200},
		"Diesel Bus (Coach)":       {Tailpipe: 1.050, Lifecycle: 1.150},

		"Hybrid Diesel Bus (Single Deck)": {Tailpipe: 0.650, Lifecycle: 0.750},
		"Hybrid Diesel Bus (Double Deck)": {Tailpipe: 0.750, Lifecycle: 0.850},

		"Battery Electric Bus (Mini)":        {Tailpipe: 0, Lifecycle: 0.220},
		"Battery Electric Bus (Single Deck)": {Tailpipe: 0, Lifecycle: 0.250},
		"Battery Electric Bus (Double Deck)": {Tailpipe: 0, Lifecycle: 0.280},
		"Battery Electric Bus (Articulated)": {Tailpipe: 0, Lifecycle: 0.320},

		"Hydrogen Bus (FCEV)": {Tailpipe: 0, Lifecycle: 0.200},
		"Hydrogen Bus (ICE)":  {Tailpipe: 0.400, Lifecycle: 0.500},
	},
	"Heavy Goods Vehicles (HGVs)": {
		"Diesel Rigid HGV (3.5-7.5t)":       {Tailpipe: 0.750, Lifecycle: 0.850},
		"Diesel Rigid HGV (7.5-17t)":        {Tailpipe: 0.850, Lifecycle: 0.950},
		"Diesel Rigid HGV (17-26t)":         {Tailpipe: 0.950, Lifecycle: 1.050},
		"Diesel Rigid HGV (26-32t)":         {Tailpipe: 1.050, Lifecycle: 1.150},
		"Diesel Articulated HGV (26-33t)":   {Tailpipe: 1.050, Lifecycle: 1.150},
		"Diesel Articulated HGV (33-44t)":   {Tailpipe: 1.150, Lifecycle: 1.250},
		"Diesel Articulated HGV (>44t)":     {Tailpipe: 1.250, Lifecycle: 1.350},

		"Battery Electric HGV (Rigid 7.5-17t)":      {Tailpipe: 0, Lifecycle: 0.280},
		"Battery Electric HGV (Rigid 17-26t)":       {Tailpipe: 0, Lifecycle: 0.300},
		"Battery Electric HGV (Articulated 26-33t)": {Tailpipe: 0, Lifecycle: 0.350},
		"Battery Electric HGV (Articulated 33-44t)": {Tailpipe: 0, Lifecycle: 0.400},

		"Hydrogen HGV (FCEV Rigid)":       {Tailpipe: 0, Lifecycle: 0.275},
		"Hydrogen HGV (FCEV Articulated)": {Tailpipe: 0, Lifecycle: 0.325},
	},
	"Vans / Light Goods Vehicles (LGVs)": {
		"Diesel Van (Mini)":        {Tailpipe: 0.180, Lifecycle: 0.230},
		"Diesel Van (Small)":       {Tailpipe: 0.220, Lifecycle: 0.270},
		"Diesel Van (Medium)":      {Tailpipe: 0.250, Lifecycle: 0.300},
		"Diesel Van (Large)":       {Tailpipe: 0.280, Lifecycle: 0.330},
		"Diesel Van (Extra Large)": {Tailpipe: 0.320, Lifecycle: 0.370},

		"Electric Van (Mini)":        {Tailpipe: 0, Lifecycle: 0.100},
		"Electric Van (Small)":       {Tailpipe: 0, Lifecycle: 0.110},
		"Electric Van (Medium)":      {Tailpipe: 0, Lifecycle: 0.120},
		"Electric Van (Large)":       {Tailpipe: 0, Lifecycle: 0.130},
		"Electric Van (Extra Large)": {Tailpipe: 0, Lifecycle: 0.140},

		"Hydrogen Van (FCEV)": {Tailpipe: 0, Lifecycle: 0.140},
		"Hydrogen Van (ICE)":  {Tailpipe: 0.120, Lifecycle: 0.180},
	},
	"Motorcycles": {
		"Petrol Motorcycle (50cc)":    {Tailpipe: 0.060, Lifecycle: 0.080},
		"Petrol Motorcycle (125cc)":   {Tailpipe: 0.080, Lifecycle: 0.100},
		"Petrol Motorcycle (250cc)":   {Tailpipe: 0.100, Lifecycle: 0.120},
		"Petrol Motorcycle (500cc)":   {Tailpipe: 0.120, Lifecycle: 0.140},
		"Petrol Motorcycle (750cc)":   {Tailpipe: 0.140, Lifecycle: 0.160},
		"Petrol Motorcycle (1000cc+)": {Tailpipe: 0.160, Lifecycle: 0.180},

		"Electric Motorcycle (Small)":         {Tailpipe: 0, Lifecycle: 0.025},
		"Electric Motorcycle (Medium)":        {Tailpipe: 0, Lifecycle: 0.030},
		"Electric Motorcycle (Large)":         {Tailpipe: 0, Lifecycle: 0.035},
		"Electric Scooter (50cc equivalent)":  {Tailpipe: 0, Lifecycle: 0.020},
		"Electric Scooter (125cc equivalent)": {Tailpipe: 0, Lifecycle: 0.025},
	},
	"Specialist Vehicles": {
		"Agricultural Tractor (Small)":      {Tailpipe: 1.500, Lifecycle: 1.700},
		"Agricultural Tractor (Medium)":     {Tailpipe: 2.000, Lifecycle: 2.200},
		"Agricultural Tractor (Large)":      {Tailpipe: 2.500, Lifecycle: 2.700},
		"Construction Vehicle (Excavator)":  {Tailpipe: 2.200, Lifecycle: 2.400},
		"Construction Vehicle (Bulldozer)":  {Tailpipe: 2.800, Lifecycle: 3.000},
		"Construction Vehicle (Crane)":      {Tailpipe: 1.800, Lifecycle: 2.000},

		"Emergency Vehicle (Ambulance)":   {Tailpipe: 0.950, Lifecycle: 1.050},
		"Emergency Vehicle (Fire Engine)": {Tailpipe: 1.100, Lifecycle: 1.200},
		"Emergency Vehicle (Police Car)":  {Tailpipe: 0.200, Lifecycle: 0.230},
		"Service Vehicle (Refuse Truck)":  {Tailpipe: 1.300, Lifecycle: 1.400},
		"Service Vehicle (Street Sweeper)": {Tailpipe: 0.900, Lifecycle: 1.000},

		"Electric Agricultural Tractor": {Tailpipe: 0, Lifecycle: 0.400},
		"Electric Construction Vehicle": {Tailpipe: 0, Lifecycle: 0.500},
		"Electric Emergency Vehicle":    {Tailpipe: 0, Lifecycle: 0.250},
		"Electric Service Vehicle":      {Tailpipe: 0, Lifecycle: 0.300},
	},
}

// vehicleUsage maps category -> technology -> default annual mileage
// (miles per year), based on DfT usage statistics.
var vehicleUsage = map[string]map[string]float64{
	"Passenger Cars": {
		"Petrol Car (Mini)":   6000,
		"Petrol Car (Small)":  8000,
		"Petrol Car (Medium)": 10000,
		"Petrol Car (Large)":  12000,
		"Petrol Car (Luxury)": 15000,
		"Petrol Car (Sports)": 8000,

		"Diesel Car (Mini)":   8000,
		"Diesel Car (Small)":  12000,
		"Diesel Car (Medium)": 15000,
		"Diesel Car (Large)":  18000,
		"Diesel Car (Luxury)": 20000,

		"Hybrid Car (Mild Petrol)": 8500,
		"Hybrid Car (Full Petrol)": 9000,
		"Hybrid Car (Mild Diesel)": 10500,
		"Hybrid Car (Full Diesel)": 11000,
		"Plug-in Hybrid (PHEV)":    8000,

		"Battery Electric Car (Mini)":   5500,
		"Battery Electric Car (Small)":  7000,
		"Battery Electric Car (Medium)": 8000,
		"Battery Electric Car (Large)":  9000,
		"Battery Electric Car (Luxury)": 10000,

		"Hydrogen Car (FCEV)": 8000,
		"Hydrogen Car (ICE)":  10000,
	},
	"Buses": {
		"Diesel Bus (Mini)":        20000,
		"Diesel Bus (Single Deck)": 25000,
		"Diesel Bus (Double Deck)": 30000,
		"Diesel Bus (Articulated)": 35000,
		"Diesel Bus (Coach)":       40000,

		"Hybrid Diesel Bus (Single Deck)": 25000,
		"Hybrid Diesel Bus (Double Deck)": 30000,

		"Battery Electric Bus (Mini)":        20000,
		"Battery Electric Bus (Single Deck)": 25000,
		"Battery Electric Bus (Double Deck)": 30000,
		"Battery Electric Bus (Articulated)": 35000,

		"Hydrogen Bus (FCEV)": 25000,
		"Hydrogen Bus (ICE)":  25000,
	},
	"Heavy Goods Vehicles (HGVs)": {
		"Diesel Rigid HGV (3.5-7.5t)":     12000,
		"Diesel Rigid HGV (7.5-17t)":      15000,
		"Diesel Rigid HGV (17-26t)":       20000,
		"Diesel Rigid HGV (26-32t)":       25000,
		"Diesel Articulated HGV (26-33t)": 35000,
		"Diesel Articulated HGV (33-44t)": 40000,
		"Diesel Articulated HGV (>44t)":   45000,

		"Battery Electric HGV (Rigid 7.5-17t)":      15000,
		"Battery Electric HGV (Rigid 17-26t)":       20000,
		"Battery Electric HGV (Articulated 26-33t)": 25000,
		"Battery Electric HGV (Articulated 33-44t)": 30000,

		"Hydrogen HGV (FCEV Rigid)":       20000,
		"Hydrogen HGV (FCEV Articulated)": 25000,
	},
	"Vans / Light Goods Vehicles (LGVs)": {
		"Diesel Van (Mini)":        8000,
		"Diesel Van (Small)":       12000,
		"Diesel Van (Medium)":      15000,
		"Diesel Van (Large)":       18000,
		"Diesel Van (Extra Large)": 22000,

		"Electric Van (Mini)":        7000,
		"Electric Van (Small)":       10000,
		"Electric Van (Medium)":      12000,
		"Electric Van (Large)":       15000,
		"Electric Van (Extra Large)": 18000,

		"Hydrogen Van (FCEV)": 12000,
		"Hydrogen Van (ICE)":  15000,
	},
	"Motorcycles": {
		"Petrol Motorcycle (50cc)":    2000,
		"Petrol Motorcycle (125cc)":   3000,
		"Petrol Motorcycle (250cc)":   5000,
		"Petrol Motorcycle (500cc)":   8000,
		"Petrol Motorcycle (750cc)":   10000,
		"Petrol Motorcycle (1000cc+)": 12000,

		"Electric Motorcycle (Small)":         3500,
		"Electric Motorcycle (Medium)":        4000,
		"Electric Motorcycle (Large)":         5000,
		"Electric Scooter (50cc equivalent)":  2000,
		"Electric Scooter (125cc equivalent)": 2500,
	},
	"Specialist Vehicles": {
		"Agricultural Tractor (Small)":     800,
		"Agricultural Tractor (Medium)":    1200,
		"Agricultural Tractor (Large)":     1500,
		"Construction Vehicle (Excavator)": 2000,
		"Construction Vehicle (Bulldozer)": 1800,
		"Construction Vehicle (Crane)":     1500,

		"Emergency Vehicle (Ambulance)":    30000,
		"Emergency Vehicle (Fire Engine)":  25000,
		"Emergency Vehicle (Police Car)":   35000,
		"Service Vehicle (Refuse Truck)":   20000,
		"Service Vehicle (Street Sweeper)": 15000,

		"Electric Agricultural Tractor": 800,
		"Electric Construction Vehicle": 2000,
		"Electric Emergency Vehicle":    30000,
		"Electric Service Vehicle":      20000,
	},
}
