package asset

// Template drives synthetic generation for one asset subcategory.
type Template struct {
	Category        string
	Subcategory     string
	PriceMin        float64
	PriceMax        float64
	BaseMaintenance float64 // fraction of purchase price per year
	Manufacturers   []string
	TypicalLifetime float64
	UsagePatterns   []string
	Weight          int
	NamePrefix      string
}

// Site is a company location with a regional cost factor. Weight controls
// how often the generator places assets there.
type Site struct {
	Name       string
	Country    string
	CostFactor float64
	Weight     int
	Code       string
}

func Templates() []Template {
	return []Template{
		{CategoryIT, "Server", 5000, 25000, 0.18, []string{"Dell", "HP", "Lenovo", "IBM"}, 5, []string{UsageContinuous, UsageExtended}, 10, "SRV"},
		{CategoryIT, "Laptop", 800, 3500, 0.12, []string{"Dell", "HP", "Lenovo", "Apple"}, 4, []string{UsageStandard, UsageExtended}, 8, "LAP"},
		{CategoryIT, "Workstation", 2000, 8000, 0.15, []string{"Dell", "HP", "Lenovo"}, 5, []string{UsageStandard, UsageExtended}, 5, "WS"},
		{CategoryIT, "Network", 1000, 15000, 0.10, []string{"Cisco", "HP", "Dell", "Netgear"}, 7, []string{UsageContinuous}, 3, "NET"},
		{CategoryIndustrial, "Separator", 80000, 300000, 0.14, []string{"GEA", "Alfa Laval", "Flottweg"}, 15, []string{UsageContinuous, UsageStandard}, 4, "SEP"},
		{CategoryIndustrial, "Homogenizer", 60000, 200000, 0.16, []string{"GEA", "Tetra Pak", "APV"}, 12, []string{UsageExtended, UsageContinuous}, 3, "HOM"},
		{CategoryIndustrial, "Pump", 5000, 80000, 0.12, []string{"GEA", "Grundfos", "KSB", "Alfa Laval"}, 10, []string{UsageContinuous, UsageExtended}, 6, "PMP"},
		{CategoryIndustrial, "Pasteurizer", 100000, 500000, 0.13, []string{"GEA", "Tetra Pak", "SPX"}, 20, []string{UsageExtended, UsageContinuous}, 2, "PST"},
		{CategorySoftware, "ERP", 50000, 500000, 0.20, []string{"SAP", "Oracle", "Microsoft"}, 7, []string{UsageContinuous}, 3, "SW-ERP"},
		{CategorySoftware, "CAD", 5000, 50000, 0.18, []string{"Autodesk", "Siemens", "SolidWorks"}, 5, []string{UsageStandard}, 4, "SW-CAD"},
		{CategoryVehicles, "Car", 25000, 80000, 0.08, []string{"BMW", "Mercedes", "VW", "Audi"}, 8, []string{UsageStandard, UsageOccasional}, 6, "CAR"},
		{CategoryVehicles, "Truck", 80000, 200000, 0.12, []string{"MAN", "Mercedes", "Volvo", "Scania"}, 10, []string{UsageExtended, UsageContinuous}, 4, "TRK"},
	}
}

func Sites() []Site {
	return []Site{
		{"Duesseldorf (HQ)", "DE", 0.95, 25, "DUS"},
		{"Oelde", "DE", 1.00, 20, "OEL"},
		{"Berlin", "DE", 1.05, 15, "BER"},
		{"Hamburg", "DE", 1.03, 10, "HH"},
		{"Munich", "DE", 1.08, 8, "MUC"},
		{"Copenhagen", "DK", 1.15, 5, "CPH"},
		{"Milan", "IT", 1.12, 4, "MIL"},
		{"Lyon", "FR", 1.10, 3, "LYO"},
		{"Shanghai", "CN", 0.85, 5, "SHA"},
		{"Singapore", "SG", 1.20, 2, "SIN"},
		{"Chicago", "US", 1.25, 2, "CHI"},
		{"Sao Paulo", "BR", 0.75, 1, "SAO"},
	}
}

// SiteByName returns the site or a neutral default for unknown locations.
func SiteByName(name string) Site {
	for _, s := range Sites() {
		if s.Name == name {
			return s
		}
	}
	return Site{Name: name, CostFactor: 1.0, Code: "XXX"}
}

// ManufacturerFactors captures premium vs budget service pricing.
func ManufacturerFactors() map[string]float64 {
	return map[string]float64{
		"Dell": 1.05, "Siemens": 1.15, "GEA": 1.10, "SAP": 1.20, "BMW": 1.15,
		"Cisco": 1.10, "Autodesk": 1.05, "Mercedes": 1.20,
		"HP": 1.00, "Lenovo": 0.95, "Alfa Laval": 1.00, "Microsoft": 1.00,
		"Oracle": 1.10, "VW": 0.90, "MAN": 1.00,
		"Netgear": 0.85, "Grundfos": 0.95, "KSB": 0.90, "Volvo": 1.05,
	}
}

// ManufacturersByCategory lists selectable manufacturers for the intake form.
func ManufacturersByCategory() map[string][]string {
	out := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, t := range Templates() {
		if seen[t.Category] == nil {
			seen[t.Category] = make(map[string]bool)
		}
		for _, m := range t.Manufacturers {
			if !seen[t.Category][m] {
				seen[t.Category][m] = true
				out[t.Category] = append(out[t.Category], m)
			}
		}
	}
	return out
}
