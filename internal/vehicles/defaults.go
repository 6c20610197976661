package vehicles

// DefaultModels returns the built-in model/generation/trim taxonomy covering
// every model and trim spec §4.3 names as recognized. It is the seed the
// config loader falls back to when a `[vehicles.models]` TOML table isn't
// supplied, and is fully overridable the way the original's config-only
// catalog is.
func DefaultModels() []Model {
	return []Model{
		{
			Name:     "Cayman",
			Synonyms: []string{"Cayman"},
			Trims:    []Trim{{Name: "Base"}},
			Generations: []Generation{
				{Code: "987.1", MinYear: 2006, MaxYear: 2008, Trims: simpleTrims("Base", "S", "R")},
				{Code: "987.2", MinYear: 2009, MaxYear: 2012, Trims: simpleTrims("Base", "S", "R")},
				{Code: "981", MinYear: 2013, MaxYear: 2016, Trims: simpleTrims("Base", "S", "GTS", "GT4")},
				{Code: "982", MinYear: 2017, MaxYear: 2024, Trims: simpleTrims("Base", "S", "GTS", "GT4", "GT4 RS")},
			},
		},
		{
			Name:     "Boxster",
			Synonyms: []string{"Boxster"},
			Trims:    []Trim{{Name: "Base"}},
			Generations: []Generation{
				{Code: "986", MinYear: 1997, MaxYear: 2004, Trims: simpleTrims("Base", "S")},
				{Code: "987.1", MinYear: 2005, MaxYear: 2008, Trims: simpleTrims("Base", "S")},
				{Code: "987.2", MinYear: 2009, MaxYear: 2012, Trims: simpleTrims("Base", "S", "Spyder")},
				{Code: "981", MinYear: 2013, MaxYear: 2016, Trims: simpleTrims("Base", "S", "GTS", "Spyder")},
				{Code: "982", MinYear: 2017, MaxYear: 2024, Trims: simpleTrims("Base", "S", "GTS", "Spyder")},
			},
		},
		{
			Name:     "911",
			Synonyms: []string{"911"},
			Trims:    []Trim{{Name: "Carrera"}},
			Generations: []Generation{
				{Code: "996", MinYear: 1999, MaxYear: 2004, Trims: simpleTrims("Carrera", "Carrera 4", "Carrera 4S", "Targa", "Turbo", "GT3", "GT2")},
				{Code: "997.1", MinYear: 2005, MaxYear: 2008, Trims: simpleTrims("Carrera", "Carrera 4", "Carrera 4S", "Targa", "Turbo", "GT3", "GT3 RS", "GT2")},
				{Code: "997.2", MinYear: 2009, MaxYear: 2012, Trims: simpleTrims("Carrera", "Carrera 4", "Carrera 4S", "Targa", "Turbo", "GT3", "GT3 RS", "GT2", "GT2 RS")},
				{Code: "991.1", MinYear: 2012, MaxYear: 2016, Trims: simpleTrims("Carrera", "Carrera 4S", "Targa", "Turbo", "GT3", "GT3 RS")},
				{Code: "991.2", MinYear: 2017, MaxYear: 2019, Trims: simpleTrims("Carrera", "Carrera 4S", "Targa", "Turbo", "GT3", "GT3 RS", "GT2 RS")},
				{Code: "992", MinYear: 2020, MaxYear: 0, Trims: simpleTrims("Carrera", "Carrera 4S", "Targa", "Turbo", "GT3", "GT3 RS")},
			},
		},
		{
			Name:     "Cayenne",
			Synonyms: []string{"Cayenne"},
			Trims:    []Trim{{Name: "Base"}},
			Generations: []Generation{
				{Code: "955", MinYear: 2003, MaxYear: 2006, Trims: simpleTrims("Base", "S", "Turbo")},
				{Code: "957", MinYear: 2007, MaxYear: 2010, Trims: simpleTrims("Base", "S", "GTS", "Turbo")},
				{Code: "958.1", MinYear: 2011, MaxYear: 2014, Trims: simpleTrims("Base", "S", "GTS", "Turbo")},
				{Code: "958.2", MinYear: 2015, MaxYear: 2018, Trims: simpleTrims("Base", "S", "GTS", "Turbo")},
				{Code: "9Y0", MinYear: 2019, MaxYear: 0, Trims: simpleTrims("Base", "S", "GTS", "Turbo")},
			},
		},
		{
			Name:     "Macan",
			Synonyms: []string{"Macan"},
			Trims:    []Trim{{Name: "Base"}},
			Generations: []Generation{
				{Code: "95B", MinYear: 2015, MaxYear: 2021, Trims: simpleTrims("Base", "S", "GTS", "Turbo")},
				{Code: "95B.2", MinYear: 2022, MaxYear: 0, Trims: simpleTrims("Base", "S", "GTS", "Turbo")},
			},
		},
		{
			Name:     "Panamera",
			Synonyms: []string{"Panamera"},
			Trims:    []Trim{{Name: "Base"}},
			Generations: []Generation{
				{Code: "970.1", MinYear: 2010, MaxYear: 2013, Trims: simpleTrims("Base", "4S", "Turbo")},
				{Code: "970.2", MinYear: 2014, MaxYear: 2016, Trims: simpleTrims("Base", "4S", "GTS", "Turbo")},
				{Code: "971.1", MinYear: 2017, MaxYear: 2020, Trims: simpleTrims("Base", "4S", "GTS", "Turbo")},
				{Code: "971.2", MinYear: 2021, MaxYear: 0, Trims: simpleTrims("Base", "4S", "GTS", "Turbo")},
			},
		},
		{
			Name:     "Taycan",
			Synonyms: []string{"Taycan"},
			Trims:    []Trim{{Name: "Base"}},
			Generations: []Generation{
				{Code: "J1", MinYear: 2020, MaxYear: 0, Trims: simpleTrims("Base", "4S", "Turbo", "Turbo S")},
			},
		},
		{Name: "918", Synonyms: []string{"918"}, Trims: simpleTrims("Spyder")},
		{Name: "959", Synonyms: []string{"959"}, Trims: simpleTrims("Base")},
		{Name: "944", Synonyms: []string{"944"}, Trims: simpleTrims("Base", "S", "S2", "Turbo")},
		{Name: "928", Synonyms: []string{"928"}, Trims: simpleTrims("Base", "S", "S4", "GT", "GTS")},
		{Name: "968", Synonyms: []string{"968"}, Trims: simpleTrims("Base", "Club Sport")},
		{Name: "924", Synonyms: []string{"924"}, Trims: simpleTrims("Base", "S", "Turbo")},
		{Name: "356", Synonyms: []string{"356"}, Trims: simpleTrims("Base", "Speedster")},
		{Name: "550", Synonyms: []string{"550"}, Trims: simpleTrims("Spyder")},
	}
}

func simpleTrims(names ...string) []Trim {
	out := make([]Trim, 0, len(names))
	for _, n := range names {
		out = append(out, Trim{Name: n})
	}
	return out
}

// DefaultOptionOverrides returns the built-in per-generation option MSRP
// overrides used when `options_per_generation` isn't supplied in config. It
// reproduces the 997.1 and Macan (95B) figures exercised by spec §8
// scenario 4 and the original's test_vehicle_and_options_overrides.py.
func DefaultOptionOverrides() map[string]map[string]map[string]int {
	return map[string]map[string]map[string]int{
		"911": {
			"997.1": {
				"639/640": 920,
				"PASM":    1990,
				"PSE":     2400,
				"X51":     15000,
				"PCM":     3070,
				"BOSE":    1390,
				"Wheels":  2000,
			},
		},
		"Macan": {
			"95B": {
				"PASM":     1390,
				"PSE":      1590,
				"639/640":  1360,
				"Bi-Xenon": 770,
				"BOSE":     990,
				"PCM":      1730,
			},
		},
	}
}
