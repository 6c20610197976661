package options

// Registry is the immutable, process-wide set of all option detectors. It
// replaces the original's filesystem auto-discovery (importlib scanning the
// options/ directory) with the static-registration rearchitecture called
// for in spec §9 / DESIGN NOTES "Dynamic module discovery → static
// registration" — the public lookup surface is unchanged, only the
// mechanism moves to compile time.
type Registry struct {
	all []*Detector
}

var defaultRegistry = buildRegistry()

// Default returns the process-wide options registry.
func Default() *Registry { return defaultRegistry }

func buildRegistry() *Registry {
	r := &Registry{}
	r.all = []*Detector{
		sportChrono(),
		pasm(),
		sportExhaust(),
		limitedSlipDifferential(),
		sportSeats(),
		ventilatedSeats(),
		heatedSeats(),
		biXenonHeadlights(),
		upgradedWheels(),
		pcmNavigation(),
		boseSurroundSound(),
		parkAssist(),
		x51PowerKit(),
		activeRide(),
		shortShifter(),
		autoDimRainSensor(),
	}
	return r
}

// All returns every registered detector.
func (r *Registry) All() []*Detector { return r.all }

// ByID looks up a single detector, or nil.
func (r *Registry) ByID(id string) *Detector {
	for _, d := range r.all {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

// ByCategory returns every detector in a category.
func (r *Registry) ByCategory(category string) []*Detector {
	var out []*Detector
	for _, d := range r.all {
		if d.Category() == category {
			out = append(out, d)
		}
	}
	return out
}

// Count returns the number of registered option detectors.
func (r *Registry) Count() int { return len(r.all) }
