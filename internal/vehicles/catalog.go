// Package vehicles implements the configurable model/generation/trim
// taxonomy described in spec §2.3 and §4.4: it resolves (model, year) to a
// generation code and detects (model, trim) from free text, the way
// original_source/x987-app/x987/vehicles.py does from its TOML-driven
// catalog.
package vehicles

import (
	"regexp"
	"sort"
	"strings"
)

// Trim is one named trim level with its text synonyms.
type Trim struct {
	Name     string
	Synonyms []string
}

// Generation is one model generation: a year range, a code used to key
// per-generation option overrides, and the trims offered in it.
type Generation struct {
	Code     string
	MinYear  int // 0 means unbounded
	MaxYear  int // 0 means unbounded
	Trims    []Trim
}

// Model is one recognized vehicle line.
type Model struct {
	Name        string
	Synonyms    []string
	Trims       []Trim // model-level trims, used when no generation matches
	Generations []Generation
}

// Catalog is the immutable, loaded model/generation/trim taxonomy.
type Catalog struct {
	models []Model
}

// New builds a Catalog from a list of models, typically decoded from the
// `[vehicles.models]` TOML table (see internal/config).
func New(models []Model) *Catalog {
	return &Catalog{models: models}
}

// Models returns the catalog's models in declaration order.
func (c *Catalog) Models() []Model { return c.models }

func compileWordPattern(terms []string) *regexp.Regexp {
	var parts []string
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(t))
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(parts, "|") + `)\b`)
}

// DetectModelAndTrim finds the canonical model and trim mentioned in text,
// preferring the generation that matches year when given, then falling
// back to the union of all generation trims and model-level trims. Longer
// synonyms are checked first so "Carrera 4S" matches before "Carrera".
func (c *Catalog) DetectModelAndTrim(text string, year *int) (model, trim string) {
	if text == "" {
		return "", ""
	}
	var matched *Model
	for i := range c.models {
		m := &c.models[i]
		if len(m.Synonyms) == 0 {
			continue
		}
		syns := append([]string(nil), m.Synonyms...)
		sort.Slice(syns, func(i, j int) bool { return len(syns[i]) > len(syns[j]) })
		if pat := compileWordPattern(syns); pat != nil && pat.MatchString(text) {
			matched = m
			break
		}
	}
	if matched == nil {
		return "", ""
	}

	var candidates []Trim
	if year != nil {
		for _, g := range matched.Generations {
			if g.MinYear != 0 && *year < g.MinYear {
				continue
			}
			if g.MaxYear != 0 && *year > g.MaxYear {
				continue
			}
			candidates = append(candidates, g.Trims...)
			break
		}
	}
	if len(candidates) == 0 {
		for _, g := range matched.Generations {
			candidates = append(candidates, g.Trims...)
		}
		candidates = append(candidates, matched.Trims...)
	}

	type ordered struct {
		name string
		syns []string
	}
	var orderedTrims []ordered
	for _, t := range candidates {
		set := map[string]bool{t.Name: true}
		syns := []string{t.Name}
		for _, s := range t.Synonyms {
			if !set[s] {
				set[s] = true
				syns = append(syns, s)
			}
		}
		sort.Slice(syns, func(i, j int) bool { return len(syns[i]) > len(syns[j]) })
		orderedTrims = append(orderedTrims, ordered{name: t.Name, syns: syns})
	}
	sort.SliceStable(orderedTrims, func(i, j int) bool {
		return maxLen(orderedTrims[i].syns) > maxLen(orderedTrims[j].syns)
	})

	for _, t := range orderedTrims {
		if pat := compileWordPattern(t.syns); pat != nil && pat.MatchString(text) {
			return matched.Name, t.name
		}
	}
	return matched.Name, ""
}

func maxLen(ss []string) int {
	m := 0
	for _, s := range ss {
		if len(s) > m {
			m = len(s)
		}
	}
	return m
}

// GenerationCode resolves (model, year) to a generation code, or "" if
// model is unrecognized or no generation's year range covers year. Used by
// the options value-override resolution in spec §4.4 step 3a.
func (c *Catalog) GenerationCode(model string, year int) string {
	if model == "" || year == 0 {
		return ""
	}
	for _, m := range c.models {
		if !strings.EqualFold(m.Name, model) {
			continue
		}
		for _, g := range m.Generations {
			if g.MinYear != 0 && year < g.MinYear {
				continue
			}
			if g.MaxYear != 0 && year > g.MaxYear {
				continue
			}
			return g.Code
		}
	}
	return ""
}

// ModelNames returns every recognized model's canonical display name.
func (c *Catalog) ModelNames() []string {
	out := make([]string, 0, len(c.models))
	for _, m := range c.models {
		out = append(out, m.Name)
	}
	return out
}
