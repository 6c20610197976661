package steps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/models"
	"github.com/rkaplan/x987scout/internal/pipeline"
	"github.com/rkaplan/x987scout/internal/vehicles"
)

var catalogLog = logging.New("pipeline.catalog")

// CatalogData is the output of the catalog export stage.
type CatalogData struct {
	OK    bool
	Paths []string
	Error string
}

// CatalogExportPaths are the two well-known locations the generation
// catalog is always written to (spec §4.10).
var CatalogExportPaths = []string{
	"x987-web/apps/api/data/generation_catalog.json",
	"x987-data/metadata/generation_catalog.json",
}

// CatalogStep exports the vehicle taxonomy (models, generations, trims,
// per-generation option MSRPs) as JSON for downstream consumers. It fails
// gracefully: a write error is logged and reported in the result but never
// halts the pipeline.
type CatalogStep struct{}

func (CatalogStep) Name() string             { return "catalog" }
func (CatalogStep) Description() string      { return "Exports generation catalog JSON" }
func (CatalogStep) Dependencies() []string   { return []string{"ranking"} }
func (CatalogStep) RequiredConfig() []string { return nil }

func (CatalogStep) Run(rc *pipeline.RunContext, previous map[string]*pipeline.Result) (any, error) {
	if rc.Catalog == nil {
		catalogLog.Warn("no vehicle catalog configured; skipping catalog export")
		return CatalogData{OK: false, Error: "no vehicle catalog configured"}, nil
	}

	idToDisplay := make(map[string]string)
	if rc.OptionsRegistry != nil {
		for _, d := range rc.OptionsRegistry.All() {
			idToDisplay[d.ID()] = d.Display()
		}
	}

	catalog := buildGenerationCatalog(rc.Catalog, rc.Overrides, idToDisplay)

	var written []string
	for _, path := range CatalogExportPaths {
		if err := writeCatalogJSON(path, catalog); err != nil {
			catalogLog.Warn("failed to export catalog to %s: %v", path, err)
			continue
		}
		written = append(written, path)
	}

	if len(written) == 0 {
		return CatalogData{OK: false, Error: "failed to write catalog to any configured path"}, nil
	}

	catalogLog.Info("exported generation catalog to %v", written)
	return CatalogData{OK: true, Paths: written}, nil
}

func buildGenerationCatalog(catalog *vehicles.Catalog, overrides map[string]map[string]map[string]int, idToDisplay map[string]string) models.GenerationCatalog {
	var out models.GenerationCatalog
	for _, m := range catalog.Models() {
		entry := models.CatalogModel{Name: m.Name}
		for _, g := range m.Generations {
			trims := make([]string, 0, len(g.Trims))
			for _, t := range g.Trims {
				trims = append(trims, t.Name)
			}

			genEntry := models.CatalogGeneration{
				Key:            fmt.Sprintf("%s-%s", m.Name, g.Code),
				Code:           g.Code,
				YearsMin:       g.MinYear,
				YearsMax:       g.MaxYear,
				Trims:          trims,
				TrimsDefault:   false,
				OptionsDefault: true,
			}

			if msrpMap, ok := overrides[m.Name][g.Code]; ok && len(msrpMap) > 0 {
				for id, msrp := range msrpMap {
					display := idToDisplay[id]
					if display == "" {
						display = id
					}
					v := msrp
					genEntry.Options = append(genEntry.Options, models.CatalogOption{ID: id, Display: display, MSRP: &v})
				}
				genEntry.OptionsDefault = false
			}

			entry.Generations = append(entry.Generations, genEntry)
		}
		out.Models = append(out.Models, entry)
	}
	return out
}

func writeCatalogJSON(path string, catalog models.GenerationCatalog) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
