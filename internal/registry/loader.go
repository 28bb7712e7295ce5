package registry

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/nss-cli/internal/fetcher"
	"github.com/sells-group/nss-cli/internal/model"
)

// scenarioFile is the on-disk layout of a scenario table.
type scenarioFile struct {
	Scenarios []model.Scenario `json:"scenarios" yaml:"scenarios"`
}

// LoadScenariosFromFile reads a scenario table from YAML (.yaml, .yml) or
// JSON (.json) and returns a validated registry.
func LoadScenariosFromFile(path string) (*ScenarioRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: read scenarios file")
	}

	var f scenarioFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, eris.Wrap(err, "registry: unmarshal scenarios yaml")
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, eris.Wrap(err, "registry: unmarshal scenarios json")
		}
	default:
		return nil, eris.Errorf("registry: unsupported scenarios file type %q", filepath.Ext(path))
	}

	reg := NewScenarioRegistry(f.Scenarios)
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// WriteScenariosFile writes scenarios in the format LoadScenariosFromFile reads.
func WriteScenariosFile(path string, scenarios []model.Scenario) error {
	f := scenarioFile{Scenarios: scenarios}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(f)
	case ".json":
		data, err = json.MarshalIndent(f, "", "  ")
	default:
		return eris.Errorf("registry: unsupported scenarios file type %q", filepath.Ext(path))
	}
	if err != nil {
		return eris.Wrap(err, "registry: marshal scenarios")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "registry: write scenarios file")
	}
	return nil
}

// regionColumns maps accepted header names onto canonical region fields.
var regionColumns = map[string]string{
	"code":                "code",
	"region_code":         "code",
	"name":                "name",
	"region":              "name",
	"region_name_en":      "name",
	"name_ar":             "name_ar",
	"region_name_ar":      "name_ar",
	"capital":             "capital",
	"population_millions": "population",
	"population":          "population",
	"population_2024":     "population",
	"gdp_share_pct":       "gdp_share",
	"gdp_share":           "gdp_share",
	"growth_factor":       "growth_factor",
	"diversification":     "diversification",
	"water_stress":        "water_stress",
	"key_sectors":         "key_sectors",
	"area_km2":            "area_km2",
	"latitude":            "latitude",
	"longitude":           "longitude",
}

// headerIndex resolves canonical field names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canon, ok := regionColumns[key]; ok {
			if _, dup := idx[canon]; !dup {
				idx[canon] = i
			}
		}
	}
	return idx
}

// LoadRegionsFromCSV parses regional profiles from a header-mapped CSV stream.
func LoadRegionsFromCSV(ctx context.Context, r io.Reader) (*RegionRegistry, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	headerCh := make(chan []string, 1)
	rowCh, errCh := fetcher.StreamCSV(ctx, r, fetcher.CSVOptions{
		HasHeader: true,
		HeaderCh:  headerCh,
		TrimSpace: true,
	})

	var (
		idx     map[string]int
		regions []model.Region
		line    = 1
	)
	for row := range rowCh {
		line++
		if idx == nil {
			idx = headerIndex(<-headerCh)
			if err := requireColumns(idx); err != nil {
				return nil, err
			}
		}
		reg, err := parseRegionRow(idx, row)
		if err != nil {
			return nil, eris.Wrapf(err, "registry: csv line %d", line)
		}
		regions = append(regions, reg)
	}
	if err := <-errCh; err != nil {
		return nil, eris.Wrap(err, "registry: read regions csv")
	}

	return finishRegions(regions)
}

// LoadRegionsFromCSVFile opens path and delegates to LoadRegionsFromCSV.
func LoadRegionsFromCSVFile(ctx context.Context, path string) (*RegionRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: open regions csv")
	}
	defer f.Close() //nolint:errcheck

	return LoadRegionsFromCSV(ctx, f)
}

// LoadRegionsFromXLSX parses regional profiles from a worksheet whose first
// row is the header. An empty sheet name selects the first sheet.
func LoadRegionsFromXLSX(path, sheet string) (*RegionRegistry, error) {
	rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{SheetName: sheet})
	if err != nil {
		return nil, eris.Wrap(err, "registry: read regions xlsx")
	}
	if len(rows) == 0 {
		return nil, eris.New("registry: regions sheet is empty")
	}

	idx := headerIndex(rows[0])
	if err := requireColumns(idx); err != nil {
		return nil, err
	}

	var regions []model.Region
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		reg, err := parseRegionRow(idx, row)
		if err != nil {
			return nil, eris.Wrapf(err, "registry: xlsx row %d", i+2)
		}
		regions = append(regions, reg)
	}

	return finishRegions(regions)
}

// LoadRegionsFromJSON decodes a JSON array of region profiles.
func LoadRegionsFromJSON(ctx context.Context, r io.Reader) (*RegionRegistry, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, errCh := fetcher.DecodeJSONArray[model.Region](ctx, r)
	var regions []model.Region
	for reg := range ch {
		var err error
		reg.Code = strings.ToUpper(strings.TrimSpace(reg.Code))
		if reg.Diversification, err = model.ParseDiversification(string(reg.Diversification)); err != nil {
			return nil, eris.Wrapf(err, "registry: json region %d", len(regions))
		}
		if reg.WaterStress, err = model.ParseWaterStress(string(reg.WaterStress)); err != nil {
			return nil, eris.Wrapf(err, "registry: json region %d", len(regions))
		}
		regions = append(regions, reg)
	}
	if err := <-errCh; err != nil {
		return nil, eris.Wrap(err, "registry: decode regions json")
	}
	return finishRegions(regions)
}

// LoadRegionsFromFile picks a loader by file extension.
func LoadRegionsFromFile(ctx context.Context, path, sheet string) (*RegionRegistry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadRegionsFromCSVFile(ctx, path)
	case ".xlsx":
		return LoadRegionsFromXLSX(path, sheet)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "registry: open regions json")
		}
		defer f.Close() //nolint:errcheck
		return LoadRegionsFromJSON(ctx, f)
	default:
		return nil, eris.Errorf("registry: unsupported regions file type %q", filepath.Ext(path))
	}
}

func finishRegions(regions []model.Region) (*RegionRegistry, error) {
	reg := NewRegionRegistry(regions)
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	zap.L().Debug("registry: loaded regions", zap.Int("count", len(regions)))
	return reg, nil
}

func requireColumns(idx map[string]int) error {
	var missing []string
	for _, col := range []string{"code", "name", "population", "gdp_share", "growth_factor", "diversification", "water_stress"} {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("registry: regions table missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func parseRegionRow(idx map[string]int, row []string) (model.Region, error) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var reg model.Region
	var err error

	reg.Code = strings.ToUpper(get("code"))
	reg.Name = get("name")
	reg.NameAR = get("name_ar")
	reg.Capital = get("capital")

	if reg.Population, err = parseFloat("population", get("population")); err != nil {
		return reg, err
	}
	// Absolute head counts are normalized to millions.
	if reg.Population > 1000 {
		reg.Population /= 1e6
	}
	if reg.GDPShare, err = parseFloat("gdp_share", get("gdp_share")); err != nil {
		return reg, err
	}
	if reg.GrowthFactor, err = parseFloat("growth_factor", get("growth_factor")); err != nil {
		return reg, err
	}
	if reg.Diversification, err = model.ParseDiversification(get("diversification")); err != nil {
		return reg, err
	}
	if reg.WaterStress, err = model.ParseWaterStress(get("water_stress")); err != nil {
		return reg, err
	}
	if s := get("key_sectors"); s != "" {
		for _, part := range strings.Split(s, ";") {
			if p := strings.TrimSpace(part); p != "" {
				reg.KeySectors = append(reg.KeySectors, p)
			}
		}
	}
	if reg.AreaKm2, err = optionalFloat("area_km2", get("area_km2")); err != nil {
		return reg, err
	}
	if reg.Latitude, err = optionalFloat("latitude", get("latitude")); err != nil {
		return reg, err
	}
	if reg.Longitude, err = optionalFloat("longitude", get("longitude")); err != nil {
		return reg, err
	}
	return reg, nil
}

func parseFloat(col, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, eris.Wrapf(err, "parse %s %q", col, s)
	}
	return v, nil
}

func optionalFloat(col, s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return parseFloat(col, s)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
