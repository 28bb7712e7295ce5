package geo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/sells-group/nss-cli/internal/fetcher"
)

// Boundary is a region's outline read from a shapefile.
type Boundary struct {
	Code     string
	Geometry *geom.MultiPolygon
	Centroid geom.Coord
}

// LoadBoundaries reads region polygons from a .shp file, or from the first
// .shp inside a .zip bundle, keyed by the value of codeField. Codes are
// upper-cased. Records without a polygon or code are skipped.
func LoadBoundaries(path, codeField string) (map[string]Boundary, error) {
	log := zap.L().With(zap.String("component", "geo.loader"))

	shpPath := path
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		dir, err := os.MkdirTemp("", "nss-boundaries-*")
		if err != nil {
			return nil, eris.Wrap(err, "geo: create extract dir")
		}
		defer os.RemoveAll(dir) //nolint:errcheck

		files, err := fetcher.ExtractZIP(path, dir)
		if err != nil {
			return nil, eris.Wrap(err, "geo: extract boundaries")
		}
		if shpPath, err = fetcher.FindByExt(files, ".shp"); err != nil {
			return nil, eris.Wrap(err, "geo: find .shp file")
		}
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrap(err, "geo: open shapefile")
	}
	defer func() { _ = reader.Close() }()

	codeIdx := fieldIndex(reader, codeField)
	if codeIdx < 0 {
		return nil, eris.Errorf("geo: shapefile field %q not found", codeField)
	}

	out := make(map[string]Boundary)
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()
		code := strings.ToUpper(strings.TrimSpace(strings.TrimRight(reader.Attribute(codeIdx), "\x00")))
		if code == "" {
			skipped++
			continue
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		mp := polygonToMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}

		centroid, err := xy.Centroid(mp)
		if err != nil {
			log.Debug("geo: centroid failed", zap.String("code", code), zap.Error(err))
			skipped++
			continue
		}
		out[code] = Boundary{Code: code, Geometry: mp, Centroid: centroid}
	}

	log.Info("boundaries loaded", zap.Int("regions", len(out)), zap.Int("skipped", skipped))
	return out, nil
}

// fieldIndex returns the index of a named field in the shapefile, or -1 if not found.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}

// polygonToMultiPolygon turns each shapefile part into its own polygon.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			continue
		}
		if err := mp.Push(poly); err != nil {
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
