package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"globeview/internal/earth"
	"globeview/internal/geom"
)

func main() {
	// CLI flags
	n := flag.Int("n", earth.DefaultCover, "Points on the equator of the generated cover")
	coverIn := flag.String("cover", "", "Read the sphere cover (lat,lon CSV) instead of generating it")
	coverOut := flag.String("write-cover", "", "Also write the cover as lat,lon CSV")
	texture := flag.String("texture", "", "Equirectangular world map (.png, .jpg or .tga) to colour the cover")
	terrain := flag.String("terrain", "", "Coloured terrain CSV (lat,lon,color); skips cover and texture")
	places := flag.String("places", "", "Places to bookmark (.csv, .kml or .geojson)")
	pointsOut := flag.String("out", "xyz_points.json", "Points dataset output")
	spotsOut := flag.String("spots", "spots.json", "Bookmarks output")
	debug := flag.Bool("debug", false, "Log at debug level")

	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err := run(logger, options{
		n:         *n,
		coverIn:   *coverIn,
		coverOut:  *coverOut,
		texture:   *texture,
		terrain:   *terrain,
		places:    *places,
		pointsOut: *pointsOut,
		spotsOut:  *spotsOut,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	n                   int
	coverIn, coverOut   string
	texture, terrain    string
	places              string
	pointsOut, spotsOut string
}

func run(logger *slog.Logger, opts options) error {
	samples, err := loadTerrain(logger, opts)
	if err != nil {
		return err
	}

	var pls []geom.Place
	if opts.places != "" {
		if pls, err = loadPlaces(opts.places); err != nil {
			return err
		}
		logger.Info("places loaded", "path", opts.places, "count", len(pls))
	}

	ds, bms, err := earth.Generate(samples, pls)
	if err != nil {
		return err
	}
	if err := writeFile(opts.pointsOut, func(w io.Writer) error { return geom.WriteDataset(w, ds) }); err != nil {
		return err
	}
	logger.Info("points written", "path", opts.pointsOut, "points", len(ds.Points))
	if err := writeFile(opts.spotsOut, func(w io.Writer) error { return geom.WriteBookmarks(w, bms) }); err != nil {
		return err
	}
	logger.Info("bookmarks written", "path", opts.spotsOut, "bookmarks", len(bms))
	return nil
}

// loadTerrain reads coloured samples directly, or builds them by colouring a
// sphere cover from a texture.
func loadTerrain(logger *slog.Logger, opts options) ([]geom.Sample, error) {
	if opts.terrain != "" {
		return geom.LoadTerrain(opts.terrain)
	}
	if opts.texture == "" {
		return nil, errors.New("need -terrain or -texture")
	}

	var cover []geom.LatLon
	if opts.coverIn != "" {
		var err error
		if cover, err = geom.LoadCover(opts.coverIn); err != nil {
			return nil, err
		}
	} else {
		if opts.n < 3 {
			return nil, fmt.Errorf("cover needs at least 3 equator points, got %d", opts.n)
		}
		cover = earth.CoverSphere(opts.n)
	}
	logger.Debug("cover ready", "points", len(cover))
	if opts.coverOut != "" {
		if err := writeFile(opts.coverOut, func(w io.Writer) error { return geom.WriteCover(w, cover) }); err != nil {
			return nil, err
		}
	}

	col, err := earth.LoadTexture(opts.texture)
	if err != nil {
		return nil, err
	}
	return col.Colorize(cover), nil
}

func loadPlaces(path string) ([]geom.Place, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kml":
		return geom.LoadPlacesKML(path)
	case ".geojson", ".json":
		return geom.LoadPlacesGeoJSON(path)
	}
	return geom.LoadPlaces(path)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
