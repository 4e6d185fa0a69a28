package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/radiation/subway-mapper/graph"
)

var tables = []string{"stops.txt", "routes.txt", "transfers.txt"}

func wanted(name string) bool {
	name = strings.ToLower(filepath.Base(name))
	for _, t := range tables {
		if name == t {
			return true
		}
	}
	return false
}

// LoadStaticFromPath loads a static GTFS feed from a directory of .txt files,
// a local .zip file, or an http(s) URL to a zip. Missing tables are not an error.
func LoadStaticFromPath(ctx context.Context, path string) (*StaticIndex, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		data, err := download(ctx, path)
		if err != nil {
			return nil, err
		}
		return LoadStaticFromZipBytes(data)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("static gtfs: %w", err)
	}
	if !info.IsDir() {
		zr, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("static gtfs: open %s: %w", path, err)
		}
		defer zr.Close()
		return loadFromZip(&zr.Reader)
	}

	s := NewStaticIndex()
	for _, name := range tables {
		f, err := os.Open(filepath.Join(path, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("static gtfs: %w", err)
		}
		err = s.consumeCSV(name, f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadStaticFromZipBytes builds an index from raw zip bytes
func LoadStaticFromZipBytes(data []byte) (*StaticIndex, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("static gtfs: open zip: %w", err)
	}
	return loadFromZip(zr)
}

func loadFromZip(zr *zip.Reader) (*StaticIndex, error) {
	s := NewStaticIndex()
	for _, f := range zr.File {
		if !wanted(f.Name) {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("static gtfs: open %s: %w", f.Name, err)
		}
		err = s.consumeCSV(f.Name, r)
		_ = r.Close()
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

func (s *StaticIndex) consumeCSV(name string, r io.Reader) error {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return fmt.Errorf("static gtfs: parse %s: %w", name, err)
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	switch strings.ToLower(filepath.Base(name)) {
	case "stops.txt":
		sID := idx("stop_id")
		sN := idx("stop_name")
		sLat := idx("stop_lat")
		sLon := idx("stop_lon")
		parent := idx("parent_station")
		if sID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			id := field(row, sID)
			if id == "" {
				continue
			}
			s.stopNames[id] = field(row, sN)
			if p := field(row, parent); p != "" {
				s.stopParent[id] = p
			}
			if sLat >= 0 && sLon >= 0 {
				lat, errLat := strconv.ParseFloat(field(row, sLat), 64)
				lon, errLon := strconv.ParseFloat(field(row, sLon), 64)
				if errLat == nil && errLon == nil {
					s.stopCoord[id] = [2]float64{lon, lat}
				}
			}
		}
	case "routes.txt":
		rID := idx("route_id")
		rSN := idx("route_short_name")
		rLN := idx("route_long_name")
		rColor := idx("route_color")
		if rID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			id := field(row, rID)
			s.routeShortNames[id] = field(row, rSN)
			s.routeLongNames[id] = field(row, rLN)
			s.routeColors[id] = field(row, rColor)
		}
	case "transfers.txt":
		from := idx("from_stop_id")
		to := idx("to_stop_id")
		minT := idx("min_transfer_time")
		if from < 0 || to < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			var secs int64
			if v := field(row, minT); v != "" {
				n, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					return fmt.Errorf("static gtfs: transfers.txt: min_transfer_time %q: %w", v, err)
				}
				secs = n
			}
			s.transfers = append(s.transfers, graph.TransferRecord{
				From:       graph.StopID(field(row, from)),
				To:         graph.StopID(field(row, to)),
				MinSeconds: secs,
			})
		}
	}
	return nil
}
