// Package cache persists parsed trip records so a route can still be computed
// when the realtime feed is unreachable.
package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/radiation/subway-mapper/graph"
)

// ErrNoCache is returned when no snapshot exists at the requested path
var ErrNoCache = errors.New("no cached data found")

// SerializeTrips encodes trip records as a JSON array.
//
// Example:
//
//	data, err := cache.SerializeTrips(trips)
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile("data/gtfs_cache.json", data, 0644)
func SerializeTrips(trips []graph.TripRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeTripsToWriter(trips, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeTrips decodes a JSON array produced by SerializeTrips
func DeserializeTrips(data []byte) ([]graph.TripRecord, error) {
	return DeserializeTripsFromReader(bytes.NewReader(data))
}

// SerializeTripsToWriter writes trip records to w
func SerializeTripsToWriter(trips []graph.TripRecord, w io.Writer) error {
	if trips == nil {
		trips = []graph.TripRecord{}
	}
	if err := json.NewEncoder(w).Encode(trips); err != nil {
		return fmt.Errorf("failed to encode trips: %w", err)
	}
	return nil
}

// DeserializeTripsFromReader reads trip records from r
func DeserializeTripsFromReader(r io.Reader) ([]graph.TripRecord, error) {
	var trips []graph.TripRecord
	if err := json.NewDecoder(r).Decode(&trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}
	return trips, nil
}

// SaveToFile writes a snapshot, creating parent directories as needed.
// The file is replaced atomically so a crash never leaves a torn snapshot.
func SaveToFile(trips []graph.TripRecord, path string) error {
	data, err := SerializeTrips(trips)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".gtfs-cache-*")
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// LoadFromFile reads a snapshot written by SaveToFile.
// Returns ErrNoCache if the file does not exist.
func LoadFromFile(path string) ([]graph.TripRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoCache
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return DeserializeTrips(data)
}
