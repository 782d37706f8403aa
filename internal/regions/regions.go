// Package regions loads the static region/district hierarchy used for
// address validation and display.
package regions

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/bagrikeng/tanlovbot/core/logger"
)

// District is a leaf of the hierarchy.
type District struct {
	Name string `json:"name"`
}

// Region holds a display name and its districts keyed by string identifiers.
type Region struct {
	Name      string              `json:"name"`
	Districts map[string]District `json:"districts"`
}

// Hierarchy maps region identifiers to regions.
type Hierarchy map[string]Region

// Loader reads the hierarchy from a JSON file on every Load call. There is no
// caching contract; callers treat a failed load the same as an empty file.
type Loader struct {
	path string
}

// NewLoader returns a loader bound to the given JSON file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the hierarchy. On any IO or parse failure it logs the fault and
// returns an empty hierarchy, so validation degrades to "no match found".
func (l *Loader) Load() Hierarchy {
	data, err := os.ReadFile(l.path)
	if err != nil {
		logger.Event(logger.Background(), "regions", slog.LevelError, "load.read_failed",
			slog.String("path", l.path),
			slog.String("err", err.Error()),
		)
		return Hierarchy{}
	}
	var h Hierarchy
	if err := json.Unmarshal(data, &h); err != nil {
		logger.Event(logger.Background(), "regions", slog.LevelError, "load.parse_failed",
			slog.String("path", l.path),
			slog.String("err", err.Error()),
		)
		return Hierarchy{}
	}
	return h
}

// RegionByName finds the region identifier whose display name matches exactly.
func (h Hierarchy) RegionByName(name string) (string, bool) {
	for id, r := range h {
		if r.Name == name {
			return id, true
		}
	}
	return "", false
}

// DistrictByName finds the district identifier within a region by exact name.
func (h Hierarchy) DistrictByName(regionID, name string) (string, bool) {
	r, ok := h[regionID]
	if !ok {
		return "", false
	}
	for id, d := range r.Districts {
		if d.Name == name {
			return id, true
		}
	}
	return "", false
}

// RegionName resolves a region identifier to its display name.
func (h Hierarchy) RegionName(regionID string) string {
	if r, ok := h[regionID]; ok {
		return r.Name
	}
	return "N/A"
}

// DistrictName resolves a district identifier within a region to its name.
func (h Hierarchy) DistrictName(regionID, districtID string) string {
	if r, ok := h[regionID]; ok {
		if d, ok := r.Districts[districtID]; ok {
			return d.Name
		}
	}
	return "N/A"
}

// RegionNames lists region display names ordered by numeric identifier, so
// keyboards render in a stable order.
func (h Hierarchy) RegionNames() []string {
	ids := sortedKeys(h)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, h[id].Name)
	}
	return names
}

// DistrictNames lists district names of one region ordered by identifier.
func (h Hierarchy) DistrictNames(regionID string) []string {
	r, ok := h[regionID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(r.Districts))
	for id := range r.Districts {
		ids = append(ids, id)
	}
	sortNumeric(ids)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, r.Districts[id].Name)
	}
	return names
}

func sortedKeys(h Hierarchy) []string {
	ids := make([]string, 0, len(h))
	for id := range h {
		ids = append(ids, id)
	}
	sortNumeric(ids)
	return ids
}

func sortNumeric(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})
}
