package fort

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

//go:embed data/fort_plant_detail.json
var plantDetailJSON []byte

// PlantDetail is one catalog row: what it costs to bring a plant to Level
type PlantDetail struct {
	PlantID   PlantID
	Level     int
	Cost      int // coin
	BuildTime time.Duration
	Materials map[Material]int
}

// DetailID is the client-facing fort_plant_detail_id
func (d PlantDetail) DetailID() int {
	return DetailID(d.PlantID, d.Level)
}

// MaterialDeltas returns the inventory change for paying this detail's materials
func (d PlantDetail) MaterialDeltas() map[Material]int {
	deltas := make(map[Material]int, len(d.Materials))
	for m, q := range d.Materials {
		deltas[m] = -q
	}
	return deltas
}

// DetailID composes a fort_plant_detail_id from a plant and level
func DetailID(plantID PlantID, level int) int {
	return int(plantID)*100 + level
}

type detailKey struct {
	plant PlantID
	level int
}

// Catalog is the immutable plant/level lookup table
type Catalog struct {
	details   map[detailKey]PlantDetail
	maxLevels map[PlantID]int
}

type plantDetailRecord struct {
	PlantID   int `json:"plant_id"`
	Level     int `json:"level"`
	Cost      int `json:"cost"`
	Time      int `json:"time"`
	Materials []struct {
		ID       int `json:"id"`
		Quantity int `json:"quantity"`
	} `json:"materials"`
}

// ParseCatalog builds a catalog from fort_plant_detail JSON
func ParseCatalog(data []byte) (*Catalog, error) {
	var records []plantDetailRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse plant details: %w", err)
	}

	c := &Catalog{
		details:   make(map[detailKey]PlantDetail, len(records)),
		maxLevels: make(map[PlantID]int),
	}

	for _, r := range records {
		if r.Level < 1 {
			return nil, fmt.Errorf("plant %d: level must be at least 1, got %d", r.PlantID, r.Level)
		}
		if r.Time <= 0 {
			return nil, fmt.Errorf("plant %d level %d: build time must be positive", r.PlantID, r.Level)
		}
		if r.Cost < 0 {
			return nil, fmt.Errorf("plant %d level %d: negative cost", r.PlantID, r.Level)
		}

		key := detailKey{plant: PlantID(r.PlantID), level: r.Level}
		if _, dup := c.details[key]; dup {
			return nil, fmt.Errorf("plant %d level %d: duplicate entry", r.PlantID, r.Level)
		}

		materials := make(map[Material]int, len(r.Materials))
		for _, m := range r.Materials {
			materials[Material(m.ID)] += m.Quantity
		}

		c.details[key] = PlantDetail{
			PlantID:   key.plant,
			Level:     r.Level,
			Cost:      r.Cost,
			BuildTime: time.Duration(r.Time) * time.Second,
			Materials: materials,
		}
		if r.Level > c.maxLevels[key.plant] {
			c.maxLevels[key.plant] = r.Level
		}
	}

	// Levels must be contiguous from 1 so that every upgrade step has a row
	for plant, max := range c.maxLevels {
		for lv := 1; lv <= max; lv++ {
			if _, ok := c.details[detailKey{plant: plant, level: lv}]; !ok {
				return nil, fmt.Errorf("plant %d: missing level %d", plant, lv)
			}
		}
	}

	return c, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the catalog compiled into the binary, parsed once
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(plantDetailJSON)
	})
	return defaultCatalog, defaultCatalogErr
}

// MustDefaultCatalog is DefaultCatalog for program start-up
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Detail returns the row for bringing plantID to level
func (c *Catalog) Detail(plantID PlantID, level int) (PlantDetail, error) {
	d, ok := c.details[detailKey{plant: plantID, level: level}]
	if !ok {
		return PlantDetail{}, NewPlantDetailNotFoundError(plantID, level)
	}
	return d, nil
}

// NextLevel returns the row for upgrading a plant currently at level.
// A plant at its final level yields FortLevelMax.
func (c *Catalog) NextLevel(plantID PlantID, level int) (PlantDetail, error) {
	max, ok := c.maxLevels[plantID]
	if !ok {
		return PlantDetail{}, NewPlantDetailNotFoundError(plantID, level+1)
	}
	if level >= max {
		return PlantDetail{}, NewLevelMaxError(plantID, max)
	}
	return c.Detail(plantID, level+1)
}

// MaxLevel returns the final level of a plant, or 0 if unknown
func (c *Catalog) MaxLevel(plantID PlantID) int {
	return c.maxLevels[plantID]
}

// Plants lists every plant in the catalog in id order
func (c *Catalog) Plants() []PlantID {
	plants := make([]PlantID, 0, len(c.maxLevels))
	for p := range c.maxLevels {
		plants = append(plants, p)
	}
	sort.Slice(plants, func(i, j int) bool { return plants[i] < plants[j] })
	return plants
}
