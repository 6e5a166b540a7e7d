package models

import (
	"fmt"
	"strings"
)

// WasteType is a DSNY waste stream.
type WasteType string

const (
	WasteTrash       WasteType = "trash"
	WasteRecycling   WasteType = "recycling"
	WasteCompost     WasteType = "compost"
	WasteBulky       WasteType = "bulky"
	WasteElectronics WasteType = "electronics"
)

var wasteTypeLabels = map[WasteType]string{
	WasteTrash:       "Trash",
	WasteRecycling:   "Recycling",
	WasteCompost:     "Compost",
	WasteBulky:       "Bulky Items",
	WasteElectronics: "Electronics",
}

// ParseWasteType validates a waste stream name.
func ParseWasteType(s string) (WasteType, error) {
	w := WasteType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := wasteTypeLabels[w]; !ok {
		return "", fmt.Errorf("unknown waste type %q", s)
	}
	return w, nil
}

func (w WasteType) Label() string {
	if l, ok := wasteTypeLabels[w]; ok {
		return l
	}
	return string(w)
}

// WasteStreamGuidance describes how one waste stream is handled at a building.
// Its collection days are authored independently of the building's and may be a subset.
type WasteStreamGuidance struct {
	WasteType           WasteType       `json:"waste_type"`
	CollectionDays      []CollectionDay `json:"collection_days"`
	ContainerType       string          `json:"container_type"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

// CollectedOn reports whether this stream is picked up on day.
func (g WasteStreamGuidance) CollectedOn(day CollectionDay) bool {
	return ContainsDay(g.CollectionDays, day)
}

// BuildingCollectionSchedule is the static collection configuration for one bin-managed building.
type BuildingCollectionSchedule struct {
	BuildingID          string                `json:"building_id"`
	BuildingName        string                `json:"building_name"`
	Units               int                   `json:"units"` // copied from the unit table for display
	CollectionDays      []CollectionDay       `json:"collection_days"`
	SetOutTime          TimeOfDay             `json:"set_out_time"`
	RetrievalTime       TimeOfDay             `json:"retrieval_time"`
	BinLocation         string                `json:"bin_location"`
	SpecialInstructions string                `json:"special_instructions,omitempty"`
	WasteStreams        []WasteStreamGuidance `json:"waste_streams"`
}

// HasCollection reports whether DSNY collects at the building on day.
func (s BuildingCollectionSchedule) HasCollection(day CollectionDay) bool {
	return ContainsDay(s.CollectionDays, day)
}

// StreamsOn returns the waste streams picked up on day, in authored order.
func (s BuildingCollectionSchedule) StreamsOn(day CollectionDay) []WasteStreamGuidance {
	var out []WasteStreamGuidance
	for _, g := range s.WasteStreams {
		if g.CollectedOn(day) {
			out = append(out, g)
		}
	}
	return out
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (s BuildingCollectionSchedule) Clone() BuildingCollectionSchedule {
	c := s
	c.CollectionDays = append([]CollectionDay(nil), s.CollectionDays...)
	c.WasteStreams = make([]WasteStreamGuidance, len(s.WasteStreams))
	for i, g := range s.WasteStreams {
		g.CollectionDays = append([]CollectionDay(nil), g.CollectionDays...)
		c.WasteStreams[i] = g
	}
	return c
}

// BinManagementPlan tells a client when to act: set out the evening before
// each collection, retrieve on the collection day.
type BinManagementPlan struct {
	BuildingID    string          `json:"building_id"`
	BuildingName  string          `json:"building_name"`
	SetOutDays    []CollectionDay `json:"set_out_days"`
	RetrievalDays []CollectionDay `json:"retrieval_days"`
	SetOutTime    TimeOfDay       `json:"set_out_time"`
	RetrievalTime TimeOfDay       `json:"retrieval_time"`
}
