package chart

import (
	"fmt"

	"global-terrorism-dashboard/internal/model"
)

// MaxMarkerRadius is the radius in pixels of the most severe event on the map.
const MaxMarkerRadius = 20.0

// Marker is a circle marker placed at the city of an event.
type Marker struct {
	EventID   int64    `json:"eventId"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Radius    float64  `json:"radius"`
	Popup     []string `json:"popup"`
}

func severity(v model.Victim) int64 {
	return v.TotalNumberOfFatalities + v.TotalNumberOfInjured
}

// Markers builds one marker per event. Radii scale linearly with fatalities
// plus injured relative to the most severe event of the set.
func Markers(events []model.Event) []Marker {
	var maxValue int64
	for _, e := range events {
		if v := severity(e.Victim); v > maxValue {
			maxValue = v
		}
	}

	markers := make([]Marker, 0, len(events))
	for _, e := range events {
		markers = append(markers, Marker{
			EventID:   e.ID,
			Latitude:  e.City.Latitude,
			Longitude: e.City.Longitude,
			Radius:    scaleRadius(severity(e.Victim), maxValue),
			Popup:     Popup(e),
		})
	}
	return markers
}

func scaleRadius(value, maxValue int64) float64 {
	if maxValue <= 0 {
		return 0
	}
	return MaxMarkerRadius * float64(value) / float64(maxValue)
}

// Popup returns the lines shown when a marker is opened.
func Popup(e model.Event) []string {
	return []string{
		"Summary: " + e.Summary,
		"Motive: " + e.Motive,
		"Date: " + e.Date.String(),
		fmt.Sprintf("Total number of fatalities: %d", e.Victim.TotalNumberOfFatalities),
		fmt.Sprintf("Total number of injured: %d", e.Victim.TotalNumberOfInjured),
	}
}
