// Package chart folds filtered events into the fixed buckets rendered by the
// dashboard charts and map.
package chart

import (
	"time"

	"global-terrorism-dashboard/internal/model"
)

// FirstYear is the first year shown on the events over years chart.
const FirstYear = 1970

// VictimsBuckets is a two slice pie: perpetrators first, civilians second.
type VictimsBuckets [2]int64

// PieData is the labelled form of VictimsBuckets.
type PieData struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// FatalVictims sums perpetrator and civilian fatalities.
func FatalVictims(events []model.Event) VictimsBuckets {
	var b VictimsBuckets
	for _, e := range events {
		b[0] += e.Victim.NumberOfPerpetratorsFatalities
		b[1] += e.Victim.CiviliansFatalities()
	}
	return b
}

// InjuredVictims sums perpetrator and civilian injured.
func InjuredVictims(events []model.Event) VictimsBuckets {
	var b VictimsBuckets
	for _, e := range events {
		b[0] += e.Victim.NumberOfPerpetratorsInjured
		b[1] += e.Victim.CiviliansInjured()
	}
	return b
}

func FatalVictimsPie(events []model.Event) PieData {
	b := FatalVictims(events)
	return PieData{
		Labels: []string{"Number of perpetrators fatalities", "Number of civilians fatalities"},
		Data:   b[:],
	}
}

func InjuredVictimsPie(events []model.Event) PieData {
	b := InjuredVictims(events)
	return PieData{
		Labels: []string{"Number of perpetrators injured", "Number of civilians injured"},
		Data:   b[:],
	}
}

// YearPoint is a scatter point: events counted in year X.
type YearPoint struct {
	X int   `json:"x"`
	Y int64 `json:"y"`
}

// EventsOverYears counts events per year from FirstYear to the year of now.
// Every year has a point; events dated outside that range are not counted.
func EventsOverYears(events []model.Event, now time.Time) []YearPoint {
	last := now.Year()
	if last < FirstYear {
		return []YearPoint{}
	}
	points := make([]YearPoint, 0, last-FirstYear+1)
	for year := FirstYear; year <= last; year++ {
		points = append(points, YearPoint{X: year})
	}
	for _, e := range events {
		year := e.Date.Year()
		if year < FirstYear || year > last {
			continue
		}
		points[year-FirstYear].Y++
	}
	return points
}
