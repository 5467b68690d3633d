package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of event dates.
const DateLayout = "2006-01-02"

// Date is a calendar day carried as time.Time.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts yyyy-MM-dd and RFC 3339 values.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Country is referenced by provinces and targets.
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Province struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Country Country `json:"country"`
}

type City struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Province  Province `json:"province"`
}

// Coordinates returns the city location.
func (c City) Coordinates() Coordinates {
	return Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
}

type Target struct {
	ID              int64   `json:"id"`
	Target          string  `json:"target"`
	CountryOfOrigin Country `json:"countryOfOrigin"`
}

// Victim holds casualty totals. Civilian counts are derived.
type Victim struct {
	ID                             int64 `json:"id"`
	TotalNumberOfFatalities        int64 `json:"totalNumberOfFatalities"`
	NumberOfPerpetratorsFatalities int64 `json:"numberOfPerpetratorsFatalities"`
	TotalNumberOfInjured           int64 `json:"totalNumberOfInjured"`
	NumberOfPerpetratorsInjured    int64 `json:"numberOfPerpetratorsInjured"`
	ValueOfPropertyDamage          int64 `json:"valueOfPropertyDamage"`
}

func (v Victim) CiviliansFatalities() int64 {
	return v.TotalNumberOfFatalities - v.NumberOfPerpetratorsFatalities
}

func (v Victim) CiviliansInjured() int64 {
	return v.TotalNumberOfInjured - v.NumberOfPerpetratorsInjured
}

// Event is a single terrorist incident as returned by the API.
type Event struct {
	ID                        int64  `json:"id"`
	Summary                   string `json:"summary"`
	Motive                    string `json:"motive"`
	Date                      Date   `json:"date"`
	IsPartOfMultipleIncidents bool   `json:"isPartOfMultipleIncidents"`
	IsSuccessful              bool   `json:"isSuccessful"`
	IsSuicidal                bool   `json:"isSuicidal"`
	Target                    Target `json:"target"`
	City                      City   `json:"city"`
	Victim                    Victim `json:"victim"`
}

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}
