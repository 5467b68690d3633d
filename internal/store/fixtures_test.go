package store

import (
	"time"

	"global-terrorism-dashboard/internal/model"
)

func newEvent(id int64, date model.Date, lat, lng float64, fatalities, perpFatalities int64) model.Event {
	return model.Event{
		ID:           id,
		Summary:      "summary",
		Motive:       "motive",
		Date:         date,
		IsSuccessful: true,
		Target: model.Target{
			ID:              id + 1000,
			Target:          "target",
			CountryOfOrigin: model.Country{ID: 1, Name: "country"},
		},
		City: model.City{
			ID:        id + 2000,
			Name:      "city",
			Latitude:  lat,
			Longitude: lng,
			Province: model.Province{
				ID:      2,
				Name:    "province",
				Country: model.Country{ID: 1, Name: "country"},
			},
		},
		Victim: model.Victim{
			ID:                             id + 3000,
			TotalNumberOfFatalities:        fatalities,
			NumberOfPerpetratorsFatalities: perpFatalities,
			TotalNumberOfInjured:           14,
			NumberOfPerpetratorsInjured:    4,
			ValueOfPropertyDamage:          2000,
		},
	}
}

var (
	fixedNow = time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	event1 = newEvent(6, model.NewDate(1999, time.July, 12), 20, 10, 11, 3)
	event2 = newEvent(12, model.NewDate(1999, time.March, 3), 10, 20, 10, 2)
	event3 = newEvent(18, model.NewDate(1999, time.March, 2), 20, 10, 12, 1)
	event4 = newEvent(24, model.NewDate(1998, time.June, 11), 30, 40, 1, 1)
)

func stateWith(events ...model.Event) State {
	return Reduce(InitialState(fixedNow), SetEvents{Events: events})
}

func radius(meters float64) *float64 {
	return &meters
}
