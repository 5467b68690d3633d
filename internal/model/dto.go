package model

// EventDTO is the draft submitted to the API when creating or updating an event.
// ID is zero for new events.
type EventDTO struct {
	ID                        int64     `json:"id,omitempty"`
	Summary                   string    `json:"summary" validate:"notblank,max=1000"`
	Motive                    string    `json:"motive" validate:"notblank,max=1000"`
	Date                      Date      `json:"date" validate:"required,notfuture"`
	IsPartOfMultipleIncidents bool      `json:"isPartOfMultipleIncidents"`
	IsSuccessful              bool      `json:"isSuccessful"`
	IsSuicidal                bool      `json:"isSuicidal"`
	Target                    TargetDTO `json:"target"`
	City                      CityDTO   `json:"city"`
	Victim                    VictimDTO `json:"victim"`
}

type CountryDTO struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name" validate:"notblank"`
}

type ProvinceDTO struct {
	ID      int64      `json:"id,omitempty"`
	Name    string     `json:"name" validate:"notblank"`
	Country CountryDTO `json:"country"`
}

type CityDTO struct {
	ID        int64       `json:"id,omitempty"`
	Name      string      `json:"name" validate:"notblank"`
	Latitude  float64     `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64     `json:"longitude" validate:"gte=-180,lte=180"`
	Province  ProvinceDTO `json:"province"`
}

type TargetDTO struct {
	ID              int64      `json:"id,omitempty"`
	Target          string     `json:"target" validate:"notblank"`
	CountryOfOrigin CountryDTO `json:"countryOfOrigin"`
}

type VictimDTO struct {
	ID                             int64 `json:"id,omitempty"`
	TotalNumberOfFatalities        int64 `json:"totalNumberOfFatalities" validate:"gte=0"`
	NumberOfPerpetratorsFatalities int64 `json:"numberOfPerpetratorsFatalities" validate:"gte=0,ltefield=TotalNumberOfFatalities"`
	TotalNumberOfInjured           int64 `json:"totalNumberOfInjured" validate:"gte=0"`
	NumberOfPerpetratorsInjured    int64 `json:"numberOfPerpetratorsInjured" validate:"gte=0,ltefield=TotalNumberOfInjured"`
	ValueOfPropertyDamage          int64 `json:"valueOfPropertyDamage" validate:"gte=0"`
}

// EventDTOFromEvent converts a stored event into an editable draft.
func EventDTOFromEvent(e Event) EventDTO {
	return EventDTO{
		ID:                        e.ID,
		Summary:                   e.Summary,
		Motive:                    e.Motive,
		Date:                      e.Date,
		IsPartOfMultipleIncidents: e.IsPartOfMultipleIncidents,
		IsSuccessful:              e.IsSuccessful,
		IsSuicidal:                e.IsSuicidal,
		Target: TargetDTO{
			ID:              e.Target.ID,
			Target:          e.Target.Target,
			CountryOfOrigin: CountryDTO(e.Target.CountryOfOrigin),
		},
		City: CityDTO{
			ID:        e.City.ID,
			Name:      e.City.Name,
			Latitude:  e.City.Latitude,
			Longitude: e.City.Longitude,
			Province: ProvinceDTO{
				ID:      e.City.Province.ID,
				Name:    e.City.Province.Name,
				Country: CountryDTO(e.City.Province.Country),
			},
		},
		Victim: VictimDTO(e.Victim),
	}
}
