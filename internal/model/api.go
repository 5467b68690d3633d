package model

import "time"

// ErrorResponse is the error payload returned by the Global Terrorism API.
type ErrorResponse struct {
	Timestamp string   `json:"timestamp"`
	Status    int      `json:"status"`
	Errors    []string `json:"errors"`
}

// EventsPage is a single page of the events listing.
type EventsPage struct {
	Content []Event `json:"content"`
}

// LoginData is submitted to the authentication endpoint.
type LoginData struct {
	UserNameOrEmail string `json:"userNameOrEmail"`
	Password        string `json:"password"`
}

// RegistrationData creates an account. MatchingPassword must repeat Password.
type RegistrationData struct {
	UserName         string `json:"userName" validate:"notblank,min=5,max=40"`
	Email            string `json:"email" validate:"notblank,email"`
	Password         string `json:"password" validate:"notblank"`
	MatchingPassword string `json:"matchingPassword" validate:"notblank,eqfield=Password"`
}

// AuthResponse carries a bearer token and its time to live.
type AuthResponse struct {
	Token                        string `json:"token"`
	ExpirationTimeInMilliseconds int64  `json:"expirationTimeInMilliseconds"`
}

// User is the authenticated session persisted between runs.
type User struct {
	Token          string    `json:"token"`
	ExpirationDate time.Time `json:"expirationDate"`
}

// Expired reports whether the token is no longer valid at now.
func (u User) Expired(now time.Time) bool {
	return !now.Before(u.ExpirationDate)
}

// StateView is the read model of the event store served to the dashboard.
type StateView struct {
	IsLoading                  bool      `json:"isLoading"`
	ErrorMessages              []string  `json:"errorMessages"`
	EndDateOfEvents            time.Time `json:"endDateOfEvents"`
	MaxRadiusOfEventsDetection *float64  `json:"maxRadiusOfEventsDetection"`
	EventToUpdate              *Event    `json:"eventToUpdate"`
	LastUpdatedEvent           *Event    `json:"lastUpdatedEvent"`
	LastDeletedEvent           *Event    `json:"lastDeletedEvent"`
	NumberOfEvents             int       `json:"numberOfEvents"`
}

// FiltersRequest changes the date cutoff and the detection radius. Absent
// fields leave the filter unchanged; ClearMaxRadius removes the radius filter.
type FiltersRequest struct {
	EndDateOfEvents            *Date    `json:"endDateOfEvents"`
	MaxRadiusOfEventsDetection *float64 `json:"maxRadiusOfEventsDetection"`
	ClearMaxRadius             bool     `json:"clearMaxRadius"`
}

// DeleteEventsRequest lists the ids of events removed in one go.
type DeleteEventsRequest struct {
	IDs []int64 `json:"ids"`
}

// SessionView describes the current session without exposing the token.
type SessionView struct {
	Authenticated  bool       `json:"authenticated"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
}
