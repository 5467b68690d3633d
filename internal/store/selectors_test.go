package store

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"global-terrorism-dashboard/internal/model"
)

func TestSelectAllEvents_FollowsIDOrder(t *testing.T) {
	state := stateWith(event3, event1, event2)
	assert.Equal(t, []model.Event{event3, event1, event2}, SelectAllEvents(state))
}

func TestSelectAllEventsBeforeDate(t *testing.T) {
	events := []model.Event{event1, event2, event3, event4}

	t.Run("cutoff is exclusive", func(t *testing.T) {
		cutoff := time.Date(1999, time.March, 3, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, []model.Event{event3, event4}, SelectAllEventsBeforeDate(events, cutoff))
	})

	t.Run("day after includes the cutoff day", func(t *testing.T) {
		cutoff := time.Date(1999, time.March, 4, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, []model.Event{event2, event3, event4}, SelectAllEventsBeforeDate(events, cutoff))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SelectAllEventsBeforeDate(nil, fixedNow))
	})
}

func TestSelectAllEventsBeforeDate_IsMonotonic(t *testing.T) {
	events := []model.Event{event1, event2, event3, event4}
	start := time.Date(1998, time.January, 1, 0, 0, 0, 0, time.UTC)

	previous := 0
	for cutoff := start; cutoff.Before(start.AddDate(3, 0, 0)); cutoff = cutoff.AddDate(0, 0, 7) {
		got := SelectAllEventsBeforeDate(events, cutoff)
		require.GreaterOrEqual(t, len(got), previous, "cutoff %s", cutoff)
		previous = len(got)
	}
	assert.Equal(t, len(events), previous)
}

func TestSelectAllEventsInRadius(t *testing.T) {
	events := []model.Event{event1, event2, event3, event4}
	origin := model.Coordinates{Latitude: 50, Longitude: 18}

	got := SelectAllEventsInRadius(events, radius(3500000), origin)

	assert.Equal(t, []model.Event{event1, event3, event4}, got)
}

func TestSelectAllEventsInRadius_NilRadiusReturnsInput(t *testing.T) {
	events := []model.Event{event1, event2, event3, event4}
	got := SelectAllEventsInRadius(events, nil, model.Coordinates{})
	assert.Equal(t, events, got)
}

func TestSelectAllEventsInRadius_BoundaryIsInclusive(t *testing.T) {
	origin := model.Coordinates{Latitude: 50, Longitude: 18}
	exact := Distance(origin, event4.City.Coordinates())

	got := SelectAllEventsInRadius([]model.Event{event4}, &exact, origin)

	assert.Equal(t, []model.Event{event4}, got)
}

func TestDistance(t *testing.T) {
	warsaw := model.Coordinates{Latitude: 52.2297, Longitude: 21.0122}
	krakow := model.Coordinates{Latitude: 50.0647, Longitude: 19.9450}

	assert.InDelta(t, 252000, Distance(warsaw, krakow), 2000)
	assert.Zero(t, Distance(warsaw, warsaw))
	assert.InDelta(t, Distance(warsaw, krakow), Distance(krakow, warsaw), 1e-6)
}

// offsetNorth returns a point meters north of origin.
func offsetNorth(origin model.Coordinates, meters float64) (float64, float64) {
	return origin.Latitude + meters/EarthRadius*180/math.Pi, origin.Longitude
}

func TestFilters_RadiusRunsOnDateFilteredSet(t *testing.T) {
	origin := model.Coordinates{Latitude: 10, Longitude: 10}

	latA, lngA := offsetNorth(origin, 1000)
	latB, lngB := offsetNorth(origin, 10)
	a := newEvent(1, model.NewDate(2000, time.January, 1), latA, lngA, 0, 0)
	b := newEvent(2, model.NewDate(2020, time.January, 1), latB, lngB, 0, 0)

	state := stateWith(a, b)
	state = Reduce(state, ChangeEndDateOfEvents{Date: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)})
	state = Reduce(state, ChangeMaxRadiusOfEventsDetection{Radius: radius(500)})

	beforeDate := SelectAllEventsBeforeDate(SelectAllEvents(state), state.EndDateOfEvents)
	require.Equal(t, []model.Event{a}, beforeDate)

	inRadiusOnly := SelectAllEventsInRadius(SelectAllEvents(state), state.MaxRadiusOfEventsDetection, origin)
	require.Equal(t, []model.Event{b}, inRadiusOnly)

	selectors := NewSelectors()
	assert.Empty(t, selectors.FilteredEvents(state, origin))
}

func TestSelectors_Memoization(t *testing.T) {
	origin := model.Coordinates{Latitude: 50, Longitude: 18}
	selectors := NewSelectors()

	state := stateWith(event1, event2, event3, event4)
	first := selectors.EventsBeforeDate(state)
	second := selectors.EventsBeforeDate(Reduce(state, StartFillingOutForm{}))
	require.Len(t, first, 4)
	assert.Same(t, &first[0], &second[0], "unchanged entities reuse the cached result")

	all := selectors.FilteredEvents(state, origin)
	assert.Len(t, all, 4)

	state = Reduce(state, ChangeMaxRadiusOfEventsDetection{Radius: radius(3500000)})
	assert.Equal(t, []model.Event{event1, event3, event4}, selectors.FilteredEvents(state, origin))

	state = Reduce(state, ChangeEndDateOfEvents{Date: time.Date(1999, time.March, 3, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, []model.Event{event3, event4}, selectors.FilteredEvents(state, origin))

	state = Reduce(state, DeleteEvent{Event: event3})
	assert.Equal(t, []model.Event{event4}, selectors.FilteredEvents(state, origin))

	far := model.Coordinates{Latitude: -60, Longitude: -120}
	assert.Empty(t, selectors.FilteredEvents(state, far))
}

func TestSelectors_DateViewRefreshInvalidatesRadiusView(t *testing.T) {
	origin := model.Coordinates{Latitude: 50, Longitude: 18}
	selectors := NewSelectors()

	state := stateWith(event1, event3)
	require.Len(t, selectors.FilteredEvents(state, origin), 2)

	state = Reduce(state, DeleteEvent{Event: event1})
	require.Len(t, selectors.EventsBeforeDate(state), 1)

	assert.Equal(t, []model.Event{event3}, selectors.FilteredEvents(state, origin))
}
