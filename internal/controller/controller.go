package controller

import (
	"errors"
	"strconv"
	"time"

	"global-terrorism-dashboard/internal/client"
	"global-terrorism-dashboard/internal/model"
	"global-terrorism-dashboard/internal/service"
	"global-terrorism-dashboard/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type DashboardController interface {
	ListEvents(c *fiber.Ctx) error
	GetState(c *fiber.Ctx) error
	FetchEvents(c *fiber.Ctx) error
	CreateEvent(c *fiber.Ctx) error
	EditEvent(c *fiber.Ctx) error
	UpdateEvent(c *fiber.Ctx) error
	DeleteEvent(c *fiber.Ctx) error
	DeleteEvents(c *fiber.Ctx) error
	StartForm(c *fiber.Ctx) error
	ChangeFilters(c *fiber.Ctx) error

	FatalVictims(c *fiber.Ctx) error
	InjuredVictims(c *fiber.Ctx) error
	EventsOverYears(c *fiber.Ctx) error
	Markers(c *fiber.Ctx) error

	Login(c *fiber.Ctx) error
	Register(c *fiber.Ctx) error
	Logout(c *fiber.Ctx) error
	Session(c *fiber.Ctx) error

	JournalSummary(c *fiber.Ctx) error
}

// dashboardController exposes HTTP handlers for the dashboard.
type dashboardController struct {
	dashboard service.DashboardService
}

// NewDashboardController builds a DashboardController.
func NewDashboardController(svc service.DashboardService) DashboardController {
	return &dashboardController{dashboard: svc}
}

// ListEvents returns the filtered events, optionally around ?lat=&lng=.
func (h *dashboardController) ListEvents(c *fiber.Ctx) error {
	origin, err := parseOrigin(c)
	if err != nil {
		return err
	}
	return c.JSON(h.dashboard.Events(origin))
}

func (h *dashboardController) GetState(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.State())
}

func (h *dashboardController) FetchEvents(c *fiber.Ctx) error {
	h.dashboard.FetchEvents()
	return c.SendStatus(fiber.StatusAccepted)
}

// CreateEvent validates the draft and starts adding it.
func (h *dashboardController) CreateEvent(c *fiber.Ctx) error {
	var draft model.EventDTO
	if err := c.BodyParser(&draft); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	if err := h.dashboard.AddEvent(draft); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *dashboardController) EditEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	h.dashboard.EditEvent(id)
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *dashboardController) UpdateEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var draft model.EventDTO
	if err := c.BodyParser(&draft); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	if err := h.dashboard.UpdateEvent(id, draft); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *dashboardController) DeleteEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.dashboard.DeleteEvent(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *dashboardController) DeleteEvents(c *fiber.Ctx) error {
	var req model.DeleteEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}
	if err := h.dashboard.DeleteEvents(req.IDs); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *dashboardController) StartForm(c *fiber.Ctx) error {
	h.dashboard.StartFillingOutForm()
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *dashboardController) ChangeFilters(c *fiber.Ctx) error {
	var req model.FiltersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}
	if err := h.dashboard.ChangeFilters(req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.dashboard.State())
}

func (h *dashboardController) FatalVictims(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.FatalVictims())
}

func (h *dashboardController) InjuredVictims(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.InjuredVictims())
}

func (h *dashboardController) EventsOverYears(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.EventsOverYears())
}

func (h *dashboardController) Markers(c *fiber.Ctx) error {
	origin, err := parseOrigin(c)
	if err != nil {
		return err
	}
	return c.JSON(h.dashboard.Markers(origin))
}

func (h *dashboardController) Login(c *fiber.Ctx) error {
	var data model.LoginData
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	view, err := h.dashboard.Login(c.UserContext(), data)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// Register signs up a new account and logs it in.
func (h *dashboardController) Register(c *fiber.Ctx) error {
	var data model.RegistrationData
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	view, err := h.dashboard.Register(c.UserContext(), data)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *dashboardController) Logout(c *fiber.Ctx) error {
	h.dashboard.Logout()
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *dashboardController) Session(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.Session())
}

func (h *dashboardController) JournalSummary(c *fiber.Ctx) error {
	counts, err := h.dashboard.JournalSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(counts)
}

// writeError answers with the error payload shape of the upstream API.
func writeError(c *fiber.Ctx, err error) error {
	var status int
	messages := []string{err.Error()}

	var verr *validation.ValidationError
	var apiErr *client.APIError
	switch {
	case errors.As(err, &verr):
		status = fiber.StatusBadRequest
		messages = verr.Messages
	case errors.Is(err, service.ErrEventNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrJournalDisabled):
		status = fiber.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		status = apiErr.Status
		messages = client.Messages(err)
	default:
		status = fiber.StatusBadGateway
		messages = client.Messages(err)
	}

	return c.Status(status).JSON(model.ErrorResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Errors:    messages,
	})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}
	return id, nil
}

func parseOrigin(c *fiber.Ctx) (*model.Coordinates, error) {
	rawLat := utils.Trim(c.Query("lat"), ' ')
	rawLng := utils.Trim(c.Query("lng"), ' ')
	if rawLat == "" && rawLng == "" {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(rawLat, 64)
	lng, lngErr := strconv.ParseFloat(rawLng, 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "lat and lng must be valid coordinates")
	}
	return &model.Coordinates{Latitude: lat, Longitude: lng}, nil
}
