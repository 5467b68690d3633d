package client

import (
	"context"
	"fmt"

	"github.com/valyala/fasthttp"

	"global-terrorism-dashboard/internal/model"
)

// EventClient covers the /events resource.
type EventClient struct {
	*Client
	pageSize int
}

// NewEventClient wraps c. pageSize bounds the listing request.
func NewEventClient(c *Client, pageSize int) *EventClient {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &EventClient{Client: c, pageSize: pageSize}
}

// GetAll pages through /events until a page comes back shorter than the page size.
func (c *EventClient) GetAll(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	for page := 0; ; page++ {
		var resp model.EventsPage
		path := fmt.Sprintf("/events?page=%d&size=%d", page, c.pageSize)
		if err := c.do(ctx, "get_all_events", fasthttp.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}
		events = append(events, resp.Content...)
		if len(resp.Content) < c.pageSize {
			return events, nil
		}
	}
}

func (c *EventClient) Get(ctx context.Context, id int64) (model.Event, error) {
	var event model.Event
	err := c.do(ctx, "get_event", fasthttp.MethodGet, fmt.Sprintf("/events/%d", id), nil, &event)
	return event, err
}

func (c *EventClient) Add(ctx context.Context, draft model.EventDTO) (model.Event, error) {
	var event model.Event
	err := c.do(ctx, "add_event", fasthttp.MethodPost, "/events", draft, &event)
	return event, err
}

func (c *EventClient) Update(ctx context.Context, draft model.EventDTO) (model.Event, error) {
	var event model.Event
	err := c.do(ctx, "update_event", fasthttp.MethodPut, fmt.Sprintf("/events/%d", draft.ID), draft, &event)
	return event, err
}

func (c *EventClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_event", fasthttp.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil)
}

// AuthClient covers the authentication and registration endpoints.
type AuthClient struct {
	*Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{Client: c}
}

func (c *AuthClient) Login(ctx context.Context, data model.LoginData) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, "login", fasthttp.MethodPost, "/authentication", data, &resp)
	return resp, err
}

// Register creates an account and returns a token for it.
func (c *AuthClient) Register(ctx context.Context, data model.RegistrationData) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, "register", fasthttp.MethodPost, "/registration/register", data, &resp)
	return resp, err
}
