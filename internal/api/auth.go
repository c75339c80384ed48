package api

import (
	"context"
	"net/http"

	"github.com/julianstephens/dayring/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued bearer token plus the profile so the
// caller can greet the user without a second round trip.
type AuthResponse struct {
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.public(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.public(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.get(ctx, "/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateName(ctx context.Context, fullName string) (*models.Profile, error) {
	var out models.Profile
	body := map[string]string{"fullName": fullName}
	if err := c.send(ctx, http.MethodPut, "/me/name", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAutoSaveTime sets the server-side nightly auto-save time (HH:MM,
// empty disables it).
func (c *Client) UpdateAutoSaveTime(ctx context.Context, hhmm string) (*models.Profile, error) {
	var out models.Profile
	body := map[string]string{"autoSaveTime": hhmm}
	if err := c.send(ctx, http.MethodPut, "/me/autosave-time", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTimeZone(ctx context.Context, zoneID string) (*models.Profile, error) {
	var out models.Profile
	body := map[string]string{"timeZoneId": zoneID}
	if err := c.send(ctx, http.MethodPut, "/me/timezone", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
