package coreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"autosave/models"
)

// Client talks to the remote savings API on behalf of an authenticated user.
type Client struct {
	Base string
	HTTP *http.Client
}

func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx answer from the savings API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("savings api: status %d", e.Status)
	}
	return fmt.Sprintf("savings api: status %d: %s", e.Status, e.Message)
}

// MessageOf returns the server-provided message carried by err, if any.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return strings.TrimSpace(apiErr.Message)
	}
	return ""
}

type packagesEnvelope struct {
	Data []models.SelectablePackage `json:"data"`
}

type cardsEnvelope struct {
	Data []models.PaymentCard `json:"data"`
}

type scheduleEnvelope struct {
	Data models.CreateScheduleResponse `json:"data"`
}

func (c *Client) ListPackages(ctx context.Context, auth models.AuthSession) ([]models.SelectablePackage, error) {
	var out packagesEnvelope
	if err := c.do(ctx, auth, http.MethodGet, "/packages", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) ListCards(ctx context.Context, auth models.AuthSession) ([]models.PaymentCard, error) {
	var out cardsEnvelope
	if err := c.do(ctx, auth, http.MethodGet, "/cards", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateSchedule(ctx context.Context, auth models.AuthSession, req models.CreateScheduleRequest) (*models.CreateScheduleResponse, error) {
	var out scheduleEnvelope
	if err := c.do(ctx, auth, http.MethodPost, "/schedules", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) do(ctx context.Context, auth models.AuthSession, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("savings api: encode %s: %w", path, err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth.Token != "" {
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("savings api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil {
			if json.Unmarshal(raw, &payload) == nil {
				apiErr.Message = payload.Message
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("savings api: decode %s: %w", path, err)
	}
	return nil
}
