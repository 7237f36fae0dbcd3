package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"comanda/internal/models"
	"comanda/internal/realtime"
)

// Client talks to the comanda API as one asserted identity.
type Client struct {
	httpClient *http.Client
	BaseURL    string
	Role       string
	UserID     int
}

// NewClient creates an API client for the given base URL and identity.
func NewClient(baseURL, role string, userID int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Role:    role,
		UserID:  userID,
	}
}

// Ping checks if the API server is available.
func (c *Client) Ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// FetchOrders loads the role-scoped order list. The request is bound to
// the context so an in-flight fetch aborts as soon as the watcher is
// cancelled.
func (c *Client) FetchOrders(ctx context.Context) ([]models.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/orders", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-role", c.Role)
	req.Header.Set("x-user-id", strconv.Itoa(c.UserID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("list orders failed with status %d: %s", resp.StatusCode, body.Error)
	}

	var payload struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Orders, nil
}

// Subscribe opens the change-event socket on the server.
func (c *Client) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	wsURL := c.BaseURL + "/ws"
	if strings.HasPrefix(wsURL, "https") {
		wsURL = "wss" + wsURL[len("https"):]
	} else if strings.HasPrefix(wsURL, "http") {
		wsURL = "ws" + wsURL[len("http"):]
	}
	return realtime.SubscribeWS(ctx, wsURL)
}
