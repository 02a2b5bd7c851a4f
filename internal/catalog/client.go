package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"songcatalog/internal/models"
)

const songsPath = "/api/v1/songs"

// API is the remote song store the Store synchronizes with
type API interface {
	List(ctx context.Context, filter Filter) ([]*models.Song, error)
	Get(ctx context.Context, id string) (*models.Song, error)
	Create(ctx context.Context, input models.SongInput) (*models.Song, error)
	Update(ctx context.Context, id string, input models.SongInput) (*models.Song, error)
	Delete(ctx context.Context, id string) error
}

// APIError is a non-2xx answer from the song API
type APIError struct {
	StatusCode int
	Message    string
	Details    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("song API returned %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// IsNotFound reports whether err is an APIError with status 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// errorBody mirrors the server's error payload
type errorBody struct {
	Error   string            `json:"error"`
	Details string            `json:"details"`
	Fields  map[string]string `json:"fields"`
}

// Client talks to the song REST API
type Client struct {
	client *resty.Client
}

var _ API = (*Client)(nil)

// NewClient creates an API client for the server at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{client: client}
}

// List fetches songs matching filter
func (c *Client) List(ctx context.Context, filter Filter) ([]*models.Song, error) {
	var songs []*models.Song
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(filter.Params()).
		SetResult(&songs).
		SetError(&errorBody{}).
		Get(songsPath)
	if err := checkResponse(resp, err, "list songs"); err != nil {
		return nil, err
	}
	return songs, nil
}

// Get fetches one song
func (c *Client) Get(ctx context.Context, id string) (*models.Song, error) {
	var song models.Song
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&song).
		SetError(&errorBody{}).
		Get(songsPath + "/{id}")
	if err := checkResponse(resp, err, "get song"); err != nil {
		return nil, err
	}
	return &song, nil
}

// Create stores a new song and returns it with its assigned ID
func (c *Client) Create(ctx context.Context, input models.SongInput) (*models.Song, error) {
	var song models.Song
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&song).
		SetError(&errorBody{}).
		Post(songsPath)
	if err := checkResponse(resp, err, "create song"); err != nil {
		return nil, err
	}
	return &song, nil
}

// Update replaces the attributes of song id
func (c *Client) Update(ctx context.Context, id string, input models.SongInput) (*models.Song, error) {
	var song models.Song
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(input).
		SetResult(&song).
		SetError(&errorBody{}).
		Put(songsPath + "/{id}")
	if err := checkResponse(resp, err, "update song"); err != nil {
		return nil, err
	}
	return &song, nil
}

// Delete removes song id
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetError(&errorBody{}).
		Delete(songsPath + "/{id}")
	return checkResponse(resp, err, "delete song")
}

func checkResponse(resp *resty.Response, err error, operation string) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", operation, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
		apiErr.Fields = body.Fields
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return apiErr
}
