// Package kioskclient provides an HTTP client for the kiosk endpoints of the
// lab API, used by headless kiosk terminals.
package kioskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"comlab/internal/uuid"
)

// Result is a kiosk response. Which fields are filled depends on the step.
type Result struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	StudentID   string   `json:"student_id"`
	StudentName string   `json:"student_name"`
	SignedIn    bool     `json:"signed_in"`
	SignedOut   bool     `json:"signed_out"`
	UnitID      string   `json:"unit_id"`
	Units       []string `json:"units"`
}

// APIError is a non-2xx kiosk response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d, %s)", e.Message, e.StatusCode, e.Code)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// Client talks to the kiosk API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a kiosk API client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Identify is step one: sign out a signed-in student or list available PCs.
func (c *Client) Identify(ctx context.Context, studentID string) (*Result, error) {
	return c.post(ctx, "/api/v1/kiosk/identify", map[string]string{"student_id": studentID})
}

// Finalize is step two: claim unitID for the student.
func (c *Client) Finalize(ctx context.Context, studentID, unitID string) (*Result, error) {
	return c.post(ctx, "/api/v1/kiosk/finalize", map[string]string{"student_id": studentID, "unit_id": unitID})
}

// SignOut releases the student's PC.
func (c *Client) SignOut(ctx context.Context, studentID string) (*Result, error) {
	return c.post(ctx, "/api/v1/kiosk/sign-out", map[string]string{"student_id": studentID})
}

// Status reports the student's assignment without changing it.
func (c *Client) Status(ctx context.Context, studentID string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/kiosk/status/"+url.PathEscape(studentID), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, "fetching status")
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*Result, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, "calling "+path)
}

func (c *Client) do(req *http.Request, action string) (*Result, error) {
	req.Header.Set("X-Request-ID", uuid.New())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Message = body.Error
			apiErr.Code = body.Code
		}
		return nil, apiErr
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &result, nil
}
