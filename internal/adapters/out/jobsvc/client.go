package jobsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/order"
	"courier/internal/pkg/errs"
)

// defaultTimeout bounds a single job service call. The decision core treats a
// slow confirmation as a failed one and rolls back.
const defaultTimeout = 10 * time.Second

// Client implements ports.JobService over the job service REST API.
//
// Every call either returns the canonical order payload or an error wrapping
// errs.ErrNetworkFailure. HTTP-level failures and non-2xx responses are both
// network failures from the core's point of view: it cannot tell a lost
// response from a rejected request, and reconciliation handles the two the
// same way.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// NewClient creates a job service client for baseURL authenticating with
// authToken as a bearer token.
func NewClient(baseURL, authToken string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		authToken:  authToken,
	}
}

// Claim claims the offered job for the courier. The claim is exclusive: a
// failure here means the job is lost and must not be retried.
func (c *Client) Claim(ctx context.Context, offerID kernel.UUID) (*order.ActiveOrder, error) {
	url := fmt.Sprintf("%s/v1/jobs/%s/claim", c.baseURL, offerID)
	return c.post(ctx, "claim", url, nil)
}

// UpdateStatus reports a non-terminal status transition with the last-known
// position attached as context when available.
func (c *Client) UpdateStatus(
	ctx context.Context,
	orderID kernel.UUID,
	status order.Status,
	at *kernel.GeoPoint,
) (*order.ActiveOrder, error) {
	req := statusUpdateRequest{Status: status.String()}
	if at != nil {
		lat, lon := at.Latitude(), at.Longitude()
		req.Lat, req.Lon = &lat, &lon
	}

	url := fmt.Sprintf("%s/v1/orders/%s/status", c.baseURL, orderID)
	return c.post(ctx, "update status", url, req)
}

// Complete reports the terminal Delivered transition with the verified
// dropoff code.
func (c *Client) Complete(ctx context.Context, orderID kernel.UUID, code string) (*order.ActiveOrder, error) {
	url := fmt.Sprintf("%s/v1/orders/%s/complete", c.baseURL, orderID)
	return c.post(ctx, "complete", url, completeRequest{Code: code})
}

// post issues one POST call and decodes the canonical order payload.
func (c *Client) post(ctx context.Context, op, url string, body any) (*order.ActiveOrder, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewNetworkFailureError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, errs.NewNetworkFailureError(op,
			fmt.Errorf("status %d: %s", resp.StatusCode, errResp.Message))
	}

	var dto orderDTO
	if err = json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, errs.NewNetworkFailureError(op, err)
	}

	return dto.toDomain()
}
