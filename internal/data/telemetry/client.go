// Package telemetry fetches tank snapshots from the controller's REST endpoint.
package telemetry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

const (
	DefaultEndpoint = "http://192.168.1.120:1880/restData"
	DefaultTimeout  = 10 * time.Second

	maxBodyBytes = 8 << 20
)

// ErrUnexpectedPayload is returned when the body is neither an object nor an array of objects
var ErrUnexpectedPayload = errors.New("unexpected telemetry payload")

// Fetcher produces one snapshot per call
type Fetcher interface {
	Fetch(ctx context.Context) (model.Snapshot, error)
}

// Client polls a single JSON endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for endpoint with the given request timeout
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the polled URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch performs one GET and normalizes the body into a snapshot
func (c *Client) Fetch(ctx context.Context) (model.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to fetch telemetry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Snapshot{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to read response body: %w", err)
	}

	records, err := DecodeRecords(body)
	if err != nil {
		return model.Snapshot{}, err
	}

	payload, err := CanonicalPayload(records)
	if err != nil {
		return model.Snapshot{}, err
	}

	util.LogDebug("Fetched telemetry snapshot",
		util.F("records", len(records)), util.F("fingerprint", util.PayloadFingerprint(payload)))

	return model.Snapshot{
		Records:   records,
		Payload:   payload,
		FetchedAt: time.Now(),
	}, nil
}

// DecodeRecords accepts a JSON array of objects or a single object, the
// latter becoming a one-element snapshot.
func DecodeRecords(body []byte) ([]model.TankRecord, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnexpectedPayload)
	}

	switch body[0] {
	case '[':
		var records []model.TankRecord
		if err := sonic.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
		}
		out := records[:0]
		for _, r := range records {
			if r != nil {
				out = append(out, r)
			}
		}
		return out, nil
	case '{':
		var record model.TankRecord
		if err := sonic.Unmarshal(body, &record); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
		}
		return []model.TankRecord{record}, nil
	default:
		return nil, fmt.Errorf("%w: starts with %q", ErrUnexpectedPayload, body[0])
	}
}

// CanonicalPayload encodes records with sorted keys so that equal snapshots
// always produce equal bytes.
func CanonicalPayload(records []model.TankRecord) ([]byte, error) {
	if records == nil {
		records = []model.TankRecord{}
	}
	data, err := sonic.ConfigStd.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}
