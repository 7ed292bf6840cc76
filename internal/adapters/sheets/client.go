// Package sheets implements the Remote Sync Gateway against the
// spreadsheet-backed web app. Every operation is one HTTP round trip;
// any non-2xx status or success:false response is a failure wrapped in
// domain.ErrTransport. The client never retries.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"roomreserve/internal/domain"
)

type client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a SyncGateway that calls the web app at baseURL.
// Timeouts are the injected http.Client's responsibility.
func NewClient(baseURL string, httpClient *http.Client) domain.SyncGateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{baseURL: baseURL, httpClient: httpClient}
}

// submissionDTO is the wire shape of a submission. Timestamps travel as
// ISO 8601 strings, the format the original client wrote into the sheet.
type submissionDTO struct {
	ID        string   `json:"id"`
	RoomSize  int      `json:"roomSize"`
	Names     []string `json:"names"`
	Timestamp string   `json:"timestamp"`
}

type allDataResponse struct {
	Success        bool            `json:"success"`
	RoomLimits     map[string]int  `json:"roomLimits"`
	AvailableNames []string        `json:"availableNames"`
	UsedNames      []string        `json:"usedNames"`
	Submissions    []submissionDTO `json:"submissions"`
	Error          string          `json:"error"`
}

type actionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func transportErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrTransport, op, err)
}

func remoteErr(op, msg string) error {
	if msg == "" {
		msg = "remote reported failure"
	}
	return fmt.Errorf("%w: %s: %s", domain.ErrTransport, op, msg)
}

func (c *client) LoadAll(ctx context.Context) (*domain.Snapshot, error) {
	const op = "getAllData"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?action=getAllData", nil)
	if err != nil {
		return nil, transportErr(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportErr(op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteErr(op, fmt.Sprintf("status %d", resp.StatusCode))
	}

	var data allDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, transportErr(op, err)
	}
	if !data.Success {
		return nil, remoteErr(op, data.Error)
	}

	snap := &domain.Snapshot{
		RoomLimits:     make(map[domain.RoomSize]int, len(data.RoomLimits)),
		AvailableNames: data.AvailableNames,
		UsedNames:      data.UsedNames,
	}
	for key, limit := range data.RoomLimits {
		size, err := strconv.Atoi(key)
		if err != nil || size <= 0 {
			return nil, remoteErr(op, fmt.Sprintf("bad room size key %q", key))
		}
		snap.RoomLimits[domain.RoomSize(size)] = limit
	}
	for _, dto := range data.Submissions {
		ts, err := time.Parse(time.RFC3339, dto.Timestamp)
		if err != nil {
			return nil, remoteErr(op, fmt.Sprintf("bad timestamp %q on submission %s", dto.Timestamp, dto.ID))
		}
		snap.Submissions = append(snap.Submissions, &domain.Submission{
			ID:        dto.ID,
			RoomSize:  domain.RoomSize(dto.RoomSize),
			Names:     dto.Names,
			Timestamp: ts,
		})
	}
	return snap, nil
}

func (c *client) PersistSubmission(ctx context.Context, sub *domain.Submission) error {
	return c.post(ctx, "addSubmission", map[string]any{
		"action":    "addSubmission",
		"id":        sub.ID,
		"roomSize":  sub.RoomSize.Int(),
		"names":     sub.Names,
		"timestamp": sub.Timestamp.UTC().Format(time.RFC3339Nano),
	})
}

func (c *client) DeleteSubmission(ctx context.Context, id string) error {
	return c.post(ctx, "deleteSubmission", map[string]any{
		"action": "deleteSubmission",
		"id":     id,
	})
}

func (c *client) UpdateCapacity(ctx context.Context, size domain.RoomSize, limit int) error {
	return c.post(ctx, "updateRoomLimit", map[string]any{
		"action":   "updateRoomLimit",
		"roomSize": size.Int(),
		"limit":    limit,
	})
}

func (c *client) ResetAll(ctx context.Context) error {
	return c.post(ctx, "resetAllData", map[string]any{
		"action": "resetAllData",
	})
}

func (c *client) ReplaceNames(ctx context.Context, names []string) error {
	return c.post(ctx, "updateAvailableNames", map[string]any{
		"action": "updateAvailableNames",
		"names":  names,
	})
}

func (c *client) ExportSubmissions(ctx context.Context) ([]byte, error) {
	const op = "downloadSubmissions"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?action=downloadSubmissions", nil)
	if err != nil {
		return nil, transportErr(op, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportErr(op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteErr(op, fmt.Sprintf("status %d", resp.StatusCode))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(op, err)
	}
	return data, nil
}

// post sends one action request and checks the mandatory success flag.
func (c *client) post(ctx context.Context, op string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return transportErr(op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return transportErr(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportErr(op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteErr(op, fmt.Sprintf("status %d", resp.StatusCode))
	}

	var result actionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return transportErr(op, err)
	}
	if !result.Success {
		return remoteErr(op, result.Error)
	}
	return nil
}
