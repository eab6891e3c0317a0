package testsessions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lumokids/playledger/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitSessions submits sessions concurrently using a worker pool
func submitSessions(ctx context.Context, config *Config, sessions []Session, stats *Stats) error {
	logger.Get().Info(ctx, "submitting sessions",
		logger.Int("sessions", len(sessions)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/matches"

	// Counters for statistics
	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	sessionChan := make(chan Session, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for session := range sessionChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleSession(ctx, client, url, session)

					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						atomic.AddInt64(&successful, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						logger.Get().Debug(ctx, "session submitted",
							logger.String("game", session.Game),
							logger.String("result", result))
					}
				}
			}
		}()
	}

	// Send sessions to workers
	go func() {
		defer close(sessionChan)
		for _, session := range sessions {
			select {
			case <-ctx.Done():
				return
			case sessionChan <- session:
			}
		}
	}()

	wg.Wait()

	stats.SessionsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SessionsSuccessful = int(atomic.LoadInt64(&successful))
	stats.SessionsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.SessionsFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "session submission completed",
		logger.Int("successful", stats.SessionsSuccessful),
		logger.Int("duplicate", stats.SessionsDuplicate),
		logger.Int("failed", stats.SessionsFailed))

	return nil
}

// submitSingleSession submits a single session and returns the result
func submitSingleSession(ctx context.Context, client *HTTPClient, url string, session Session) string {
	resp, err := client.Post(ctx, url, session)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case StatusAccepted:
		return "success"
	case StatusOK:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate"
	default:
		return "failed"
	}
}

// fetchSummary retrieves the dashboard aggregates.
func fetchSummary(ctx context.Context, client *HTTPClient, baseURL string) (*SummaryResponse, error) {
	resp, err := client.Get(ctx, baseURL+"/summary")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summary: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("summary returned status %d", resp.StatusCode)
	}
	var summary SummaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse summary: %w", err)
	}
	return &summary, nil
}

// fetchLedger retrieves one game's full history in the wire format.
func fetchLedger(ctx context.Context, client *HTTPClient, baseURL, gameKey string) ([]WireDay, error) {
	resp, err := client.Get(ctx, baseURL+"/ledgers/"+gameKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger %s: %w", gameKey, err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", gameKey, err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("ledger %s returned status %d", gameKey, resp.StatusCode)
	}
	var days []WireDay
	if err := json.Unmarshal(body, &days); err != nil {
		return nil, fmt.Errorf("failed to parse ledger %s: %w", gameKey, err)
	}
	return days, nil
}
