package source

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/emergence-sim/emergence/internal/events"
)

// Handler receives decoded events from the live stream.
type Handler func(*events.Event)

// StateFunc is notified when the subscription connects or drops.
type StateFunc func(connected bool)

// Subscribe opens the backend's SSE stream and delivers each decoded
// event to the handler until the context is canceled or the stream drops.
// The state callback fires once on connect and once on loss; no
// reconnection is attempted here. Returns nil on context cancellation and
// the underlying error when the stream fails.
func (c *Client) Subscribe(ctx context.Context, onEvent Handler, onState StateFunc) error {
	if onState == nil {
		onState = func(bool) {}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/events/stream", nil)
	if err != nil {
		return fmt.Errorf("failed to build stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	// The stream is long-lived; bypass the REST timeout
	client := &http.Client{Transport: c.http.Transport}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("event stream connect failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("event stream returned status %d", resp.StatusCode)
	}

	onState(true)
	defer onState(false)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			// Frame boundary: dispatch any accumulated data
			if payload := data.String(); payload != "" {
				if event, err := events.DecodeEvent([]byte(payload)); err == nil {
					onEvent(event)
				}
				// Undecodable frames (pings, heartbeats) are skipped
			}
			data.Reset()
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		default:
			// comment or field we don't use (event:, id:, retry:)
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("event stream closed: %w", err)
	}
	return nil
}
