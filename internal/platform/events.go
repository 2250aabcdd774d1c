package platform

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

// EventsURL returns the WebSocket URL of a team's event stream.
func (c *Client) EventsURL(teamID string) (string, error) {
	u, err := url.Parse(c.apiURL + "/v1-team-events/" + url.PathEscape(teamID))
	if err != nil {
		return "", fmt.Errorf("parsing events URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	return u.String(), nil
}

// SubscribeEvents opens the team's event stream. The returned channel is
// closed when ctx ends or the connection drops.
func (c *Client) SubscribeEvents(ctx context.Context, teamID string) (<-chan models.TeamEvent, error) {
	wsURL, err := c.EventsURL(teamID)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
	dialer := websocket.Dialer{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: c.tlsConfig(),
	}
	conn, resp, err := dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dialing events: HTTP %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dialing events: %w", err)
	}

	events := make(chan models.TeamEvent)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	go func() {
		defer close(events)
		defer close(done)
		defer conn.Close()
		for {
			var ev models.TeamEvent
			if err := conn.ReadJSON(&ev); err != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					c.logger.Warn("event stream closed", "team", teamID, "error", err)
				}
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

func (c *Client) tlsConfig() *tls.Config {
	if t, ok := c.httpClient.Transport.(*http.Transport); ok {
		return t.TLSClientConfig
	}
	return nil
}
