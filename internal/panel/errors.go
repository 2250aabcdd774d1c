package panel

import (
	"errors"

	"github.com/rflorenc/teamroadmaps/internal/platform"
)

var (
	// ErrTeamUnavailable is fatal: the panel cannot be used and the caller
	// should navigate away.
	ErrTeamUnavailable = errors.New("team unavailable")

	ErrNoTeam            = errors.New("no team loaded")
	ErrNoPendingRemoval  = errors.New("no roadmap pending removal")
	ErrUnknownResource   = errors.New("roadmap is not assigned to the team")
	ErrInvalidTransition = errors.New("invalid modal transition")
	ErrEmptyResponse     = errors.New("empty response from server")
)

// userMessage returns the server-provided message for err, or fallback.
func userMessage(err error, fallback string) string {
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
