package portal

import "context"

// Credentials identify a user on the attendance portal.
type Credentials struct {
	OrgID    string
	Username string
	Password string
}

// Client authenticates against the portal and returns the raw calendar page.
type Client interface {
	FetchCalendar(ctx context.Context, creds Credentials) (string, error)
}
