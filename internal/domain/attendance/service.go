package attendance

import (
	"context"
)

// AttendanceService defines business logic for the hours dashboard
type AttendanceService interface {
	// FetchHours logs into the portal, extracts the month and opens a session
	FetchHours(ctx context.Context, req FetchHoursRequest) (FetchHoursResponse, error)

	// FetchSummary runs the same pipeline without opening a session
	FetchSummary(ctx context.Context, req FetchHoursRequest) (HoursSummary, error)

	// GetSummary recomputes the summary of an open session
	GetSummary(ctx context.Context, sessionID string) (HoursSummary, error)

	// ClassifyDay stores an override, recomputes and notifies subscribers
	ClassifyDay(ctx context.Context, req ClassifyDayRequest) (HoursSummary, error)

	// Export renders the session as csv, xlsx or pdf
	Export(ctx context.Context, req ExportRequest) (ExportFile, error)

	// IssueStreamToken returns a short-lived token for Subscribe
	IssueStreamToken(ctx context.Context, sessionID string) (StreamTokenResponse, error)

	// Subscribe streams summaries of a session until ctx is done
	Subscribe(ctx context.Context, sessionID string) (<-chan SummaryEvent, func())

	// EndSession drops the session and revokes its token
	EndSession(ctx context.Context, sessionID string, token string) error
}
