package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/domain/portal"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/jwt"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/sse"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/storage"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/export"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/extractor"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/hours"
)

// EventSummaryUpdated is published after every reclassification.
const EventSummaryUpdated = "summary.updated"

type Config struct {
	SessionTTL time.Duration
	Locale     calendar.Locale
	// Location decides what "today" is; defaults to time.Local
	Location *time.Location
	// Now defaults to time.Now
	Now func() time.Time
}

type AttendanceServiceImpl struct {
	portalClient portal.Client
	extractor    *extractor.Extractor
	sessionRepo  attendance.SessionRepository
	jwtService   jwt.Service
	hub          *sse.Hub
	exporter     *export.Exporter
	snapshots    *storage.Snapshots
	config       Config
}

// NewAttendanceService wires the hours pipeline. snapshots may be nil.
func NewAttendanceService(
	portalClient portal.Client,
	extractor *extractor.Extractor,
	sessionRepo attendance.SessionRepository,
	jwtService jwt.Service,
	hub *sse.Hub,
	exporter *export.Exporter,
	snapshots *storage.Snapshots,
	cfg Config,
) attendance.AttendanceService {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	return &AttendanceServiceImpl{
		portalClient: portalClient,
		extractor:    extractor,
		sessionRepo:  sessionRepo,
		jwtService:   jwtService,
		hub:          hub,
		exporter:     exporter,
		snapshots:    snapshots,
		config:       cfg,
	}
}

func (s *AttendanceServiceImpl) now() time.Time {
	return s.config.Now().In(s.config.Location)
}

func (s *AttendanceServiceImpl) today() calendar.Date {
	return calendar.NewDate(s.now())
}

// fetch runs the portal round-trip and the extraction pipeline
func (s *AttendanceServiceImpl) fetch(ctx context.Context, req attendance.FetchHoursRequest) (ParsedPage, error) {
	if err := req.Validate(); err != nil {
		return ParsedPage{}, err
	}

	html, err := s.portalClient.FetchCalendar(ctx, portal.Credentials{
		OrgID:    req.OrgID,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return ParsedPage{}, err
	}

	today := s.today()
	parsed, err := ParsePage(s.extractor, html, attendance.MonthYear{Month: today.Month, Year: today.Year})
	s.saveSnapshot(ctx, parsed.Header, html)
	if err != nil {
		slog.Warn("No entries extracted from calendar page", "org_id", req.OrgID, "error", err)
		return ParsedPage{}, err
	}

	slog.Info("Calendar page parsed",
		"org_id", req.OrgID,
		"month", parsed.Month.String(),
		"strategy", parsed.Strategy,
		"days", len(parsed.Entries))
	return parsed, nil
}

func (s *AttendanceServiceImpl) saveSnapshot(ctx context.Context, header attendance.MonthYear, html string) {
	if s.snapshots == nil {
		return
	}
	path, err := s.snapshots.Save(ctx, header.Month, header.Year, html)
	if err != nil {
		slog.Error("Failed to save calendar snapshot", "error", err)
		return
	}
	slog.Debug("Calendar snapshot saved", "path", path)
}

// FetchHours implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FetchHours(ctx context.Context, req attendance.FetchHoursRequest) (attendance.FetchHoursResponse, error) {
	parsed, err := s.fetch(ctx, req)
	if err != nil {
		return attendance.FetchHoursResponse{}, err
	}

	state := hours.NewClassificationState(parsed.Entries, nil)
	state.Initialize()

	now := s.now()
	session, err := s.sessionRepo.Create(ctx, attendance.Session{
		ID:              uuid.NewString(),
		Month:           parsed.Month,
		Entries:         parsed.Entries,
		Classifications: state.Map(),
		CreatedAt:       now,
		UpdatedAt:       now,
		ExpiresAt:       now.Add(s.config.SessionTTL),
	})
	if err != nil {
		return attendance.FetchHoursResponse{}, fmt.Errorf("failed to create session: %w", err)
	}

	token, expiresAt, err := s.jwtService.GenerateSessionToken(session.ID)
	if err != nil {
		return attendance.FetchHoursResponse{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	return attendance.FetchHoursResponse{
		SessionToken: token,
		ExpiresAt:    expiresAt,
		Summary:      s.summarize(session, s.localeFor(req)),
	}, nil
}

// FetchSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FetchSummary(ctx context.Context, req attendance.FetchHoursRequest) (attendance.HoursSummary, error) {
	parsed, err := s.fetch(ctx, req)
	if err != nil {
		return attendance.HoursSummary{}, err
	}

	state := hours.NewClassificationState(parsed.Entries, nil)
	state.Initialize()
	return hours.NewCalculator(s.localeFor(req)).Summarize(parsed.Entries, state, parsed.Month, s.today()), nil
}

func (s *AttendanceServiceImpl) localeFor(req attendance.FetchHoursRequest) calendar.Locale {
	if req.IsEn {
		return calendar.LocaleEnglish
	}
	return s.config.Locale
}

// GetSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetSummary(ctx context.Context, sessionID string) (attendance.HoursSummary, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return attendance.HoursSummary{}, err
	}
	return s.summarize(session, s.config.Locale), nil
}

// ClassifyDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClassifyDay(ctx context.Context, req attendance.ClassifyDayRequest) (attendance.HoursSummary, error) {
	if err := req.Validate(); err != nil {
		return attendance.HoursSummary{}, err
	}

	session, err := s.loadSession(ctx, req.SessionID)
	if err != nil {
		return attendance.HoursSummary{}, err
	}

	entry, ok := session.EntryFor(req.Day())
	if !ok {
		return attendance.HoursSummary{}, attendance.ErrDateOutsideMonth
	}
	if entry.IsWeekend() {
		return attendance.HoursSummary{}, attendance.ErrWeekendReclassification
	}

	session, err = s.sessionRepo.SetClassification(ctx, session.ID, entry.Date, req.Type)
	if err != nil {
		return attendance.HoursSummary{}, fmt.Errorf("failed to store classification: %w", err)
	}

	summary := s.summarize(session, s.config.Locale)
	s.hub.Publish(session.ID, sse.Event{
		SessionID: session.ID,
		Event:     EventSummaryUpdated,
		Data:      attendance.SummaryEvent{Event: EventSummaryUpdated, Summary: summary},
	})

	slog.Debug("Day reclassified", "session_id", session.ID, "date", entry.Date.String(), "type", req.Type)
	return summary, nil
}

// Export implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Export(ctx context.Context, req attendance.ExportRequest) (attendance.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return attendance.ExportFile{}, err
	}

	session, err := s.loadSession(ctx, req.SessionID)
	if err != nil {
		return attendance.ExportFile{}, err
	}

	locale := req.Locale
	if locale == "" {
		locale = s.config.Locale
	}
	return s.exporter.Export(s.summarize(session, locale), req.Format, locale)
}

// IssueStreamToken implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) IssueStreamToken(ctx context.Context, sessionID string) (attendance.StreamTokenResponse, error) {
	if _, err := s.loadSession(ctx, sessionID); err != nil {
		return attendance.StreamTokenResponse{}, err
	}

	token, expiresIn, err := s.jwtService.GenerateStreamToken(sessionID)
	if err != nil {
		return attendance.StreamTokenResponse{}, fmt.Errorf("failed to generate stream token: %w", err)
	}
	return attendance.StreamTokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

// Subscribe implements attendance.AttendanceService. The returned channel is
// closed when ctx is done or the session ends; cleanup must always be called.
func (s *AttendanceServiceImpl) Subscribe(ctx context.Context, sessionID string) (<-chan attendance.SummaryEvent, func()) {
	events, unsubscribe := s.hub.Subscribe(sessionID)
	out := make(chan attendance.SummaryEvent, cap(events))
	slog.Info("Summary stream opened",
		"session_id", sessionID,
		"session_subscribers", s.hub.SubscriberCount(sessionID),
		"total_subscribers", s.hub.TotalSubscribers(),
	)

	cleanup := func() {
		unsubscribe()
		slog.Info("Summary stream closed",
			"session_id", sessionID,
			"session_subscribers", s.hub.SubscriberCount(sessionID),
			"total_subscribers", s.hub.TotalSubscribers(),
		)
	}

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				summaryEvent, ok := ev.Data.(attendance.SummaryEvent)
				if !ok {
					continue
				}
				select {
				case out <- summaryEvent:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, cleanup
}

// EndSession implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndSession(ctx context.Context, sessionID string, token string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if token != "" {
		s.jwtService.RevokeToken(token, s.now().Add(s.config.SessionTTL).Unix())
	}
	s.hub.Close(sessionID)
	return nil
}

func (s *AttendanceServiceImpl) loadSession(ctx context.Context, sessionID string) (attendance.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return attendance.Session{}, err
	}
	if session.IsExpired(s.now()) {
		return attendance.Session{}, attendance.ErrSessionExpired
	}
	return session, nil
}

func (s *AttendanceServiceImpl) summarize(session attendance.Session, locale calendar.Locale) attendance.HoursSummary {
	state := hours.NewClassificationState(session.Entries, session.Classifications)
	return hours.NewCalculator(locale).Summarize(session.Entries, state, session.Month, s.today())
}
