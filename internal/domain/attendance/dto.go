package attendance

import (
	"strings"

	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/validator"
)

// ========================================
// HOURS DTOs
// ========================================

// FetchHoursRequest carries the portal credentials of the user.
type FetchHoursRequest struct {
	OrgID    string `json:"orgId"`
	Username string `json:"username"`
	Password string `json:"password"`
	IsEn     bool   `json:"isEn"`
}

func (r *FetchHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	r.OrgID = strings.TrimSpace(r.OrgID)
	r.Username = strings.TrimSpace(r.Username)

	if validator.IsEmpty(r.OrgID) {
		errs = append(errs, validator.ValidationError{
			Field:   "orgId",
			Message: "orgId is required",
		})
	}

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}

	if r.Password == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// FetchHoursResponse is returned after a successful portal fetch.
type FetchHoursResponse struct {
	SessionToken string       `json:"session_token"`
	ExpiresAt    int64        `json:"expires_at"`
	Summary      HoursSummary `json:"summary"`
}

// ClassifyDayRequest overrides the classification of one day.
type ClassifyDayRequest struct {
	SessionID string         `json:"-"`
	Date      string         `json:"-"` // D/M/Y or D-M-Y
	Type      Classification `json:"type"`

	day calendar.Date
}

func (r *ClassifyDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session_id is required",
		})
	}

	if d, ok := validator.IsValidDayDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid D/M/Y date",
		})
	} else {
		r.day = d
	}

	if !r.Type.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: regular, vacation",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Day returns the parsed date. Only meaningful after a successful Validate.
func (r *ClassifyDayRequest) Day() calendar.Date {
	return r.day
}

// Export formats.
const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
	ExportPDF  = "pdf"
)

type ExportRequest struct {
	SessionID string
	Format    string
	Locale    calendar.Locale
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
	if r.Format == "" {
		r.Format = ExportCSV
	}
	if !validator.IsInSlice(r.Format, []string{ExportCSV, ExportXLSX, ExportPDF}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: csv, xlsx, pdf",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StreamTokenResponse carries a short-lived token for the summary stream.
type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// SummaryEvent is pushed to stream subscribers after every recompute.
type SummaryEvent struct {
	Event   string       `json:"event"`
	Summary HoursSummary `json:"summary"`
}
