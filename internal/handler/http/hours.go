package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/handler/http/middleware"
	"github.com/eldar-magrafta/hilan-calculator/internal/handler/http/response"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/jwt"
)

const streamKeepalive = 30 * time.Second

type HoursHandler interface {
	Fetch(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ClassifyDay(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
	LegacyFetch(w http.ResponseWriter, r *http.Request)
}

type hoursHandlerImpl struct {
	hoursService  attendance.AttendanceService
	jwtService    jwt.Service
	defaultLocale calendar.Locale
}

func NewHoursHandler(hoursService attendance.AttendanceService, jwtService jwt.Service, defaultLocale calendar.Locale) HoursHandler {
	return &hoursHandlerImpl{
		hoursService:  hoursService,
		jwtService:    jwtService,
		defaultLocale: defaultLocale,
	}
}

// Fetch implements HoursHandler.
func (h *hoursHandlerImpl) Fetch(w http.ResponseWriter, r *http.Request) {
	var req attendance.FetchHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.hoursService.FetchHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Hours fetched successfully", result)
}

// Get implements HoursHandler.
func (h *hoursHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.hoursService.GetSummary(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// ClassifyDay implements HoursHandler.
func (h *hoursHandlerImpl) ClassifyDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClassifyDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.SessionID = middleware.SessionIDFromContext(r.Context())
	req.Date = chi.URLParam(r, "date")

	summary, err := h.hoursService.ClassifyDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day classification updated", summary)
}

// Export implements HoursHandler.
func (h *hoursHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	locale := h.defaultLocale
	if l := r.URL.Query().Get("locale"); l != "" {
		locale = calendar.ParseLocale(l)
	}

	file, err := h.hoursService.Export(r.Context(), attendance.ExportRequest{
		SessionID: middleware.SessionIDFromContext(r.Context()),
		Format:    r.URL.Query().Get("format"),
		Locale:    locale,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}

// StreamToken implements HoursHandler.
func (h *hoursHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	result, err := h.hoursService.IssueStreamToken(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stream handles the SSE connection pushing recomputed summaries
func (h *hoursHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, so the token comes in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	sessionID, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	current, err := h.hoursService.GetSummary(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hoursService.Subscribe(r.Context(), sessionID)
	defer cleanup()

	writeEvent(w, "summary", current)
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				fmt.Fprint(w, "event: closed\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			writeEvent(w, event.Event, event.Summary)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, summary attendance.HoursSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		slog.Error("Failed to encode stream event", "event", name, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}

// End implements HoursHandler.
func (h *hoursHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.hoursService.EndSession(ctx, middleware.SessionIDFromContext(ctx), middleware.SessionTokenFromContext(ctx)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session ended", nil)
}

// LegacyFetch serves the one-shot endpoint of the first dashboard: the
// summary of the current month, without a session.
func (h *hoursHandlerImpl) LegacyFetch(w http.ResponseWriter, r *http.Request) {
	var req attendance.FetchHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	summary, err := h.hoursService.FetchSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
