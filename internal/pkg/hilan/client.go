// Package hilan talks to the Hilan attendance portal over HTTP.
package hilan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/eldar-magrafta/hilan-calculator/internal/config"
	"github.com/eldar-magrafta/hilan-calculator/internal/domain/portal"
)

// Headers the calendar page expects from a browser.
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	acceptHTML     = "text/html,application/xhtml+xml,application/xml"
	acceptLanguage = "he-IL,he;q=0.9,en-US;q=0.8,en;q=0.7"
)

// maxPageSize caps how much of the calendar page is read.
const maxPageSize = 8 << 20

// Client implements portal.Client.
type Client struct {
	http        *http.Client
	loginURL    string
	calendarURL string
	referer     string
}

// NewClient creates a portal client. A nil httpClient gets one with the
// configured timeout.
func NewClient(cfg config.PortalConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		http:        httpClient,
		loginURL:    base + cfg.LoginPath,
		calendarURL: base + cfg.CalendarPath,
		referer:     base + "/",
	}
}

type loginRequest struct {
	OrgID    string `json:"orgId"`
	Username string `json:"username"`
	Password string `json:"password"`
	IsEn     bool   `json:"isEn"`
}

type loginResponse struct {
	IsFail       bool   `json:"IsFail"`
	ErrorMessage string `json:"ErrorMessage"`
}

// FetchCalendar logs in with creds and returns the raw HTML of the
// attendance calendar page.
func (c *Client) FetchCalendar(ctx context.Context, creds portal.Credentials) (string, error) {
	if creds.OrgID == "" || creds.Username == "" || creds.Password == "" {
		return "", portal.ErrMissingCredentials
	}

	start := time.Now()
	cookie, err := c.login(ctx, creds)
	if err != nil {
		return "", err
	}

	page, err := c.calendar(ctx, cookie)
	if err != nil {
		return "", err
	}

	slog.Info("Fetched attendance calendar",
		"org_id", creds.OrgID,
		"username", creds.Username,
		"bytes", len(page),
		"duration", time.Since(start))
	return page, nil
}

func (c *Client) login(ctx context.Context, creds portal.Credentials) (string, error) {
	body, err := json.Marshal(loginRequest{
		OrgID:    creds.OrgID,
		Username: creds.Username,
		Password: creds.Password,
		IsEn:     false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("Portal login failed", "org_id", creds.OrgID, "username", creds.Username, "status", resp.StatusCode)
		return "", &portal.StatusError{Err: portal.ErrLoginFailed, StatusCode: resp.StatusCode}
	}

	var result loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: invalid login response: %v", portal.ErrLoginFailed, err)
	}
	if result.IsFail {
		slog.Warn("Portal rejected login", "org_id", creds.OrgID, "username", creds.Username)
		return "", &portal.RejectedError{Message: result.ErrorMessage}
	}

	cookie := cookieHeader(resp.Header.Values("Set-Cookie"))
	if cookie == "" {
		return "", portal.ErrNoCookies
	}
	return cookie, nil
}

func (c *Client) calendar(ctx context.Context, cookie string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.calendarURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build calendar request: %w", err)
	}
	req.Header.Set("Cookie", cookie)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Referer", c.referer)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("Calendar fetch failed", "status", resp.StatusCode)
		return "", &portal.StatusError{Err: portal.ErrCalendarFetchFailed, StatusCode: resp.StatusCode}
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", portal.ErrCalendarFetchFailed, err)
	}
	return string(page), nil
}

// cookieHeader keeps the name=value part of each Set-Cookie header and joins
// them the way a Cookie request header expects.
func cookieHeader(setCookies []string) string {
	parts := make([]string, 0, len(setCookies))
	for _, sc := range setCookies {
		nv, _, _ := strings.Cut(sc, ";")
		if nv = strings.TrimSpace(nv); nv != "" {
			parts = append(parts, nv)
		}
	}
	return strings.Join(parts, "; ")
}

func unreachable(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", portal.ErrPortalUnreachable, err)
}
