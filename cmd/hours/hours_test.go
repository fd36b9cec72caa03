package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarPage(days map[int]string) string {
	var b strings.Builder
	b.WriteString(`<html><body><span id="ctl00_mp_calendar_monthChanged">ספטמבר 2024</span><table><tr>`)
	for day := 1; day <= 30; day++ {
		if content, ok := days[day]; ok {
			fmt.Fprintf(&b, `<td class="cDIES" Days="%d"><table><tr><td class="dTS">%d</td></tr><tr><td><div class="cDM">%s</div></td></tr></table></td>`,
				9010+day-1, day, content)
		}
	}
	b.WriteString(`</tr></table></body></html>`)
	return b.String()
}

func writePage(t *testing.T, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calendar.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var firstDays = map[int]string{1: "9:00", 2: "8:30"}

func TestParse_JSON(t *testing.T) {
	path := writePage(t, calendarPage(firstDays))

	out, err := run(t, "parse", path, "--format", "json", "--today", "15/9/2024")
	require.NoError(t, err)

	var summary struct {
		TotalMinutes       int `json:"totalMinutes"`
		MonthlyRequirement struct {
			TotalRequiredMinutes int `json:"totalRequiredMinutes"`
			RemainingWorkdays    int `json:"remainingWorkdays"`
		} `json:"monthlyRequirement"`
		Entries []json.RawMessage `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1050, summary.TotalMinutes)
	assert.Equal(t, 11760, summary.MonthlyRequirement.TotalRequiredMinutes)
	assert.Equal(t, 12, summary.MonthlyRequirement.RemainingWorkdays)
	assert.Len(t, summary.Entries, 30)
}

func TestParse_Table(t *testing.T) {
	path := writePage(t, calendarPage(firstDays))

	out, err := run(t, "parse", path, "--today", "15/9/2024", "--locale", "en")
	require.NoError(t, err)

	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "1/9/2024")
	assert.Contains(t, out, "17 hours and 30 minutes (17:30)")
	assert.Contains(t, out, "Completion: 8.9%")
}

func TestParse_CSV(t *testing.T) {
	path := writePage(t, calendarPage(firstDays))

	out, err := run(t, "parse", path, "--format", "csv", "--today", "15/9/2024")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\ufeff"))
	assert.Contains(t, out, "17 שעות ו-30 דקות")
}

func TestParse_Errors(t *testing.T) {
	page := writePage(t, calendarPage(firstDays))
	empty := writePage(t, "<html></html>")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing file", args: []string{"parse", filepath.Join(t.TempDir(), "none.html")}, want: "no such file"},
		{name: "bad format", args: []string{"parse", page, "--format", "xml", "--today", "1/9/2024"}, want: "unknown format"},
		{name: "bad today", args: []string{"parse", page, "--today", "yesterday"}, want: "invalid --today"},
		{name: "empty page", args: []string{"parse", empty, "--today", "1/9/2024"}, want: "no time entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /HilanCenter/Public/api/LoginApi/LoginRequest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "h4=abc; path=/")
		_, _ = w.Write([]byte(`{"IsFail":false}`))
	})
	mux.HandleFunc("GET /Hilannetv2/Attendance/calendarpage.aspx", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(calendarPage(firstDays)))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Chdir(t.TempDir())
	t.Setenv("PORTAL_BASE_URL", srv.URL)
	t.Setenv(passwordEnv, "hunter2")

	saved := filepath.Join(t.TempDir(), "page.html")
	out, err := run(t, "fetch", "--org", "1234", "--user", "42", "--format", "json", "--save", saved)
	require.NoError(t, err)

	var summary struct {
		TotalMinutes int `json:"totalMinutes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1050, summary.TotalMinutes)

	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Contains(t, string(data), `Days="9010"`)
}

func TestFetch_MissingPassword(t *testing.T) {
	t.Setenv(passwordEnv, "")

	_, err := run(t, "fetch", "--org", "1234", "--user", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}
