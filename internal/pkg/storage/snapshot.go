package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Snapshots keeps copies of fetched calendar pages for debugging extraction.
type Snapshots struct {
	files FileStorage
}

func NewSnapshots(files FileStorage) *Snapshots {
	return &Snapshots{files: files}
}

// Save stores html under <YYYY-MM>/<uuid>.html, or unknown/<uuid>.html when
// the month is not known, and returns the stored path.
func (s *Snapshots) Save(ctx context.Context, month, year int, html string) (string, error) {
	dir := "unknown"
	if month >= 1 && month <= 12 && year > 0 {
		dir = fmt.Sprintf("%04d-%02d", year, month)
	}
	path := fmt.Sprintf("%s/%s.html", dir, uuid.NewString())

	stored, err := s.files.Upload(ctx, strings.NewReader(html), path, "text/html; charset=utf-8")
	if err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	return stored, nil
}
