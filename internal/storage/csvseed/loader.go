// Package csvseed reads the startup review dataset from CSV.
package csvseed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"review_analyzer/internal/domain"
)

// Load reads reviews from r. The header row names the columns; ReviewId is
// optional and rows without one get a name-based uuid derived from their
// content, so loading the same file twice yields the same ids. Other columns
// (such as a leading unnamed index) are ignored.
func Load(r io.Reader) ([]domain.Review, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.Review{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, req := range []string{"ReviewBody", "Location", "Timestamp"} {
		if _, ok := col[req]; !ok {
			return nil, fmt.Errorf("missing column %q", req)
		}
	}
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var out []domain.Review
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		ts, err := time.Parse(domain.TimestampLayout, strings.TrimSpace(field(rec, "Timestamp")))
		if err != nil {
			return nil, fmt.Errorf("line %d: timestamp: %w", line, err)
		}
		r := domain.Review{
			ID:        strings.TrimSpace(field(rec, "ReviewId")),
			Body:      field(rec, "ReviewBody"),
			Location:  field(rec, "Location"),
			Timestamp: ts,
		}
		if r.ID == "" {
			r.ID = contentID(r)
		}
		out = append(out, r)
	}
	if out == nil {
		out = []domain.Review{}
	}
	return out, nil
}

// contentID is a version 5 uuid over body, location and timestamp.
// Rows identical in all three share an id.
func contentID(r domain.Review) string {
	name := r.Body + "\x00" + r.Location + "\x00" + r.Timestamp.Format(domain.TimestampLayout)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// File is a domain.ReviewSource backed by a CSV file on disk.
type File struct{ Path string }

func (f File) ListReviews(ctx context.Context) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	rs, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return rs, nil
}
