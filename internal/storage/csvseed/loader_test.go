package csvseed_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"review_analyzer/internal/storage/csvseed"
)


func TestLoad_WithIndexColumnAndIDs(t *testing.T) {
	in := "" +
		",ReviewId,ReviewBody,Location,Timestamp\n" +
		"0,abc-1,\"Great stay, lovely staff\",\"Denver, Colorado\",2021-01-15 08:30:00\n" +
		"1,abc-2,Dirty room,\"Tucson, Arizona\",2021-02-01 00:00:00\n"

	rs, err := csvseed.Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rs))
	}
	r := rs[0]
	if r.ID != "abc-1" || r.Body != "Great stay, lovely staff" || r.Location != "Denver, Colorado" {
		t.Fatalf("unexpected row: %+v", r)
	}
	if got := r.Timestamp.Format("2006-01-02 15:04:05"); got != "2021-01-15 08:30:00" {
		t.Fatalf("timestamp: %s", got)
	}
	if rs[1].ID != "abc-2" {
		t.Fatalf("order not kept: %+v", rs)
	}
}

func TestLoad_MissingIDGetsStableUUID(t *testing.T) {
	in := "ReviewBody,Location,Timestamp\n" +
		"Nice,\"Fresno, California\",2022-06-01 12:00:00\n" +
		"Nice,\"Fresno, California\",2022-06-01 12:00:01\n"
	first, err := csvseed.Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	id, err := uuid.Parse(first[0].ID)
	if err != nil {
		t.Fatalf("expected generated uuid, got %q", first[0].ID)
	}
	if id.Version() != 5 {
		t.Fatalf("expected name-based uuid, got version %d", id.Version())
	}
	if first[0].ID == first[1].ID {
		t.Fatalf("rows with different timestamps share id %q", first[0].ID)
	}

	// re-reading the same file must not mint new ids
	again, err := csvseed.Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	for i := range first {
		if again[i].ID != first[i].ID {
			t.Fatalf("row %d: id changed between loads: %q vs %q", i, first[i].ID, again[i].ID)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := csvseed.Load(strings.NewReader("ReviewBody,Location\nx,y\n")); err == nil {
		t.Fatalf("expected missing column error")
	}
	bad := "ReviewBody,Location,Timestamp\nx,\"Denver, Colorado\",yesterday\n"
	if _, err := csvseed.Load(strings.NewReader(bad)); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line-numbered timestamp error, got %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	rs, err := csvseed.Load(strings.NewReader(""))
	if err != nil || rs == nil || len(rs) != 0 {
		t.Fatalf("expected empty dataset, got %v err=%v", rs, err)
	}
}

func TestFile_ListReviews(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reviews.csv")
	content := "ReviewId,ReviewBody,Location,Timestamp\nr1,Quiet,\"La Mesa, California\",2020-10-10 10:10:10\n"
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	rs, err := csvseed.File{Path: p}.ListReviews(context.Background())
	if err != nil || len(rs) != 1 || rs[0].ID != "r1" {
		t.Fatalf("unexpected: %+v err=%v", rs, err)
	}

	if _, err := (csvseed.File{Path: filepath.Join(t.TempDir(), "missing.csv")}).ListReviews(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
