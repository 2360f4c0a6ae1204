package index

import (
	"os"
	"testing"
	"time"

	"github.com/ignatij/folio/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "folio-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func rec(kind models.Kind, slug, title, checksum string, tags ...string) Record {
	return Record{Kind: kind, Slug: slug, Title: title, Checksum: checksum, Tags: tags, UpdatedAt: time.Now()}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM records`).Scan(&count); err != nil {
		t.Fatalf("records table missing: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertRecord(rec(models.KindProject, "hello", "Hello World", "abc123", "go"), "hello body"); err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}
	cs, err := db.GetChecksum(models.KindProject, "hello")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
	// Same slug under another kind is a different record.
	cs, _ = db.GetChecksum(models.KindPost, "hello")
	if cs != "" {
		t.Errorf("post checksum = %q, want empty", cs)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRecord(rec(models.KindPost, "up", "Old", "1"), "old body")
	_ = db.UpsertRecord(rec(models.KindPost, "up", "New", "2"), "new body")

	cs, _ := db.GetChecksum(models.KindPost, "up")
	if cs != "2" {
		t.Errorf("checksum = %q, want %q", cs, "2")
	}
	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestDeleteRecord(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRecord(rec(models.KindProject, "del", "Del", "x"), "body")

	if err := db.DeleteRecord(models.KindProject, "del"); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	cs, _ := db.GetChecksum(models.KindProject, "del")
	if cs != "" {
		t.Errorf("deleted record still has checksum %q", cs)
	}
}

func TestAllChecksums_PerKind(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRecord(rec(models.KindProject, "a", "A", "1"), "")
	_ = db.UpsertRecord(rec(models.KindProject, "b", "B", "2"), "")
	_ = db.UpsertRecord(rec(models.KindPost, "c", "C", "3"), "")

	got, err := db.AllChecksums(models.KindProject)
	if err != nil {
		t.Fatalf("AllChecksums: %v", err)
	}
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Errorf("AllChecksums(project) = %v", got)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum(models.KindProject, "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRecord(rec(models.KindPost, "s", "Search Me", "1"), "uniqueword appears here")
	_ = db.UpsertRecord(rec(models.KindProject, "other", "Other", "2"), "nothing to see")

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "s" || results[0].Kind != models.KindPost {
		t.Errorf("search results = %+v, want 1 post hit for s", results)
	}
}

func TestSearch_NoHitsIsEmptySlice(t *testing.T) {
	db := testDB(t)
	results, err := db.Search("absent", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("results = %#v, want empty non-nil", results)
	}
}
