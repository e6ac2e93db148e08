package journal

import (
	"context"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(Options{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestAppendAssignsIDAndTime(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	if err := j.Append(ctx, Entry{Kind: KindEnroll, Outcome: "committed", RecordID: 1}); err != nil {
		t.Fatal(err)
	}

	entries, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.ID == "" {
		t.Error("entry ID not assigned")
	}
	if e.Time.IsZero() {
		t.Error("entry time not assigned")
	}
	if e.Kind != KindEnroll || e.Outcome != "committed" || e.RecordID != 1 {
		t.Errorf("entry = %+v", e)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := Entry{
			Kind:    KindVerify,
			Outcome: "no-match",
			Time:    base.Add(time.Duration(i) * time.Second),
		}
		if err := j.Append(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := j.Recent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Time.After(entries[i-1].Time) {
			t.Errorf("entries out of order: %v then %v", entries[i-1].Time, entries[i].Time)
		}
	}
	if !entries[0].Time.Equal(base.Add(4 * time.Second)) {
		t.Errorf("newest entry time = %v, want %v", entries[0].Time, base.Add(4*time.Second))
	}
}

func TestRecentOrdersFractionalSeconds(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	// Sub-second timestamps whose nanosecond counts have different numbers
	// of trailing zeros. A variable-width key encoding sorts these wrong
	// (".1" after ".15" lexicographically).
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(100 * time.Millisecond),
		base.Add(150 * time.Millisecond),
		base.Add(150*time.Millisecond + 7*time.Nanosecond),
		base.Add(2 * time.Second),
	}
	for _, ts := range times {
		if err := j.Append(ctx, Entry{Kind: KindVerify, Outcome: "no-match", Time: ts}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := j.Recent(ctx, len(times))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(times) {
		t.Fatalf("got %d entries, want %d", len(entries), len(times))
	}
	for i, want := range []time.Time{times[3], times[2], times[1], times[0]} {
		if !entries[i].Time.Equal(want) {
			t.Errorf("entries[%d].Time = %v, want %v", i, entries[i].Time, want)
		}
	}
}

func TestRecentEmptyJournal(t *testing.T) {
	j := openTestJournal(t)
	entries, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries from empty journal, want 0", len(entries))
	}
}

func TestRecentZeroCount(t *testing.T) {
	j := openTestJournal(t)
	entries, err := j.Recent(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if entries != nil {
		t.Errorf("Recent(0) = %v, want nil", entries)
	}
}

func TestVerifyEntryRoundTrip(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	want := Entry{
		Kind:      KindVerify,
		Outcome:   "matched",
		BestScore: 0.9131,
		RecordID:  7,
		FullName:  "Ada Lovelace",
	}
	if err := j.Append(ctx, want); err != nil {
		t.Fatal(err)
	}

	entries, err := j.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	got := entries[0]
	if got.BestScore != want.BestScore || got.RecordID != want.RecordID || got.FullName != want.FullName {
		t.Errorf("entry = %+v, want fields of %+v", got, want)
	}
}

func TestOpenRequiresDir(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Fatal("Open without Dir succeeded, want error")
	}
}
