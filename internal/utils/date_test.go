package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{"23-10-2021", nil},
		{"01-01-2000", nil},
		{"29-02-2024", nil},
		{"", ErrEmptyDate},
		{"10-20-2021", ErrInvalidDate},
		{"31-02-2021", ErrInvalidDate},
		{"29-02-2021", ErrInvalidDate},
		{"1-10-2021", ErrInvalidDate},
		{"2021-10-23", ErrInvalidDate},
		{"23/10/2021", ErrInvalidDate},
		{"23-10-21", ErrInvalidDate},
		{"aa-bb-cccc", ErrInvalidDate},
	}
	for _, tt := range tests {
		_, err := ParseDate(tt.in, time.UTC)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseDate(%q) error = %v, want %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestParseDate_Location(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	got, err := ParseDate("23-10-2021", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2021, time.October, 23, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}
}

func TestIsFuture(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	// 2021-10-23 20:00 UTC is already 24-10-2021 in ICT.
	now := time.Date(2021, time.October, 23, 20, 0, 0, 0, time.UTC)

	day := func(s string) time.Time {
		d, err := ParseDate(s, loc)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", s, err)
		}
		return d
	}

	if IsFuture(day("24-10-2021"), now, loc) {
		t.Error("24-10-2021 should be today in ICT, not future")
	}
	if IsFuture(day("23-10-2021"), now, loc) {
		t.Error("23-10-2021 should be past")
	}
	if !IsFuture(day("25-10-2021"), now, loc) {
		t.Error("25-10-2021 should be future")
	}
	if !IsFuture(day("24-10-2150"), now, loc) {
		t.Error("24-10-2150 should be future")
	}
}
