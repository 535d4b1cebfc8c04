package slug

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		id    int64
		want  string
	}{
		{
			name:  "simple title",
			title: "Local Hero Saves Day",
			id:    7,
			want:  "local-hero-saves-day-7",
		},
		{
			name:  "punctuation stripped",
			title: "It's Official: We Won!",
			id:    12,
			want:  "its-official-we-won-12",
		},
		{
			name:  "whitespace runs collapse",
			title: "Two   Spaces\tAnd Tab",
			id:    3,
			want:  "two-spaces-and-tab-3",
		},
		{
			name:  "empty title keeps id suffix",
			title: "",
			id:    42,
			want:  "-42",
		},
		{
			name:  "numeric title",
			title: "2026 In Review",
			id:    1,
			want:  "2026-in-review-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Make(tt.title, tt.id)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID_RoundTrip(t *testing.T) {
	titles := []string{
		"Local Hero Saves Day",
		"",
		"ends with hyphen-",
		"1234",
		"Ünïcödé & Symbols!!",
		"title-with-55-digits",
	}
	ids := []int64{0, 1, 7, 42, 987654321}

	for _, title := range titles {
		for _, id := range ids {
			got, ok := ParseID(Make(title, id))
			if !ok {
				t.Fatalf("ParseID(Make(%q, %d)) not ok", title, id)
			}
			if got != id {
				t.Errorf("ParseID(Make(%q, %d)) = %d, want %d", title, id, got, id)
			}
		}
	}
}

func TestParseID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		slug string
	}{
		{name: "no hyphen", slug: "nohyphen"},
		{name: "non-numeric suffix", slug: "abc-xyz"},
		{name: "empty suffix", slug: "abc-"},
		{name: "empty string", slug: ""},
		{name: "trailing hyphen only", slug: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseID(tt.slug)
			assert.Equal(t, false, ok)
		})
	}
}
