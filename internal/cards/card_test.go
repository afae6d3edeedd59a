package cards

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	term, meaning, note := Normalize("  ねこ ", "\tcat\n", " ")
	if term != "ねこ" || meaning != "cat" || note != "" {
		t.Errorf("Normalize = (%q, %q, %q)", term, meaning, note)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		meaning string
		note    string
		wantErr error
		anyErr  bool
	}{
		{name: "valid", term: "ねこ", meaning: "cat"},
		{name: "valid with note", term: "いぬ", meaning: "dog", note: "いぬがすきです"},
		{name: "empty term", meaning: "cat", wantErr: ErrEmptyTerm},
		{name: "empty meaning", term: "ねこ", wantErr: ErrEmptyMeaning},
		{name: "term too long", term: strings.Repeat("あ", MaxTermLen+1), meaning: "x", anyErr: true},
		{name: "term at limit", term: strings.Repeat("あ", MaxTermLen), meaning: "x"},
		{name: "note too long", term: "a", meaning: "b", note: strings.Repeat("n", MaxNoteLen+1), anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.term, tt.meaning, tt.note)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Fatal("expected error")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestNewestFirst(t *testing.T) {
	pool := []Card{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := IDs(NewestFirst(pool))
	want := []string{"c", "b", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NewestFirst ids = %v, want %v", got, want)
		}
	}
	if pool[0].ID != "a" {
		t.Error("NewestFirst must not modify its input")
	}
}
