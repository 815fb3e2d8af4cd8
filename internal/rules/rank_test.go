package rules

import (
	"testing"

	"github.com/solatis/playcall/internal/types"
)

func TestRank_SortsByAscendingPriority(t *testing.T) {
	matched := []types.Rule{
		{ID: "c", Priority: 3},
		{ID: "a", Priority: 1},
		{ID: "b", Priority: 2},
	}

	out := Rank(matched, 3)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for i, want := range []string{"a", "b", "c"} {
		if out[i].ID != want {
			t.Errorf("out[%d].ID = %q, want %q", i, out[i].ID, want)
		}
	}
}

func TestRank_StableTieBreak(t *testing.T) {
	// Equal priorities keep their catalog order, never re-ordered.
	matched := []types.Rule{
		{ID: "first", Priority: 1},
		{ID: "second", Priority: 1},
		{ID: "third", Priority: 1},
	}

	out := Rank(matched, 3)
	for i, want := range []string{"first", "second", "third"} {
		if out[i].ID != want {
			t.Errorf("out[%d].ID = %q, want %q (stable order)", i, out[i].ID, want)
		}
	}
}

func TestRank_TruncatesToTopK(t *testing.T) {
	matched := []types.Rule{
		{ID: "p5", Priority: 5},
		{ID: "p1", Priority: 1},
		{ID: "p4", Priority: 4},
		{ID: "p2", Priority: 2},
		{ID: "p3", Priority: 3},
	}

	out := Rank(matched, 3)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for i, want := range []string{"p1", "p2", "p3"} {
		if out[i].ID != want {
			t.Errorf("out[%d].ID = %q, want %q", i, out[i].ID, want)
		}
	}
}

func TestRank_FewerThanTopK(t *testing.T) {
	out := Rank([]types.Rule{{ID: "only", Priority: 7}}, 3)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1 (no padding)", len(out))
	}
	if out[0].ID != "only" {
		t.Errorf("out[0].ID = %q, want %q", out[0].ID, "only")
	}
}

func TestRank_EmptyInput(t *testing.T) {
	out := Rank(nil, 3)
	if out == nil {
		t.Fatal("Rank(nil) = nil, want non-nil empty slice")
	}
	if len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	matched := []types.Rule{
		{ID: "b", Priority: 2},
		{ID: "a", Priority: 1},
	}

	Rank(matched, 3)

	if matched[0].ID != "b" || matched[1].ID != "a" {
		t.Errorf("input order changed to [%s %s], want [b a]", matched[0].ID, matched[1].ID)
	}
}
