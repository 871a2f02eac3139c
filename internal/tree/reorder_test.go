package tree

import (
	"testing"

	"notepress/internal/model"
)

func secList(ids ...string) []model.Section {
	out := make([]model.Section, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Section{ID: id, Title: "Section " + id})
	}
	return out
}

func secIDs(list []model.Section) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func secID(s model.Section) string { return s.ID }

func TestReorder_SelfTargetReturnsSameSlice(t *testing.T) {
	in := secList("A", "B", "C", "D")
	got := Reorder(in, secID, "A", "A")
	if !sameSlice(got, in) {
		t.Fatalf("expected identical slice for self-target move")
	}
}

func TestReorder_UnknownTargetReturnsSameSlice(t *testing.T) {
	in := secList("A", "B", "C", "D")
	if got := Reorder(in, secID, "A", "nonexistent"); !sameSlice(got, in) {
		t.Fatalf("expected identical slice for unknown target")
	}
	if got := Reorder(in, secID, "nonexistent", "A"); !sameSlice(got, in) {
		t.Fatalf("expected identical slice for unknown moved id")
	}
	if got := Reorder(in, secID, "A", ""); !sameSlice(got, in) {
		t.Fatalf("expected identical slice for empty target")
	}
}

func TestReorder_MoveForwardAndBackward(t *testing.T) {
	cases := []struct {
		name   string
		moved  string
		target string
		want   []string
	}{
		{name: "forward", moved: "A", target: "C", want: []string{"B", "C", "A", "D"}},
		{name: "backward", moved: "D", target: "B", want: []string{"A", "D", "B", "C"}},
		{name: "adjacent forward", moved: "A", target: "B", want: []string{"B", "A", "C", "D"}},
		{name: "to front", moved: "C", target: "A", want: []string{"C", "A", "B", "D"}},
		{name: "to back", moved: "A", target: "D", want: []string{"B", "C", "D", "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := secList("A", "B", "C", "D")
			got := secIDs(Reorder(in, secID, tc.moved, tc.target))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
			// The input must remain untouched.
			orig := secIDs(in)
			for i, id := range []string{"A", "B", "C", "D"} {
				if orig[i] != id {
					t.Fatalf("input mutated: %v", orig)
				}
			}
		})
	}
}

func TestMoveSection_PersistsNewOrder(t *testing.T) {
	s := testSnapshot(t)
	nbID := s.UI.ActiveNotebookID
	s2 := s.CreateSection(true, "Second")
	s3 := s2.CreateSection(true, "Third")
	secs := s3.Sections[nbID]
	if len(secs) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(secs))
	}

	moved := s3.MoveSection(true, secs[2].ID, secs[0].ID)
	if moved == s3 {
		t.Fatalf("expected a new snapshot")
	}
	got := moved.Sections[nbID]
	if got[0].ID != secs[2].ID || got[1].ID != secs[0].ID || got[2].ID != secs[1].ID {
		t.Fatalf("unexpected order: %v", secIDs(got))
	}

	// Non-admin move is a silent no-op.
	if s3.MoveSection(false, secs[2].ID, secs[0].ID) != s3 {
		t.Fatalf("expected identical snapshot for non-admin move")
	}
	// Self-target move is a silent no-op.
	if s3.MoveSection(true, secs[0].ID, secs[0].ID) != s3 {
		t.Fatalf("expected identical snapshot for self-target move")
	}
}
