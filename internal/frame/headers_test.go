package frame

import "testing"

func TestAddRejectsStructuralKeys(t *testing.T) {
	h := NewHeaderList()
	h.Add("SIMPLE", "T")
	h.Add("NAXIS1", "100")
	h.Add("NAXIS", "2")
	h.Add("OBJECT", "M42")

	if h.Len() != 1 {
		t.Fatalf("got %d records, want 1 (only OBJECT should survive)", h.Len())
	}
	if _, ok := h.Find("OBJECT"); !ok {
		t.Error("OBJECT record missing")
	}
}

func TestFindByPrefix(t *testing.T) {
	h := NewHeaderList()
	h.Add("NAXIS1", "100") // structural, dropped
	h.Add("CRVAL1", "1.0")
	h.Add("CRVAL2", "2.0")
	h.Add("OBJECT", "M42")

	got := h.FindByPrefix("CRVAL")
	if len(got) != 2 {
		t.Fatalf("got %d CRVAL records, want 2", len(got))
	}
}

func TestModifyAndRemove(t *testing.T) {
	h := NewHeaderList()
	h.Add("OBJECT", "M42")
	h.Modify("OBJECT", "M31")

	rec, ok := h.Find("OBJECT")
	if !ok || rec.Value != "M31" {
		t.Fatalf("Find(OBJECT) = %v, %v, want M31, true", rec, ok)
	}

	h.RemoveKey("OBJECT")
	if _, ok := h.Find("OBJECT"); ok {
		t.Error("OBJECT should have been removed")
	}
}

func TestRemoveSubstring(t *testing.T) {
	h := NewHeaderList()
	h.AddComment("found 3 4-connected components")
	h.AddComment("unrelated note")

	h.RemoveSubstring("4-connected")
	if h.Len() != 1 {
		t.Fatalf("got %d records, want 1", h.Len())
	}
}

func TestCloneIndependence(t *testing.T) {
	h := NewHeaderList()
	h.AddHistory("step one")

	clone := h.Clone()
	clone.AddHistory("step two")

	if h.Len() != 1 {
		t.Errorf("original mutated: len = %d, want 1", h.Len())
	}
	if clone.Len() != 2 {
		t.Errorf("clone len = %d, want 2", clone.Len())
	}
}
