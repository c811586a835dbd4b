// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gazetteer

import "testing"

func TestBloodGroups(t *testing.T) {
	groups := BloodGroups()
	if len(groups) != 8 {
		t.Fatalf("BloodGroups() has %d entries, want 8", len(groups))
	}
	for _, g := range groups {
		if !IsBloodGroup(g) {
			t.Errorf("IsBloodGroup(%q) = false, want true", g)
		}
	}
	if IsBloodGroup("C+") {
		t.Error("IsBloodGroup(C+) = true, want false")
	}
}

func TestIsHonorific(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"md", true},
		{"Md.", true},
		{"MD", true},
		{"dr", true},
		{"karim", false},
	}
	for _, tt := range tests {
		if got := IsHonorific(tt.word); got != tt.want {
			t.Errorf("IsHonorific(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestIsKinship(t *testing.T) {
	for _, w := range []string{"vai", "Bhai", "apu"} {
		if !IsKinship(w) {
			t.Errorf("IsKinship(%q) = false, want true", w)
		}
	}
	if IsKinship("uncle") {
		t.Error("IsKinship(uncle) = true, want false")
	}
}

func TestInstitutionsHaveNames(t *testing.T) {
	for _, h := range Halls() {
		if h.Name == "" {
			t.Error("hall with empty canonical name")
		}
	}
	for _, h := range Hospitals() {
		if h.Name == "" {
			t.Error("hospital with empty canonical name")
		}
	}
	if len(Departments()) == 0 {
		t.Error("Departments() is empty")
	}
	if len(FieldLabels()) == 0 {
		t.Error("FieldLabels() is empty")
	}
}
