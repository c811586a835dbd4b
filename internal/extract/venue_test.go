// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/bloodlink/donor-engine/pkg/types"
)

func TestExtractBatch(t *testing.T) {
	p := NewParser()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "labeled",
			in:   "Karim\nBatch: CSE 2024",
			want: "CSE 2024",
		},
		{
			name: "department with parenthesized range",
			in:   "Karim\nPHR(24-25)",
			want: "PHR 24-25",
		},
		{
			name: "department with bare range",
			in:   "Karim\nChemistry 23-24",
			want: "Chemistry 23-24",
		},
		{
			name: "department casing canonicalized",
			in:   "Karim\ncse 24-25",
			want: "CSE 24-25",
		},
		{
			name: "bare session range",
			in:   "Karim\nB+\n21-22",
			want: "21-22",
		},
		{
			name: "range embedded in longer digit run rejected",
			in:   "Karim\n321-22",
			want: "",
		},
		{
			name: "range wider than a session rejected",
			in:   "Karim\n20-99",
			want: "",
		},
		{
			name: "descending range rejected",
			in:   "Karim\n25-24",
			want: "",
		},
		{
			name: "phone digits never read as a range",
			in:   "Karim\n01712-345678",
			want: "",
		},
		{
			name: "date never read as a range",
			in:   "Karim\n18-09-2025",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.extractBatch(tt.in); got != tt.want {
				t.Errorf("extractBatch(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractHospital(t *testing.T) {
	p := NewParser()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "gazetteer canonical",
			in:   "Karim\nMount Adora Hospital\nB+",
			want: "Mount Adora Hospital",
		},
		{
			name: "gazetteer alias case-insensitive",
			in:   "Karim\nB+\nneeded at osmani medical",
			want: "Osmani Medical College Hospital",
		},
		{
			name: "labeled unknown venue",
			in:   "Karim\nHospital: City Clinic",
			want: "City Clinic",
		},
		{
			name: "no venue",
			in:   "Karim\nB+",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.extractHospital(tt.in); got != tt.want {
				t.Errorf("extractHospital(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractHall(t *testing.T) {
	p := NewParser()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "gazetteer alias",
			in:   "Karim\nshahporan hall\nB+",
			want: "Shah Paran Hall",
		},
		{
			name: "labeled",
			in:   "Karim\nHall: Second Science Building",
			want: "Second Science Building",
		},
		{
			name: "generic capitalized hall",
			in:   "Karim\nStaying at Tilagor Hall",
			want: "Tilagor Hall",
		},
		{
			name: "no hall",
			in:   "Karim\nB+",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.extractHall(tt.in); got != tt.want {
				t.Errorf("extractHall(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseOneVenueDefaults(t *testing.T) {
	p := NewParser()
	rec := p.ParseOne("Karim\nB+\n01712345678")

	if rec.Batch != types.DefaultUnknown {
		t.Errorf("Batch = %q, want %q", rec.Batch, types.DefaultUnknown)
	}
	if rec.Hospital != types.DefaultUnknown {
		t.Errorf("Hospital = %q, want %q", rec.Hospital, types.DefaultUnknown)
	}
	if rec.HallName != "" {
		t.Errorf("HallName = %q, want empty", rec.HallName)
	}
}

func TestMaskPhonesAndDates(t *testing.T) {
	in := "Karim 01712345678 on 18-09-2025"
	got := maskPhonesAndDates(in)
	if len(got) != len(in) {
		t.Fatalf("mask changed length: %d -> %d", len(in), len(got))
	}
	want := "Karim ########### on ##########"
	if got != want {
		t.Errorf("maskPhonesAndDates(%q) = %q, want %q", in, got, want)
	}
}
