// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/bloodlink/donor-engine/pkg/types"
)

func TestParseOneTwoNameRule(t *testing.T) {
	p := NewParser()
	rec := p.ParseOne("Tanvir Ahmed\nBadhon\nB(+ve)\n01712345678\n18-9-25")

	if rec.Referrer != "Tanvir Ahmed" {
		t.Errorf("Referrer = %q, want %q", rec.Referrer, "Tanvir Ahmed")
	}
	if rec.Name != "Badhon" {
		t.Errorf("Name = %q, want %q", rec.Name, "Badhon")
	}
	if rec.BloodGroup != "B+" {
		t.Errorf("BloodGroup = %q, want %q", rec.BloodGroup, "B+")
	}
	if rec.Phone != "01712345678" {
		t.Errorf("Phone = %q, want %q", rec.Phone, "01712345678")
	}
	if rec.Date != "18-09-2025" {
		t.Errorf("Date = %q, want %q", rec.Date, "18-09-2025")
	}
	if rec.Batch != types.DefaultUnknown {
		t.Errorf("Batch = %q, want %q", rec.Batch, types.DefaultUnknown)
	}
	if rec.Hospital != types.DefaultUnknown {
		t.Errorf("Hospital = %q, want %q", rec.Hospital, types.DefaultUnknown)
	}
}

func TestParseOneSingleName(t *testing.T) {
	// The second line is a blood group, not a name, so the two-name
	// rule must not fire and the first line stays the donor.
	p := NewParser()
	rec := p.ParseOne("Sona mia vai\nO+\n01955-198724\n18-9-25")

	if rec.Name != "Sona mia vai" {
		t.Errorf("Name = %q, want %q", rec.Name, "Sona mia vai")
	}
	if rec.Referrer != "" {
		t.Errorf("Referrer = %q, want empty", rec.Referrer)
	}
	if rec.BloodGroup != "O+" {
		t.Errorf("BloodGroup = %q, want %q", rec.BloodGroup, "O+")
	}
	if rec.Phone != "01955198724" {
		t.Errorf("Phone = %q, want %q", rec.Phone, "01955198724")
	}
	if rec.Date != "18-09-2025" {
		t.Errorf("Date = %q, want %q", rec.Date, "18-09-2025")
	}
}

func TestParseOneNameWithParenGroup(t *testing.T) {
	p := NewParser()
	rec := p.ParseOne("Riaz(A+)\nMobile:01572933123\nManaged by Monowarul Islam\nDate:25-01-2026")

	if rec.Name != "Riaz" {
		t.Errorf("Name = %q, want %q", rec.Name, "Riaz")
	}
	if rec.BloodGroup != "A+" {
		t.Errorf("BloodGroup = %q, want %q", rec.BloodGroup, "A+")
	}
	if rec.Phone != "01572933123" {
		t.Errorf("Phone = %q, want %q", rec.Phone, "01572933123")
	}
	if rec.Date != "25-01-2026" {
		t.Errorf("Date = %q, want %q", rec.Date, "25-01-2026")
	}
	if rec.Referrer != "Monowarul Islam" {
		t.Errorf("Referrer = %q, want %q", rec.Referrer, "Monowarul Islam")
	}
}

func TestParseOneLabeledName(t *testing.T) {
	p := NewParser()
	rec := p.ParseOne("Blood needed\nName: Karim Uddin\nBlood Group: B+")

	if rec.Name != "Karim Uddin" {
		t.Errorf("Name = %q, want %q", rec.Name, "Karim Uddin")
	}
	if rec.BloodGroup != "B+" {
		t.Errorf("BloodGroup = %q, want %q", rec.BloodGroup, "B+")
	}
}

func TestParseOneNormalizesReferrer(t *testing.T) {
	p := NewParser()
	rec := p.ParseOne("Md. Rowshon\nBadhon\nB+\n01712345678")

	if rec.Referrer != "Rowshon" {
		t.Errorf("Referrer = %q, want %q", rec.Referrer, "Rowshon")
	}
	if rec.Name != "Badhon" {
		t.Errorf("Name = %q, want %q", rec.Name, "Badhon")
	}
}

func TestTwoNameSplit(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		referrer string
		donor    string
		ok       bool
	}{
		{
			name:     "two bare names",
			in:       "Tanvir Ahmed\nBadhon\nB+",
			referrer: "Tanvir Ahmed",
			donor:    "Badhon",
			ok:       true,
		},
		{
			name:     "donor with trailing blood group",
			in:       "Rahim\nAbdur Rahman B+\n01712345678",
			referrer: "Rahim",
			donor:    "Abdur Rahman",
			ok:       true,
		},
		{
			name: "second line not a name",
			in:   "Sona mia vai\nO+\n01955198724",
			ok:   false,
		},
		{
			name: "first line not a name",
			in:   "Mobile: 01712345678\nKarim\nB+",
			ok:   false,
		},
		{
			name: "single line",
			in:   "Karim",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			referrer, donor, ok := TwoNameSplit(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if referrer != tt.referrer || donor != tt.donor {
				t.Errorf("split = (%q, %q), want (%q, %q)", referrer, donor, tt.referrer, tt.donor)
			}
		})
	}
}

func TestParseManySegments(t *testing.T) {
	p := NewParser()
	records := p.ParseMany("Karim\nB+\n01712345678\n\nRahim\nO-\n01898765432")

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Name != "Karim" || records[0].BloodGroup != "B+" {
		t.Errorf("first record = %q/%q, want Karim/B+", records[0].Name, records[0].BloodGroup)
	}
	if records[1].Name != "Rahim" || records[1].BloodGroup != "O-" {
		t.Errorf("second record = %q/%q, want Rahim/O-", records[1].Name, records[1].BloodGroup)
	}
}

func TestParseManyDropsUnusableSegments(t *testing.T) {
	p := NewParser()
	records := p.ParseMany("Anyone available tonight? call 999\n\nKarim\nB+\n01712345678")

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Name != "Karim" {
		t.Errorf("Name = %q, want Karim", records[0].Name)
	}
}

func TestParseManySeparatorLine(t *testing.T) {
	// Separator-glyph lines act as record breaks after cleaning.
	p := NewParser()
	records := p.ParseMany("Karim\nB+\n-----\nRahim\nO-")
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
}

func TestSegments(t *testing.T) {
	if got := Segments("Karim\nB+\n01712345678"); len(got) != 1 {
		t.Errorf("single span split into %d segments", len(got))
	}
	if got := Segments("a\n\nb\n\nc"); len(got) != 3 {
		t.Errorf("got %d segments, want 3", len(got))
	}
	if got := Segments(""); got != nil {
		t.Errorf("Segments(\"\") = %v, want nil", got)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name string
		rec  types.ParsedRecord
		want float64
	}{
		{
			name: "all fields",
			rec: types.ParsedRecord{
				Name: "Karim", BloodGroup: "B+", Phone: "01712345678",
				Date: "18-09-2025", Batch: "CSE 24-25", Hospital: "Oasis Hospital",
			},
			want: 1.0,
		},
		{
			name: "core four only",
			rec: types.ParsedRecord{
				Name: "Karim", BloodGroup: "B+", Phone: "01712345678",
				Date: "18-09-2025", Batch: types.DefaultUnknown, Hospital: types.DefaultUnknown,
			},
			want: 0.8,
		},
		{
			name: "defaults carry no weight",
			rec:  types.ParsedRecord{Batch: types.DefaultUnknown, Hospital: types.DefaultUnknown},
			want: 0.0,
		},
		{
			name: "name only",
			rec:  types.ParsedRecord{Name: "Karim"},
			want: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.rec); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Confidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLowConfidenceRecordStillReturned(t *testing.T) {
	p := NewParser()
	rec := p.ParseOne("Karim")
	if rec.Name != "Karim" {
		t.Fatalf("Name = %q, want Karim", rec.Name)
	}
	if c := Confidence(rec); c >= 0.5 {
		t.Errorf("Confidence = %v, want < 0.5", c)
	}
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	p := NewParser(WithTracer(NewWriterTracer(&buf)))
	p.ParseOne("Karim\nB+\n01712345678")

	out := buf.String()
	for _, want := range []string{"name:", "blood_group:", "phone:", "date:"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}
