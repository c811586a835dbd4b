// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sanitize

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "already clean",
			in:   "Karim\nB+\n01712345678",
			want: "Karim\nB+\n01712345678",
		},
		{
			name: "chat export header",
			in:   "[12/01/2026, 10:30 PM] Rahim: Karim\nB+",
			want: "Karim\nB+",
		},
		{
			name: "edit marker",
			in:   "Karim <This message was edited>\nB+",
			want: "Karim\nB+",
		},
		{
			name: "deleted message line leaves no blank",
			in:   "Karim\nThis message was deleted\nB+",
			want: "Karim\nB+",
		},
		{
			name: "replied-to artifact",
			in:   "replied to Rahim\nKarim\nB+",
			want: "Karim\nB+",
		},
		{
			name: "stray clock token",
			in:   "Karim 10:32 pm\nB+",
			want: "Karim\nB+",
		},
		{
			name: "bullets stripped",
			in:   "• Karim\n- B+",
			want: "Karim\nB+",
		},
		{
			name: "horizontal whitespace collapsed",
			in:   "Karim\t\tUddin\nB+",
			want: "Karim Uddin\nB+",
		},
		{
			name: "blank runs collapse to one blank line",
			in:   "Karim\nB+\n\n\n\nRahim\nO-",
			want: "Karim\nB+\n\nRahim\nO-",
		},
		{
			name: "separator line becomes record break",
			in:   "Karim\nB+\n-----\nRahim\nO-",
			want: "Karim\nB+\n\nRahim\nO-",
		},
		{
			name: "leading and trailing whitespace trimmed",
			in:   "  \n  Karim  \n  B+  \n\n",
			want: "Karim\nB+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanPreservesLineStructure(t *testing.T) {
	// Extractors assume one datum per line; cleaning must never join
	// two data lines.
	in := "Rahim\nKarim\nB+\n01712345678\n18-9-25"
	if got := Clean(in); got != in {
		t.Errorf("Clean(%q) = %q, want unchanged", in, got)
	}
}
