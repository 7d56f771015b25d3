package tracker

import (
	"strings"
	"testing"
)

func TestExpandAbbreviations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "parenthesized acronym",
			in:   "Affordable Care Act (ACA)",
			want: "Affordable Care Act (acronym ACA)",
		},
		{
			name: "versus with dot",
			in:   "bill A vs. bill B",
			want: "bill A versus bill B",
		},
		{
			name: "bare versus",
			in:   "bill A vs bill B",
			want: "bill A versus bill B",
		},
		{
			name: "percent sign",
			in:   "a 30% increase",
			want: "a 30percent increase",
		},
		{
			name: "long country form wins",
			in:   "the U.S.A. economy",
			want: "the United States of America economy",
		},
		{
			name: "short country form",
			in:   "the U.S. economy",
			want: "the United States economy",
		},
		{
			name: "admin not expanded inside words",
			in:   "the administration decided",
			want: "the administration decided",
		},
		{
			name: "bare admin expanded",
			in:   "the admin decided",
			want: "the administration decided",
		},
		{
			name: "with and without",
			in:   "w/ insurance and w/o subsidies",
			want: "with insurance and without subsidies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandAbbreviations(tt.in)
			if got != tt.want {
				t.Errorf("ExpandAbbreviations(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanForSpeechAcronyms(t *testing.T) {
	got := CleanForSpeech("The ACA changed coverage")
	if !strings.Contains(got, "A C A") {
		t.Errorf("expected re-spaced acronym in %q", got)
	}

	got = CleanForSpeech("NASA and COVID and NATO stay whole")
	for _, keep := range []string{"NASA", "COVID", "NATO"} {
		if !strings.Contains(got, keep) {
			t.Errorf("exception %s should stay intact, got %q", keep, got)
		}
	}
	if strings.Contains(got, "N A S A") {
		t.Errorf("exception NASA was re-spaced: %q", got)
	}
}

func TestCleanForSpeechFilenames(t *testing.T) {
	got := CleanForSpeech("See billA.pdf for details")
	if strings.Contains(got, "billA.pdf") || strings.Contains(got, "billA") {
		t.Errorf("filename should be stripped, got %q", got)
	}
}

func TestCleanForSpeechMarkdownAndPunctuation(t *testing.T) {
	got := CleanForSpeech("# Heading\n- first point\nsecond point")
	if strings.ContainsAny(got, "#*|") {
		t.Errorf("markdown punctuation should be stripped, got %q", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if line == "" {
			continue
		}
		last := line[len(line)-1]
		if last != '.' && last != '!' && last != '?' && last != ':' {
			t.Errorf("line %q lacks terminal punctuation", line)
		}
	}
}
