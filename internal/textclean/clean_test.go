package textclean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "urls mentions hashtags and punctuation",
			input:    "Visit http://example.com now RT @john #jobs! 50% off",
			expected: "Visit now 50 off",
		},
		{
			name:     "https url swallows trailing whitespace",
			input:    "portfolio: https://jane.dev/work\n\nPython",
			expected: "portfolio Python",
		},
		{
			name:     "RT and cc are removed wherever they occur",
			input:    "ACCOUNTING accounting RTL",
			expected: "ACCOUNTING a ounting L",
		},
		{
			name:     "non ascii becomes space",
			input:    "Zürich•Python—Go",
			expected: "Z rich Python Go",
		},
		{
			name:     "invalid utf8 bytes become space",
			input:    "data\xffscience",
			expected: "data science",
		},
		{
			name:     "punctuation only",
			input:    `!"#$%&'()*+,-./:;<=>?@[\]^_` + "`{|}~",
			expected: "",
		},
		{
			name:     "whitespace runs including vertical tab",
			input:    "  Skills:\tC++,\vJava\r\n\x1cSQL  ",
			expected: "Skills C Java SQL",
		},
		{
			name:     "mention stops at nbsp",
			input:    "@jane\u00a0Smith Python",
			expected: "Smith Python",
		},
		{
			name:     "hashtag stops at em space",
			input:    "#hiring\u2003Engineer",
			expected: "Engineer",
		},
		{
			name:     "url stops at vertical tab",
			input:    "see http://x.io\vJava",
			expected: "see Java",
		},
		{
			name:     "hashtag stops at file separator",
			input:    "#go\x1cDeveloper",
			expected: "Developer",
		},
		{
			name:     "mention stops at next line",
			input:    "@recruiter\u0085Backend",
			expected: "Backend",
		},
		{
			name:     "url stops at line separator",
			input:    "https://jane.dev\u2028Kotlin",
			expected: "Kotlin",
		},
		{
			name:     "bare http is kept",
			input:    "http",
			expected: "http",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestClean_ExampleDropsNoiseTokens(t *testing.T) {
	out := Clean("Visit http://example.com now RT @john #jobs! 50% off")
	for _, s := range []string{"http", "RT", "@john", "#jobs", "%", "!"} {
		assert.NotContains(t, out, s)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Visit http://example.com now RT @john #jobs! 50% off",
		"cccc RRTT c#c @@x http.x httpfoo",
		"Data Scientist | Python, R & SQL | 5+ yrs — Zürich",
		"\n\n  multiple\t\tspaces   \n",
		"e-mail: jane@doe.com; tel. +1 (555) 010-2000",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestClean_NoStrayWhitespace(t *testing.T) {
	inputs := []string{
		"  lead ",
		"\tJava\n\nSpring  Boot\r\n",
		"-- Python --",
		"• bullet point",
	}
	for _, in := range inputs {
		out := Clean(in)
		assert.Equal(t, strings.TrimSpace(out), out)
		assert.NotContains(t, out, "  ")
	}
}
