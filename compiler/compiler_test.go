package compiler

import (
	"testing"

	"github.com/0x4d5352/regent/syntax"
)

// TestRoundTripIdentity lists patterns the compiler must reproduce
// byte for byte on the first pass.
func TestRoundTripIdentity(t *testing.T) {
	patterns := []string{
		"/hello/",
		"/(a|b)c/",
		"/^foo.*bar$/",
		"/a*b+c?/",
		"/a{2,5}?b{3}/",
		"/a++b*?/",
		"/(?:x)/",
		"/(?<name>a)\\k<name>/",
		"/(?=a)(?!b)(?<=c)(?<!d)/",
		"/(?>ab)/",
		"/(?|(a)|(b))/",
		"/(?i:abc)/",
		"/(?i-m:abc)/",
		"/(?m)abc/",
		"/[abc]/",
		"/[^a-z\\d]/",
		"/[[:alpha:]]/",
		"/[a-z&&[aeiou]]/",
		"/[a-z--[aeiou]]/",
		"/\\d\\D\\w\\W\\s\\S\\h\\H\\v\\V\\R/",
		"/\\A\\z\\Z\\G\\b\\B\\K/",
		"/\\x41\\x{1F600}\\u{0041}/",
		"/\\p{L}\\PN\\p{^N}/",
		"/\\012\\o{17}/",
		"/\\cA/",
		"/(a)\\1/",
		"/(a)\\g{1}/",
		"/(?(1)yes|no)/",
		"/(?(1)yes)/",
		"/(?(R)a)/",
		"/(?(VERSION>=10.4)yes|no)/",
		"/(?(?=x)y|z)/",
		"/(?(DEFINE)(?<digit>[0-9]))(?&digit)+/",
		"/(?1)(a)/",
		"/(?+1)(a)/",
		"/(?P>f)/",
		"/a(*SKIP)b|c/",
		"/(*LIMIT_MATCH=1000)a/",
		"/(*script_run:Latin)x/",
		"/(?C)(?C7)(?C\"done\")/",
		"/a(?#note)b/",
		"/a]b/",
		"#foo/bar#i",
		"{foo}i",
		"/\\.\\[\\]\\(\\)\\*\\+\\?/",
		"//",
		"/a|/",
	}

	p := syntax.NewParser()
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			re, err := p.Parse(pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", pattern, err)
			}
			got := Compile(re)
			if got != pattern {
				t.Errorf("Compile = %q, want %q", got, pattern)
			}
		})
	}
}

// TestRoundTripFixedPoint lists patterns the compiler may normalize
// once; the second pass must be stable.
func TestRoundTripFixedPoint(t *testing.T) {
	patterns := []string{
		"/(?P<n>a)(?P=n)/",
		"/(?'n'a)/",
		"/\\g'1'/",
		"/\\g<name>/",
		"/a b c/x",
		"/a#tail\nb/x",
		"/[]a]/",
		"/[a^]/",
		"/[-a]/",
		"/(?(1)a|)/",
		"/(*sr:Han)/",
		"/{2}/",
		"/*a/",
	}

	p := syntax.NewParser()
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			re, err := p.Parse(pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", pattern, err)
			}
			first := Compile(re)
			re2, err := p.Parse(first)
			if err != nil {
				t.Fatalf("reparse of %q failed: %v", first, err)
			}
			second := Compile(re2)
			if second != first {
				t.Errorf("not a fixed point: %q -> %q -> %q", pattern, first, second)
			}
		})
	}
}

func TestQuantifierWrapping(t *testing.T) {
	p := syntax.NewParser()
	re, err := p.Parse("/(?:ab)+/")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	// The group node survives parsing, so compilation keeps it.
	if got := Compile(re); got != "/(?:ab)+/" {
		t.Errorf("Compile = %q, want /(?:ab)+/", got)
	}
}

func TestDelimiterEscaping(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"escaped slash survives", `/a\/b/`, `/a\/b/`},
		{"slash unescaped under hash delimiter", "#a/b#", "#a/b#"},
		{"hash literal under hash delimiter", `#a\#b#`, `#a\#b#`},
	}

	p := syntax.NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := p.Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.pattern, err)
			}
			if got := Compile(re); got != tt.want {
				t.Errorf("Compile = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNonPrintableEscapes(t *testing.T) {
	p := syntax.NewParser()
	re, err := p.Parse("/a\x01b/")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got := Compile(re); got != `/a\x01b/` {
		t.Errorf("Compile = %q, want /a\\x01b/", got)
	}

	re, err = p.Parse("/a\tb/")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got := Compile(re); got != `/a\tb/` {
		t.Errorf("Compile = %q, want /a\\tb/", got)
	}
}
