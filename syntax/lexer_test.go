package syntax

import "testing"

func TestLexerSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		body    string
		flags   string
		wantErr bool
	}{
		{"slash", "/abc/", "abc", "", false},
		{"slash with flags", "/abc/imx", "abc", "imx", false},
		{"hash", "#foo/bar#i", "foo/bar", "i", false},
		{"comma", ",a,", "a", "", false},
		{"braces", "{a{b}c}x", "a{b}c", "x", false},
		{"parens", "(ab)", "ab", "", false},
		{"angle", "<a>u", "a", "u", false},
		{"escaped delimiter", `/a\/b/`, `a\/b`, "", false},
		{"delimiter inside class", "/a[/]b/", "a[/]b", "", false},
		{"empty body", "//", "", "", false},
		{"too short", "/", "", "", true},
		{"alphanumeric delimiter", "1a1", "", "", true},
		{"space delimiter", " a ", "", "", true},
		{"backslash delimiter", `\a\`, "", "", true},
		{"unterminated", "/abc", "", "", true},
		{"unterminated paired", "{a{b}", "", "", true},
		{"bad flag", "/a/q", "", "", true},
		{"trailing escape", `/a\`, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, flags, err := splitForTest(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if body != tt.body || flags != tt.flags {
				t.Errorf("Init(%q) = body %q flags %q, want %q %q", tt.input, body, flags, tt.body, tt.flags)
			}
		})
	}
}

func splitForTest(input string) (body, flags string, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(LexerError); ok {
			err = e
			return
		}
		panic(r)
	}()
	var l lexer
	l.Init(input)
	return l.Body(), l.flags, nil
}
