package literal

import (
	"reflect"
	"sort"
	"testing"

	"github.com/0x4d5352/regent/syntax"
)

func sorted(s []string) []string {
	out := append([]string{}, s...)
	sort.Strings(out)
	return out
}

func extract(t *testing.T, pattern string) Set {
	t.Helper()
	re, err := syntax.NewParser().Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", pattern, err)
	}
	return Extract(re)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		prefixes []string
		suffixes []string
		complete bool
	}{
		{"literal", "/hello/", []string{"hello"}, []string{"hello"}, true},
		{"alternation", "/(a|b)c/", []string{"ac", "bc"}, []string{"ac", "bc"}, true},
		{"anchored prefix", "/^foo.*bar$/", []string{"foo"}, nil, false},
		{"leading wildcard leaves trivial prefix", "/.*foo/", []string{""}, nil, false},
		{"plus keeps prefix", "/ab+/", []string{"ab"}, nil, false},
		{"open interval keeps prefix", "/foo{2,}/", []string{"foo"}, nil, false},
		{"star drops everything", "/a*/", nil, nil, false},
		{"question drops everything", "/a?/", nil, nil, false},
		{"bounded interval drops", "/a{2,5}/", nil, nil, false},
		{"exact repetition", "/(?:ab){2}/", []string{"abab"}, []string{"abab"}, true},
		{"zero repetition", "/a{0}/", []string{""}, []string{""}, true},
		{"char class", "/[ab]c/", []string{"ac", "bc"}, []string{"ac", "bc"}, true},
		{"negated class", "/[^ab]c/", []string{""}, nil, false},
		{"class with range", "/[a-z]x/", []string{""}, nil, false},
		{"dot poisons suffix", "/a.b/", []string{"a"}, nil, false},
		{"alternation poisoned branch", "/(a|.*)b/", []string{""}, nil, false},
		{"lookahead zero width", "/(?=x)abc/", []string{"abc"}, []string{"abc"}, true},
		{"lookbehind zero width", "/(?<=x)abc/", []string{"abc"}, []string{"abc"}, true},
		{"anchors and assertions", `/^\bfoo\b$/`, []string{"foo"}, []string{"foo"}, true},
		{"comment transparent", "/ab(?#note)cd/", []string{"abcd"}, []string{"abcd"}, true},
		{"verb transparent", "/ab(*ACCEPT)/", []string{"ab"}, []string{"ab"}, true},
		{"backref poisons suffix", `/(ab)\1/`, []string{"ab"}, nil, false},
		{"conditional opaque", "/(a)(?(1)x|y)/", []string{"a"}, nil, false},
		{"escaped char literal", `/\.com/`, []string{".com"}, []string{".com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := extract(t, tt.pattern)
			if !reflect.DeepEqual(sorted(set.Prefixes), sorted(tt.prefixes)) &&
				!(len(set.Prefixes) == 0 && len(tt.prefixes) == 0) {
				t.Errorf("prefixes = %q, want %q", set.Prefixes, tt.prefixes)
			}
			if !reflect.DeepEqual(sorted(set.Suffixes), sorted(tt.suffixes)) &&
				!(len(set.Suffixes) == 0 && len(tt.suffixes) == 0) {
				t.Errorf("suffixes = %q, want %q", set.Suffixes, tt.suffixes)
			}
			if set.Complete != tt.complete {
				t.Errorf("complete = %v, want %v", set.Complete, tt.complete)
			}
		})
	}
}

func TestCaseInsensitiveFlag(t *testing.T) {
	set := extract(t, "/ab/i")
	want := []string{"AB", "Ab", "aB", "ab"}
	if !reflect.DeepEqual(sorted(set.Prefixes), want) {
		t.Errorf("prefixes = %q, want %q", sorted(set.Prefixes), want)
	}
	if !set.Complete {
		t.Error("expected complete set")
	}
}

func TestCaseInsensitiveScopedFlag(t *testing.T) {
	set := extract(t, "/(?i:a)b/")
	want := []string{"Ab", "ab"}
	if !reflect.DeepEqual(sorted(set.Prefixes), want) {
		t.Errorf("prefixes = %q, want %q", sorted(set.Prefixes), want)
	}

	// Disabling i restores exact matching inside the group.
	set = extract(t, "/(?-i:a)b/i")
	want = []string{"aB", "ab"}
	if !reflect.DeepEqual(sorted(set.Prefixes), want) {
		t.Errorf("prefixes = %q, want %q", sorted(set.Prefixes), want)
	}
}

func TestCaseExpansionBailout(t *testing.T) {
	// Nine letters exceed the expansion bound.
	set := extract(t, "/verylongs/i")
	if !set.IsEmpty() {
		t.Errorf("expected empty set for long case-insensitive literal, got %+v", set)
	}
}

func TestSizeCap(t *testing.T) {
	// 4 branches of 64 case variants each would exceed 128.
	set := extract(t, "/(abcdef|ghijkl|mnopqr|stuvwx)/i")
	if !set.IsEmpty() {
		t.Errorf("expected empty set past the cap, got %d prefixes", len(set.Prefixes))
	}
}

func TestSetAlgebra(t *testing.T) {
	t.Run("concat complete", func(t *testing.T) {
		got := FromString("a").Concat(FromString("b"))
		want := FromString("ab")
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("concat with empty keeps prefixes", func(t *testing.T) {
		got := FromString("foo").Concat(Empty())
		if got.Complete || len(got.Suffixes) != 0 {
			t.Errorf("got %+v, want incomplete prefix-only set", got)
		}
		if !reflect.DeepEqual(got.Prefixes, []string{"foo"}) {
			t.Errorf("prefixes = %q, want [foo]", got.Prefixes)
		}
	})

	t.Run("empty concat keeps suffixes", func(t *testing.T) {
		got := Empty().Concat(FromString("bar"))
		if got.Complete || len(got.Prefixes) != 0 {
			t.Errorf("got %+v, want incomplete suffix-only set", got)
		}
		if !reflect.DeepEqual(got.Suffixes, []string{"bar"}) {
			t.Errorf("suffixes = %q, want [bar]", got.Suffixes)
		}
	})

	t.Run("unite", func(t *testing.T) {
		got := FromString("a").Unite(FromString("b"))
		if !got.Complete {
			t.Error("expected complete union")
		}
		if !reflect.DeepEqual(sorted(got.Prefixes), []string{"a", "b"}) {
			t.Errorf("prefixes = %q", got.Prefixes)
		}
	})

	t.Run("unite with empty poisons", func(t *testing.T) {
		got := FromString("a").Unite(Empty())
		if !got.IsEmpty() {
			t.Errorf("got %+v, want empty", got)
		}
	})

	t.Run("unite dedups", func(t *testing.T) {
		got := FromString("a").Unite(FromString("a"))
		if len(got.Prefixes) != 1 {
			t.Errorf("prefixes = %q, want one element", got.Prefixes)
		}
	})

	t.Run("empty string singleton is not empty", func(t *testing.T) {
		if FromString("").IsEmpty() {
			t.Error("FromString(\"\") must not be the empty set")
		}
	})
}

func TestExpandCaseInsensitive(t *testing.T) {
	got := ExpandCaseInsensitive("a1")
	if !reflect.DeepEqual(sorted(got.Prefixes), []string{"A1", "a1"}) {
		t.Errorf("variants = %q", got.Prefixes)
	}
	if !ExpandCaseInsensitive("abcdefghi").IsEmpty() {
		t.Error("expected bail-out past 8 bytes")
	}
}
