package width

import (
	"testing"

	"github.com/0x4d5352/regent/syntax"
)

func TestCalculate(t *testing.T) {
	unbounded := -1
	tests := []struct {
		name    string
		pattern string
		min     int
		max     int // -1 = unbounded
	}{
		{"literal", "/hello/", 5, 5},
		{"alternation", "/(a|b)c/", 2, 2},
		{"alternation uneven", "/(a|bbb)/", 1, 3},
		{"anchored wildcard", "/^foo.*bar$/", 6, unbounded},
		{"backref", `/([a-z])\1/`, 1, unbounded},
		{"star", "/a*/", 0, unbounded},
		{"plus", "/a+/", 1, unbounded},
		{"question", "/a?/", 0, 1},
		{"interval", "/a{2,5}/", 2, 5},
		{"interval exact", "/a{3}/", 3, 3},
		{"interval open", "/a{2,}/", 2, unbounded},
		{"quantified group", "/(abc){2,3}/", 6, 9},
		{"lookahead is zero width", "/(?=abc)x/", 1, 1},
		{"lookbehind is zero width", "/(?<=abc)x/", 1, 1},
		{"char class", "/[a-z]{2}/", 2, 2},
		{"char type", `/\d\w/`, 2, 2},
		{"anchors", "/^$/", 0, 0},
		{"assertions and keep", `/\A\K\z/`, 0, 0},
		{"comment", "/a(?#x)b/", 2, 2},
		{"subroutine", "/(a)(?1)/", 1, unbounded},
		{"conditional envelope", "/(a)(?(1)xx|y)/", 2, 3},
		{"conditional no else", "/(a)(?(1)xx)/", 1, 3},
		{"unicode escapes", `/\x41\x{1F600}/`, 2, 2},
		{"verbs and options", "/(*UTF)(*LIMIT_MATCH=10)a/", 1, 1},
		{"empty pattern", "//", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := syntax.NewParser().Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.pattern, err)
			}
			r := Calculate(re)
			if int(r.Min) != tt.min {
				t.Errorf("Min = %d, want %d", r.Min, tt.min)
			}
			if tt.max == unbounded {
				if r.Bounded() {
					t.Errorf("Max = %d, want unbounded", *r.Max)
				}
			} else {
				if !r.Bounded() {
					t.Errorf("Max = unbounded, want %d", tt.max)
				} else if int(*r.Max) != tt.max {
					t.Errorf("Max = %d, want %d", *r.Max, tt.max)
				}
			}
		})
	}
}
