// Package regent is a PCRE pattern front-end: it parses delimited
// patterns into a typed AST and exposes analyses over it. The heavy
// lifting lives in the subpackages (syntax, validator, compiler,
// modernizer, literal, width, metrics); this package is the small
// stateless surface most callers need.
package regent

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/0x4d5352/regent/ast"
	"github.com/0x4d5352/regent/syntax"
	"github.com/0x4d5352/regent/validator"
)

var (
	parserMu sync.Mutex
	parser   *syntax.Parser
)

// Parse parses a delimited pattern into its AST. The shared parser is
// lazily constructed and reused; the mutex makes Parse safe for
// concurrent use.
func Parse(pattern string) (*ast.Regex, error) {
	parserMu.Lock()
	defer parserMu.Unlock()
	if parser == nil {
		parser = syntax.NewParser()
	}
	return parser.Parse(pattern)
}

// ValidationResult reports whether a pattern parses and passes the
// semantic checks. Message holds the first problem found.
type ValidationResult struct {
	OK      bool
	Message string
}

// Validate parses and validates a pattern, folding lexer, parser and
// validator errors into the result.
func Validate(pattern string) ValidationResult {
	re, err := Parse(pattern)
	if err != nil {
		return ValidationResult{Message: err.Error()}
	}
	if err := validator.Validate(re); err != nil {
		return ValidationResult{Message: err.Error()}
	}
	return ValidationResult{OK: true}
}

// EngineCheck probes whether the pattern body is accepted by a
// PCRE-compatible engine (dlclark/regexp2). It compiles the body with
// the pattern's flags mapped to engine options; no matching is done.
func EngineCheck(pattern string) error {
	re, err := Parse(pattern)
	if err != nil {
		return err
	}
	body := pattern[1 : len(pattern)-len(re.Flags)-1]
	if _, err := regexp2.Compile(body, engineOptions(re.Flags)); err != nil {
		return fmt.Errorf("engine check failed: %w", err)
	}
	return nil
}

func engineOptions(flags string) regexp2.RegexOptions {
	opts := regexp2.None
	if strings.ContainsRune(flags, 'i') {
		opts |= regexp2.IgnoreCase
	}
	if strings.ContainsRune(flags, 'm') {
		opts |= regexp2.Multiline
	}
	if strings.ContainsRune(flags, 's') {
		opts |= regexp2.Singleline
	}
	if strings.ContainsRune(flags, 'x') {
		opts |= regexp2.IgnorePatternWhitespace
	}
	if strings.ContainsRune(flags, 'u') {
		opts |= regexp2.Unicode
	}
	return opts
}
