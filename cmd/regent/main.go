package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"
	flag "github.com/spf13/pflag"

	"github.com/0x4d5352/regent"
	"github.com/0x4d5352/regent/compiler"
	"github.com/0x4d5352/regent/internal/highlight"
	"github.com/0x4d5352/regent/internal/unescape"
	"github.com/0x4d5352/regent/literal"
	"github.com/0x4d5352/regent/metrics"
	"github.com/0x4d5352/regent/modernizer"
	"github.com/0x4d5352/regent/syntax"
	"github.com/0x4d5352/regent/width"
)

var (
	version = "0.1.0"
)

func main() {
	var stdin io.Reader
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		stdin = os.Stdin
	}
	if err := run(os.Args, stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("regent", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Pass selection
	doValidate := fs.Bool("validate", false, "Run the semantic validator")
	doCompile := fs.Bool("compile", false, "Re-emit the canonical pattern")
	doModernize := fs.Bool("modernize", false, "Simplify the pattern and re-emit it")
	doLiterals := fs.Bool("literals", false, "Show guaranteed literal prefixes/suffixes")
	doRange := fs.Bool("range", false, "Show the min/max match length")
	doMetrics := fs.Bool("metrics", false, "Show node counts and nesting depth")
	doEngine := fs.Bool("engine-check", false, "Probe the pattern against the regexp2 engine")
	doHighlight := fs.Bool("highlight", false, "Print the pattern with syntax colors")

	// Input handling
	fromString := fs.Bool("from-string-literal", false, "Unescape string-literal escapes before parsing")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	showVersion := fs.BoolP("version", "v", false, "Show version")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "regent - Parse and analyze PCRE patterns\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  regent [flags] <pattern>\n")
		fmt.Fprintf(stderr, "  echo '/pattern/i' | regent [flags]\n\n")
		fmt.Fprintf(stderr, "The pattern is delimited: /body/flags with any non-alphanumeric\n")
		fmt.Fprintf(stderr, "delimiter other than backslash or space; bracket pairs are supported.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nPattern flags:\n")
		for _, info := range syntax.SupportedFlags() {
			fmt.Fprintf(stderr, "  %c  %-18s %s\n", info.Char, info.Name, info.Description)
		}
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  regent '/^foo.*bar$/'\n")
		fmt.Fprintf(stderr, "  regent --validate '/(a+)*/'\n")
		fmt.Fprintf(stderr, "  regent --modernize '/[0-9]{3}/'\n")
		fmt.Fprintf(stderr, "  echo '#foo/bar#i' | regent --literals\n")
	}

	err := fs.Parse(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "regent version %s\n", version)
		return nil
	}

	pattern, err := getInput(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return err
	}
	if *fromString {
		pattern = unescape.StringLiteral(pattern)
	}

	// Default to the full analysis suite when no pass is selected.
	if !*doValidate && !*doCompile && !*doModernize && !*doLiterals &&
		!*doRange && !*doMetrics && !*doEngine && !*doHighlight {
		*doValidate, *doCompile, *doLiterals, *doRange, *doMetrics = true, true, true, true, true
	}

	re, err := regent.Parse(pattern)
	if err != nil {
		displayParseError(stderr, pattern, err)
		return fmt.Errorf("parse error: %w", err)
	}

	profile := termenv.Ascii
	if !*noColor && isatty.IsTerminal(os.Stdout.Fd()) {
		profile = termenv.ColorProfile()
	}

	if *doHighlight {
		fmt.Fprintln(stdout, highlight.New(profile).Render(re, pattern))
	}
	if *doValidate {
		result := regent.Validate(pattern)
		if result.OK {
			fmt.Fprintln(stdout, "valid")
		} else {
			fmt.Fprintf(stdout, "invalid: %s\n", result.Message)
		}
	}
	if *doCompile {
		fmt.Fprintln(stdout, compiler.Compile(re))
	}
	if *doModernize {
		fmt.Fprintln(stdout, compiler.Compile(modernizer.Modernize(re)))
	}
	if *doLiterals {
		set := literal.Extract(re)
		fmt.Fprintf(stdout, "prefixes: %s\n", formatSet(set.Prefixes))
		fmt.Fprintf(stdout, "suffixes: %s\n", formatSet(set.Suffixes))
		fmt.Fprintf(stdout, "complete: %v\n", set.Complete)
	}
	if *doRange {
		r := width.Calculate(re)
		if r.Bounded() {
			fmt.Fprintf(stdout, "length: %d..%d\n", r.Min, *r.Max)
		} else {
			fmt.Fprintf(stdout, "length: %d..\n", r.Min)
		}
	}
	if *doMetrics {
		snap := metrics.Collect(re)
		fmt.Fprintf(stdout, "nodes: %d, depth: %d\n", snap.Total, snap.MaxDepth)
		types := make([]string, 0, len(snap.Counts))
		for t := range snap.Counts {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(stdout, "  %-18s %d\n", t, snap.Counts[t])
		}
	}
	if *doEngine {
		if err := regent.EngineCheck(pattern); err != nil {
			fmt.Fprintf(stdout, "engine: rejected (%v)\n", err)
		} else {
			fmt.Fprintln(stdout, "engine: accepted")
		}
	}

	return nil
}

// getInput retrieves the pattern from CLI args or stdin
func getInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if stdin != nil {
		input, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return strings.TrimSpace(string(input)), nil
	}
	return "", fmt.Errorf("no pattern provided")
}

// displayParseError shows a parse error with a caret under the offending
// position. Error offsets are byte offsets; the caret column accounts
// for wide characters.
func displayParseError(w io.Writer, pattern string, err error) {
	begin := -1
	var lexErr syntax.LexerError
	var parseErr syntax.ParserError
	switch {
	case errors.As(err, &lexErr):
		begin = lexErr.Begin
	case errors.As(err, &parseErr):
		begin = parseErr.Begin
	}

	fmt.Fprintf(w, "Error parsing pattern:\n\n")
	fmt.Fprintf(w, "  %s\n", pattern)
	if begin >= 0 && begin <= len(pattern) {
		col := uniseg.StringWidth(pattern[:begin])
		fmt.Fprintf(w, "  %s^\n", strings.Repeat(" ", col))
	}
	fmt.Fprintf(w, "\n%s\n", err)
}

func formatSet(items []string) string {
	if len(items) == 0 {
		return "{}"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}
