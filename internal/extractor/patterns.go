package extractor

import (
	"fmt"
	"regexp"
)

// Patterns holds the compiled extraction rules for one source schema. The
// defaults match the upstream core repository; alternative schemas can be
// supplied through configuration without touching the scanners.
type Patterns struct {
	// Include matches an include directive; group 1 is the included path.
	Include *regexp.Regexp

	// IndexMacro matches a contract-index macro; group 1 is the number.
	IndexMacro *regexp.Regexp

	// Register matches a procedure-registration call site; group 1 is the
	// procedure symbol, group 2 its numeric id.
	Register *regexp.Regexp

	// Quoted matches a quoted string literal; group 1 is its content.
	Quoted *regexp.Regexp

	// BlockComment and LineComment are the two recognized comment forms.
	BlockComment *regexp.Regexp
	LineComment  *regexp.Regexp

	// DescriptorToken is the declaration name of the descriptor table.
	DescriptorToken string
}

const (
	defaultInclude    = `#\s*include\s*["<]([^">]+)[">]`
	defaultIndexMacro = `#\s*define\s+[A-Za-z0-9_]+_CONTRACT_INDEX\s+(\d+)\b`
	defaultRegister   = `REGISTER_USER_PROCEDURE\s*\(\s*[&\s]*([A-Za-z_][A-Za-z0-9_]*)\s*,\s*(\d+)\s*\)`
	defaultQuoted     = `"([^"]+)"`
	defaultBlock      = `(?s)/\*.*?\*/`
	defaultLine       = `//[^\n]*`
	defaultToken      = "contractDescriptions"
)

// DefaultPatterns returns the rules for the upstream contract sources.
func DefaultPatterns() Patterns {
	return Patterns{
		Include:         regexp.MustCompile(defaultInclude),
		IndexMacro:      regexp.MustCompile(defaultIndexMacro),
		Register:        regexp.MustCompile(defaultRegister),
		Quoted:          regexp.MustCompile(defaultQuoted),
		BlockComment:    regexp.MustCompile(defaultBlock),
		LineComment:     regexp.MustCompile(defaultLine),
		DescriptorToken: defaultToken,
	}
}

// PatternSpec carries pattern overrides as plain strings, typically from a
// config file. Empty fields keep the defaults.
type PatternSpec struct {
	Include         string `json:"include,omitempty"`
	IndexMacro      string `json:"indexMacro,omitempty"`
	Register        string `json:"register,omitempty"`
	Quoted          string `json:"quoted,omitempty"`
	DescriptorToken string `json:"descriptorToken,omitempty"`
}

// CompilePatterns builds a Patterns set from a spec, falling back to the
// defaults for empty fields.
func CompilePatterns(spec PatternSpec) (Patterns, error) {
	pats := DefaultPatterns()

	compile := func(dst **regexp.Regexp, name, expr string) error {
		if expr == "" {
			return nil
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("compiling %s pattern: %w", name, err)
		}
		*dst = re
		return nil
	}

	if err := compile(&pats.Include, "include", spec.Include); err != nil {
		return Patterns{}, err
	}
	if err := compile(&pats.IndexMacro, "index macro", spec.IndexMacro); err != nil {
		return Patterns{}, err
	}
	if err := compile(&pats.Register, "register", spec.Register); err != nil {
		return Patterns{}, err
	}
	if err := compile(&pats.Quoted, "quoted string", spec.Quoted); err != nil {
		return Patterns{}, err
	}
	if spec.DescriptorToken != "" {
		pats.DescriptorToken = spec.DescriptorToken
	}
	return pats, nil
}
