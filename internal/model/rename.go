package model

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a case-conversion rule for declared member names.
type Rule string

const (
	RuleNone  Rule = ""
	RuleCamel Rule = "camel"
)

// ParseRule accepts the rule names understood on the command line.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return RuleNone, nil
	case "camel", "camelcase":
		return RuleCamel, nil
	default:
		return RuleNone, fmt.Errorf("unknown rename rule %q (allowed: camel)", s)
	}
}

// RenameOptions selects a rule per member kind.
type RenameOptions struct {
	Case    Rule // enumeration cases
	Variant Rule // union variants
	Field   Rule // record fields
}

// RenameAll applies one rule to every member kind.
func RenameAll(r Rule) RenameOptions {
	return RenameOptions{Case: r, Variant: r, Field: r}
}

// Rename rewrites enumeration case, union variant and record field names.
// Type names are never changed.
func (m *Module) Rename(opts RenameOptions) {
	m.Walk(func(it Item) {
		switch x := it.(type) {
		case *Enum:
			for i := range x.Cases {
				x.Cases[i].Name = opts.Case.Apply(x.Cases[i].Name)
			}
		case *Union:
			for i := range x.Variants {
				x.Variants[i].Name = opts.Variant.Apply(x.Variants[i].Name)
			}
		case *Record:
			for i := range x.Fields {
				x.Fields[i].Name = opts.Field.Apply(x.Fields[i].Name)
			}
		}
	})
}

// Apply converts name according to r.
func (r Rule) Apply(name string) string {
	switch r {
	case RuleCamel:
		return LowerCamel(name)
	default:
		return name
	}
}

// LowerCamel splits name on word separators, lower-cases the first letter of
// the first segment and upper-cases the first letter of every later segment.
// Letters after the first of each segment are kept as written, so the
// conversion is idempotent: living_address -> livingAddress -> livingAddress.
func LowerCamel(name string) string {
	segs := strings.FieldsFunc(name, isWordSeparator)
	if len(segs) == 0 {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	for i, seg := range segs {
		r, size := utf8.DecodeRuneInString(seg)
		if i == 0 {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		b.WriteString(seg[size:])
	}
	return b.String()
}

func isWordSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
