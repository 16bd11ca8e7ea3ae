package rewrite

import (
	"regexp"
	"strings"
)

// DirectiveKind classifies one line of an .htaccess fragment.
type DirectiveKind string

const (
	KindRewriteRule   DirectiveKind = "RewriteRule"
	KindRewriteCond   DirectiveKind = "RewriteCond"
	KindRewriteBase   DirectiveKind = "RewriteBase"
	KindRewriteEngine DirectiveKind = "RewriteEngine"
	KindComment       DirectiveKind = "comment"
	KindBlank         DirectiveKind = "blank"
	KindUnknown       DirectiveKind = "unknown"
)

// Directive is one tokenized line. Args holds the whitespace-split tokens
// after the directive name.
type Directive struct {
	Kind DirectiveKind
	Args []string
	Line int
	Raw  string
}

// Rule is a compiled RewriteRule directive.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
	Flags       []string
	Raw         string
}

// HasFlag reports whether the rule carries the given flag, ignoring
// arguments (R=301 matches flag "R") and case.
func (r *Rule) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		name, _, _ := strings.Cut(f, "=")
		if strings.EqualFold(name, flag) {
			return true
		}
	}
	return false
}

// RuleSet is the outcome of tokenizing a rules fragment. SkippedLines
// records RewriteRule lines whose pattern failed to compile; they do not
// participate in evaluation.
type RuleSet struct {
	Rules        []Rule
	Conds        int
	SkippedLines []string
}

// ruleDirective matches "RewriteRule <pattern> <replacement> [flags]".
var ruleDirective = regexp.MustCompile(`^RewriteRule\s+(\S+)\s+(\S+)(?:\s+\[([^\]]+)\])?`)

// Tokenize splits a rules fragment into typed directives.
func Tokenize(rulesText string) []Directive {
	var directives []Directive
	for i, line := range strings.Split(rulesText, "\n") {
		trimmed := strings.TrimSpace(line)
		d := Directive{Line: i + 1, Raw: trimmed}
		switch {
		case trimmed == "":
			d.Kind = KindBlank
		case strings.HasPrefix(trimmed, "#"):
			d.Kind = KindComment
		default:
			// The directive name is the whole first token, so a line like
			// "RewriteRuleFoo ..." stays unknown.
			fields := strings.Fields(trimmed)
			switch fields[0] {
			case "RewriteRule":
				d.Kind = KindRewriteRule
				d.Args = fields[1:]
			case "RewriteCond":
				d.Kind = KindRewriteCond
				d.Args = fields[1:]
			case "RewriteBase":
				d.Kind = KindRewriteBase
				d.Args = fields[1:]
			case "RewriteEngine":
				d.Kind = KindRewriteEngine
				d.Args = fields[1:]
			default:
				d.Kind = KindUnknown
			}
		}
		directives = append(directives, d)
	}
	return directives
}

// ParseRules compiles the RewriteRule directives of a fragment into a
// RuleSet. Rules with unparsable patterns are dropped but surfaced in
// SkippedLines so callers can report them.
func ParseRules(rulesText string) RuleSet {
	var set RuleSet
	for _, d := range Tokenize(rulesText) {
		switch d.Kind {
		case KindRewriteCond:
			set.Conds++
		case KindRewriteRule:
			m := ruleDirective.FindStringSubmatch(d.Raw)
			if m == nil {
				set.SkippedLines = append(set.SkippedLines, d.Raw)
				continue
			}
			pattern, err := regexp.Compile(m[1])
			if err != nil {
				set.SkippedLines = append(set.SkippedLines, d.Raw)
				continue
			}
			var flags []string
			if m[3] != "" {
				for _, f := range strings.Split(m[3], ",") {
					flags = append(flags, strings.TrimSpace(f))
				}
			}
			set.Rules = append(set.Rules, Rule{
				Pattern:     pattern,
				Replacement: m[2],
				Flags:       flags,
				Raw:         d.Raw,
			})
		}
	}
	return set
}
