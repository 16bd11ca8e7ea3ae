// Package rewrite evaluates Apache-style RewriteRule fragments against a
// candidate path and reports the resulting redirect chain.
//
// RewriteCond lines are tokenized but never evaluated: the engine has no
// server state (host, scheme, filesystem) to test against. Their presence is
// reported in the result notes instead of being silently ignored.
package rewrite

import (
	"fmt"
	"strings"
)

// maxIterations bounds the chain length so cyclic rule sets terminate.
const maxIterations = 10

// Step is one hop of the redirect chain.
type Step struct {
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`
	Matched    bool   `json:"matched"`
	Rule       string `json:"rule"`
}

// Result is the outcome of evaluating a rule fragment against a path.
type Result struct {
	Steps        []Step   `json:"steps"`
	Notes        []string `json:"notes,omitempty"`
	SkippedLines []string `json:"skipped_lines,omitempty"`
}

// Evaluate runs the rules against inputPath. Rules are scanned in file order
// and the first match rewrites the current path; evaluation stops on a rule
// carrying the L flag, when nothing matches, or after ten iterations.
func Evaluate(rulesText, inputPath string) Result {
	set := ParseRules(rulesText)

	result := Result{SkippedLines: set.SkippedLines}
	if set.Conds > 0 {
		result.Notes = append(result.Notes,
			fmt.Sprintf("%d RewriteCond directive(s) present but not evaluated; rules are applied unconditionally", set.Conds))
	}

	current := inputPath
	for i := 0; i < maxIterations; i++ {
		matched := false
		for _, rule := range set.Rules {
			next, ok := applyRule(rule, current)
			if !ok {
				continue
			}
			result.Steps = append(result.Steps, Step{
				InputPath:  current,
				OutputPath: next,
				Matched:    true,
				Rule:       rule.Raw,
			})
			current = next
			matched = true
			if rule.HasFlag("L") {
				return result
			}
			break
		}
		if !matched {
			break
		}
	}

	if len(result.Steps) == 0 {
		result.Steps = append(result.Steps, Step{
			InputPath:  inputPath,
			OutputPath: inputPath,
			Matched:    false,
			Rule:       "No matching rules",
		})
	}
	return result
}

// applyRule matches the rule against the path with per-directory semantics:
// the pattern sees the path as given and, when that fails, the path without
// its leading slash, since .htaccess patterns like ^old-page$ are written
// against the slash-stripped form. Only the first match is rewritten;
// relative results get the leading slash back.
func applyRule(rule Rule, current string) (string, bool) {
	candidates := []string{current}
	if strings.HasPrefix(current, "/") {
		candidates = append(candidates, current[1:])
	}

	for _, candidate := range candidates {
		loc := rule.Pattern.FindStringSubmatchIndex(candidate)
		if loc == nil {
			continue
		}
		expanded := string(rule.Pattern.ExpandString(nil, rule.Replacement, candidate, loc))
		next := candidate[:loc[0]] + expanded + candidate[loc[1]:]
		if strings.HasPrefix(current, "/") && !strings.HasPrefix(next, "/") && !strings.Contains(next, "://") {
			next = "/" + next
		}
		return next, true
	}
	return "", false
}
