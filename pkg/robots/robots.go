// Package robots parses robots.txt directives and reports per-bot access
// for a registry of known AI crawlers.
//
// The parser tracks a single current user-agent context: each Disallow line
// applies to the most recently seen User-agent line. Stacked User-agent
// lines sharing one rule block are not grouped; that limitation is kept
// explicit here rather than hidden in ad hoc string matching.
package robots

import (
	"strings"
)

// Directive is one tokenized robots.txt line. Field is lowercased; Value
// keeps its original case except for user-agent values, which are compared
// case-insensitively by the checker.
type Directive struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Line  int    `json:"line"`
}

// Bot is one entry of the known-crawler registry.
type Bot struct {
	Name  string `json:"name"`
	Token string `json:"user_agent"`
}

// AccessResult is the verdict for a single bot.
type AccessResult struct {
	Name      string `json:"name"`
	UserAgent string `json:"user_agent"`
	Allowed   bool   `json:"allowed"`
	Reason    string `json:"reason"`
}

// DefaultBots is the registry of AI crawlers the checker knows about.
var DefaultBots = []Bot{
	{Name: "GPTBot (OpenAI)", Token: "GPTBot"},
	{Name: "ChatGPT-User", Token: "ChatGPT-User"},
	{Name: "Google-Extended", Token: "Google-Extended"},
	{Name: "CCBot (Common Crawl)", Token: "CCBot"},
	{Name: "anthropic-ai (Claude)", Token: "anthropic-ai"},
	{Name: "Claude-Web", Token: "Claude-Web"},
	{Name: "Bytespider (ByteDance)", Token: "Bytespider"},
	{Name: "Applebot-Extended", Token: "Applebot-Extended"},
	{Name: "PerplexityBot", Token: "PerplexityBot"},
	{Name: "Cohere-ai", Token: "cohere-ai"},
}

// Tokenize splits robots.txt into typed directives. Comments and blank
// lines are dropped; unknown fields are kept so callers can inspect them.
func Tokenize(robotsTxt string) []Directive {
	var directives []Directive
	for i, line := range strings.Split(robotsTxt, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		field, value, found := strings.Cut(trimmed, ":")
		if !found {
			continue
		}
		directives = append(directives, Directive{
			Field: strings.ToLower(strings.TrimSpace(field)),
			Value: strings.TrimSpace(value),
			Line:  i + 1,
		})
	}
	return directives
}

// blockState captures what the directive walk learned about one bot.
type blockState struct {
	blockedAll  bool // Disallow: / inside the bot's own agent group
	blockedRule bool // any path disallowed inside the bot's own agent group
}

// CheckAccess reports allow/block status per bot. An empty robots.txt means
// every bot is allowed.
func CheckAccess(robotsTxt string, bots []Bot) []AccessResult {
	results := make([]AccessResult, 0, len(bots))

	if strings.TrimSpace(robotsTxt) == "" {
		for _, bot := range bots {
			results = append(results, AccessResult{
				Name:      bot.Name,
				UserAgent: bot.Token,
				Allowed:   true,
				Reason:    "No robots.txt found - all bots allowed by default",
			})
		}
		return results
	}

	directives := Tokenize(robotsTxt)

	for _, bot := range bots {
		state := walkDirectives(directives, bot)
		result := AccessResult{Name: bot.Name, UserAgent: bot.Token}
		switch {
		case state.blockedAll:
			result.Allowed = false
			result.Reason = "Explicitly blocked in robots.txt"
		case state.blockedRule:
			result.Allowed = false
			result.Reason = "Blocked by rule"
		default:
			result.Allowed = true
			result.Reason = "No blocking rules found"
		}
		results = append(results, result)
	}
	return results
}

// walkDirectives applies the single-context model: the most recent
// user-agent line decides whether a disallow applies to the bot. Wildcard
// groups do not block named bots; the check is about bot-specific rules.
func walkDirectives(directives []Directive, bot Bot) blockState {
	var state blockState
	currentAgent := ""
	for _, d := range directives {
		switch d.Field {
		case "user-agent":
			currentAgent = strings.ToLower(d.Value)
		case "disallow":
			if !agentMatches(currentAgent, bot) {
				continue
			}
			path := strings.TrimSpace(d.Value)
			if path == "/" {
				state.blockedAll = true
			}
			if strings.Contains(path, "/") {
				state.blockedRule = true
			}
		}
	}
	return state
}

func agentMatches(currentAgent string, bot Bot) bool {
	return currentAgent == strings.ToLower(bot.Token) ||
		currentAgent == strings.ToLower(bot.Name)
}
