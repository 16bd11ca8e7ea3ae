package robots

import (
	"testing"
)

func resultFor(t *testing.T, results []AccessResult, token string) AccessResult {
	t.Helper()
	for _, r := range results {
		if r.UserAgent == token {
			return r
		}
	}
	t.Fatalf("no result for bot %q", token)
	return AccessResult{}
}

func TestCheckAccess_EmptyRobotsTxt(t *testing.T) {
	results := CheckAccess("", DefaultBots)

	if len(results) != len(DefaultBots) {
		t.Fatalf("CheckAccess() returned %d results, want %d", len(results), len(DefaultBots))
	}
	for _, r := range results {
		if !r.Allowed {
			t.Errorf("bot %s blocked with no robots.txt", r.UserAgent)
		}
		if r.Reason != "No robots.txt found - all bots allowed by default" {
			t.Errorf("bot %s reason = %q", r.UserAgent, r.Reason)
		}
	}
}

func TestCheckAccess_SingleBotBlocked(t *testing.T) {
	robotsTxt := "User-agent: GPTBot\nDisallow: /"

	results := CheckAccess(robotsTxt, DefaultBots)

	gpt := resultFor(t, results, "GPTBot")
	if gpt.Allowed {
		t.Error("GPTBot allowed, want blocked")
	}
	if gpt.Reason != "Explicitly blocked in robots.txt" {
		t.Errorf("GPTBot reason = %q", gpt.Reason)
	}
	for _, r := range results {
		if r.UserAgent != "GPTBot" && !r.Allowed {
			t.Errorf("bot %s blocked, want allowed", r.UserAgent)
		}
	}
}

func TestCheckAccess_PartialDisallowBlocksByRule(t *testing.T) {
	robotsTxt := "User-agent: CCBot\nDisallow: /private/"

	results := CheckAccess(robotsTxt, DefaultBots)

	cc := resultFor(t, results, "CCBot")
	if cc.Allowed {
		t.Error("CCBot allowed, want blocked by rule")
	}
	if cc.Reason != "Blocked by rule" {
		t.Errorf("CCBot reason = %q, want rule block", cc.Reason)
	}
}

func TestCheckAccess_WildcardDoesNotBlockNamedBots(t *testing.T) {
	robotsTxt := "User-agent: *\nDisallow: /admin/"

	results := CheckAccess(robotsTxt, DefaultBots)

	for _, r := range results {
		if !r.Allowed {
			t.Errorf("bot %s blocked by wildcard group", r.UserAgent)
		}
	}
}

func TestCheckAccess_CaseInsensitiveAgent(t *testing.T) {
	robotsTxt := "User-Agent: gptbot\nDisallow: /"

	results := CheckAccess(robotsTxt, DefaultBots)

	if resultFor(t, results, "GPTBot").Allowed {
		t.Error("lowercased agent name not matched")
	}
}

func TestCheckAccess_ContextSwitches(t *testing.T) {
	robotsTxt := `User-agent: GPTBot
Disallow: /

User-agent: Bingbot
Disallow: /search
`

	results := CheckAccess(robotsTxt, DefaultBots)

	if resultFor(t, results, "GPTBot").Allowed {
		t.Error("GPTBot allowed, want blocked")
	}
	// the Bingbot group must not leak into later known-bot checks
	if !resultFor(t, results, "PerplexityBot").Allowed {
		t.Error("PerplexityBot blocked by unrelated group")
	}
}

func TestTokenize(t *testing.T) {
	text := `# comment
User-agent: *
Disallow: /admin/
Crawl-delay: 10

Sitemap: https://example.com/sitemap.xml
garbage line
`

	directives := Tokenize(text)

	want := []Directive{
		{Field: "user-agent", Value: "*", Line: 2},
		{Field: "disallow", Value: "/admin/", Line: 3},
		{Field: "crawl-delay", Value: "10", Line: 4},
		{Field: "sitemap", Value: "https://example.com/sitemap.xml", Line: 6},
	}
	if len(directives) != len(want) {
		t.Fatalf("Tokenize() returned %d directives, want %d: %+v", len(directives), len(want), directives)
	}
	for i, w := range want {
		if directives[i] != w {
			t.Errorf("directive %d = %+v, want %+v", i, directives[i], w)
		}
	}
}
