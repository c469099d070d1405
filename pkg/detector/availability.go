package detector

import (
	"net/url"
	"strings"

	"github.com/dmitrymomot/platformkit/pkg/environment"
)

// MessagingHost is the host of mini-app deep links.
const MessagingHost = "t.me"

// Availability tells a caller whether the mini-app context it needs is
// present and, when it is not, where to send the user.
type Availability struct {
	Available         bool                   `json:"available"`
	Required          bool                   `json:"required"`
	ShouldShowWarning bool                   `json:"should_show_warning"`
	DomainMode        environment.DomainMode `json:"domain_mode"`
	DeepLink          string                 `json:"deep_link,omitempty"`
}

// CheckAvailability reports mini-app availability for r. The deep link is
// filled in only when the domain requires the mini-app and it is missing.
func CheckAvailability(r *Result, bot, currentURL string) Availability {
	a := Availability{
		Available:         r.IsMiniApp(),
		Required:          r.DomainMode() == environment.DomainMiniApp,
		ShouldShowWarning: r.ShouldShowWarning(),
		DomainMode:        r.DomainMode(),
	}
	if a.ShouldShowWarning && bot != "" {
		a.DeepLink = DeepLink(bot, currentURL)
	}
	return a
}

// DeepLink opens currentURL inside the bot's mini-app:
// https://t.me/<bot>?start=<currentURL percent-encoded once>.
// A leading "@" on the bot name is dropped.
func DeepLink(bot, currentURL string) string {
	bot = strings.TrimPrefix(strings.TrimSpace(bot), "@")
	return "https://" + MessagingHost + "/" + bot + "?start=" + encodeURIComponent(currentURL)
}

var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s the way browsers do for a URI component,
// which differs from url.QueryEscape in spaces and five sub-delimiters.
func encodeURIComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
