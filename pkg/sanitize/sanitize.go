// Package sanitize holds the bluemonday policies applied to user-authored
// design text. Labels are reduced to plain text; descriptions keep a small set
// of inline formatting elements.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce        sync.Once
	labelPolicy       *bluemonday.Policy
	descriptionPolicy *bluemonday.Policy
)

// Label returns raw as plain text: entities decoded, tags removed. The result
// is a fixed point, so Label(Label(s)) == Label(s).
func Label(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	labels, _ := policies()
	// every pass that changes the text shortens it, so len(raw) bounds the loop
	for i := 0; i <= len(raw); i++ {
		next := strings.TrimSpace(html.UnescapeString(labels.Sanitize(html.UnescapeString(text))))
		if next == text {
			break
		}
		text = next
	}
	return text
}

// Description returns raw limited to inline formatting markup and links. The
// output is safe to emit unescaped.
func Description(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	_, descriptions := policies()
	return strings.TrimSpace(descriptions.Sanitize(trimmed))
}

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()

		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br", "small")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		descriptionPolicy = policy
	})
	return labelPolicy, descriptionPolicy
}
