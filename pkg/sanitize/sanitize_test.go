package sanitize_test

import (
	"testing"

	"github.com/goliatone/go-formdesign/pkg/sanitize"
)

func TestLabel(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "  Email ", want: "Email"},
		{name: "ampersand", raw: "Terms & conditions", want: "Terms & conditions"},
		{name: "entity", raw: "Terms &amp; conditions", want: "Terms & conditions"},
		{name: "tags", raw: "Plain <b>bold</b>", want: "Plain bold"},
		{name: "script", raw: "Email <script>alert(1)</script>", want: "Email"},
		{name: "escaped tag", raw: "Role &lt;admin&gt;", want: "Role"},
		{name: "double escaped", raw: "a &amp;lt;b&amp;gt; c", want: "a  c"},
		{name: "empty", raw: "   ", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitize.Label(tc.raw)
			if got != tc.want {
				t.Fatalf("Label(%q) = %q, want %q", tc.raw, got, tc.want)
			}
			if again := sanitize.Label(got); again != got {
				t.Fatalf("Label is not stable: %q -> %q", got, again)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "inline markup", raw: "Used for <em>tax</em>", want: "Used for <em>tax</em>"},
		{name: "image", raw: "<img src=x onerror=alert(1)>", want: ""},
		{name: "entity", raw: "x & y", want: "x &amp; y"},
		{name: "link", raw: `<a href="https://example.com">docs</a>`, want: `<a href="https://example.com" rel="nofollow">docs</a>`},
		{name: "javascript link", raw: `<a href="javascript:alert(1)">docs</a>`, want: "docs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitize.Description(tc.raw)
			if got != tc.want {
				t.Fatalf("Description(%q) = %q, want %q", tc.raw, got, tc.want)
			}
			if again := sanitize.Description(got); again != got {
				t.Fatalf("Description is not stable: %q -> %q", got, again)
			}
		})
	}
}
