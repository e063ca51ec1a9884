package keypolicy

import "testing"

func TestNormalizeURL(t *testing.T) {
	canon := NormalizeURL(DefaultURLFlags)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"scheme and host case", "HTTP://Example.COM/a.jpg", "http://example.com/a.jpg"},
		{"default port", "http://example.com:80/a.jpg", "http://example.com/a.jpg"},
		{"trailing slash", "http://example.com/a/", "http://example.com/a"},
		{"dot segments", "http://example.com/a/./b/../c.jpg", "http://example.com/a/c.jpg"},
		{"already canonical", "http://example.com/a.jpg", "http://example.com/a.jpg"},
		{"unparseable passes through", "http://x/%zz", "http://x/%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canon(tt.in); got != tt.want {
				t.Errorf("NormalizeURL()(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := canon(tt.in); again != canon(tt.in) {
				t.Errorf("canonicalizer should be stable, got %q then %q", canon(tt.in), again)
			}
		})
	}
}

func TestChain(t *testing.T) {
	c := Chain(
		func(s string) string { return s + "a" },
		nil,
		func(s string) string { return s + "b" },
	)
	if got := c("x"); got != "xab" {
		t.Errorf("Chain()(%q) = %q, want %q", "x", got, "xab")
	}
	if got := Chain()("x"); got != "x" {
		t.Errorf("empty Chain()(%q) = %q", "x", got)
	}
}

func TestIdentity(t *testing.T) {
	if Identity("HTTP://X/") != "HTTP://X/" {
		t.Error("Identity should return its input")
	}
}
