package fingerprint

import (
	"strings"
	"testing"
)

// sha256 of zero bytes, the pinned empty-content identity
const emptySHA = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestBytes_StableAndWellFormed(t *testing.T) {
	t.Parallel()

	a := Bytes([]byte("hello"))
	b := Bytes([]byte("hello"))
	if a != b {
		t.Fatalf("same bytes produced different fingerprints: %s vs %s", a, b)
	}
	if !a.Valid() {
		t.Fatalf("fingerprint not well formed: %s", a)
	}
	if len(a) != HexLen {
		t.Fatalf("fingerprint length = %d, want %d", len(a), HexLen)
	}
	if c := Bytes([]byte("hello!")); c == a {
		t.Fatalf("different bytes produced identical fingerprints")
	}
}

func TestEmpty_PinnedDigest(t *testing.T) {
	t.Parallel()

	if Empty.String() != emptySHA {
		t.Fatalf("Empty = %s, want %s", Empty, emptySHA)
	}
	if Bytes(nil) != Bytes([]byte{}) {
		t.Fatalf("nil and zero-length bytes should share identity")
	}
}

func TestText_CanonicalEquivalence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b string
	}{
		{"whitespace runs", "hello   world", "hello world"},
		{"leading trailing", "  hello world\n", "hello world"},
		{"tabs and newlines", "hello\t\nworld", "hello world"},
		{"nfc composition", "café", "café"},
		{"zero width joiner", "he‍llo", "hello"},
		{"control bytes", "hel\x00lo", "hello"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if Text(c.a) != Text(c.b) {
				t.Fatalf("expected same identity for %q and %q", c.a, c.b)
			}
		})
	}
}

func TestText_DistinctContentStaysDistinct(t *testing.T) {
	t.Parallel()

	if Text("Breaking news") == Text("breaking news") {
		t.Fatalf("case must be identity significant")
	}
	if Text("hello world") == Text("hello  world!") {
		t.Fatalf("different content should differ")
	}
}

func TestText_EmptyAndBlankMapToEmpty(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "   ", "\n\t ", "\x00\x01"} {
		if got := Text(s); !got.IsEmpty() {
			t.Fatalf("Text(%q) = %s, want empty fingerprint", s, got)
		}
	}
}

func TestURL_Canonicalization(t *testing.T) {
	t.Parallel()

	same := [][2]string{
		{"https://Example.COM/path", "https://example.com/path"},
		{"https://example.com:443/path", "https://example.com/path"},
		{"http://example.com:80/a", "http://example.com/a"},
		{"https://example.com/a#frag", "https://example.com/a"},
		{"https://example.com", "https://example.com/"},
		{"  https://example.com/a  ", "https://example.com/a"},
	}
	for _, pair := range same {
		a, err := URL(pair[0])
		if err != nil {
			t.Fatalf("URL(%q) error: %v", pair[0], err)
		}
		b, err := URL(pair[1])
		if err != nil {
			t.Fatalf("URL(%q) error: %v", pair[1], err)
		}
		if a != b {
			t.Fatalf("expected same identity for %q and %q", pair[0], pair[1])
		}
	}

	// query order is preserved, not sorted
	a, _ := URL("https://example.com/x?a=1&b=2")
	b, _ := URL("https://example.com/x?b=2&a=1")
	if a == b {
		t.Fatalf("query order should be identity significant")
	}
}

func TestURL_Rejections(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"ftp://example.com/file",
		"example.com/no-scheme",
		"https://",
		"://broken",
	} {
		if _, err := URL(raw); err == nil {
			t.Fatalf("URL(%q) expected error", raw)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	f := Text("some content")
	got, err := Parse(strings.ToUpper(f.String()))
	if err != nil {
		t.Fatalf("Parse rejected uppercase digest: %v", err)
	}
	if got != f {
		t.Fatalf("Parse = %s, want %s", got, f)
	}

	for _, bad := range []string{"", "abc", strings.Repeat("g", HexLen), f.String() + "00"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("Parse(%q) expected error", bad)
		}
	}
}

func TestCanonicalText_Samples(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  a  b  ", "a b"},
		{"line\none", "line one"},
		{"café", "café"},
	}
	for _, c := range cases {
		if got := CanonicalText(c.in); got != c.want {
			t.Fatalf("CanonicalText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
