package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/webcollage/goquery"
	"github.com/stretchr/testify/assert"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves anchors and images against the base URL", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/foo">x</a><img src="pic.png">`

		links, _ := goquery.NewLinkExtractor().ExtractLinks(html, "http://example.com/dir/")

		assert.ElementsMatch(t, []string{
			"http://example.com/foo",
			"http://example.com/dir/pic.png",
		}, links)
	})

	t.Run("extracts frame sources", func(t *testing.T) {
		t.Parallel()

		html := `<html><frameset><frame src="menu.html"><frame src="https://other.example.org/main.html"></frameset></html>`

		links, _ := goquery.NewLinkExtractor().ExtractLinks(html, "http://example.com/")

		assert.Equal(t, []string{
			"http://example.com/menu.html",
			"https://other.example.org/main.html",
		}, links)
	})

	t.Run("matches tag and attribute names case-insensitively", func(t *testing.T) {
		t.Parallel()

		html := `<A HREF="Page.html">x</A><IMG SRC='Logo.GIF'>`

		links, _ := goquery.NewLinkExtractor().ExtractLinks(html, "http://example.com/")

		assert.Equal(t, []string{
			"http://example.com/Page.html",
			"http://example.com/Logo.GIF",
		}, links)
	})

	t.Run("discards candidates with fragments", func(t *testing.T) {
		t.Parallel()

		html := `<a href="page.html#section">x</a><a href="#top">top</a><img src="a.png#x">`

		links, _ := goquery.NewLinkExtractor().ExtractLinks(html, "http://example.com/")

		assert.Empty(t, links)
	})

	t.Run("discards non-http schemes", func(t *testing.T) {
		t.Parallel()

		html := `<a href="mailto:a@b.com">x</a>
<a href="javascript:void(0)">y</a>
<a href="ftp://example.com/file">z</a>
<img src="data:image/png;base64,AAAA">`

		links, _ := goquery.NewLinkExtractor().ExtractLinks(html, "http://example.com/")

		assert.Empty(t, links)
	})

	t.Run("keeps absolute http and https links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="HTTPS://Example.org/a">a</a><a href="http://example.net/b?q=1">b</a>`

		links, _ := goquery.NewLinkExtractor().ExtractLinks(html, "http://example.com/")

		assert.Equal(t, []string{"https://Example.org/a", "http://example.net/b?q=1"}, links)
	})

	t.Run("resolves protocol-relative links with the base scheme", func(t *testing.T) {
		t.Parallel()

		html := `<img src="//cdn.example.com/i.jpg">`

		links, _ := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")

		assert.Equal(t, []string{"https://cdn.example.com/i.jpg"}, links)
	})

	t.Run("skips malformed and empty candidates", func(t *testing.T) {
		t.Parallel()

		html := `<a href="http://[::1">bad</a><a href="">empty</a><a>none</a><a href="ok.html">ok</a>`

		links, _ := goquery.NewLinkExtractor().ExtractLinks(html, "http://example.com/")

		assert.Equal(t, []string{"http://example.com/ok.html"}, links)
	})

	t.Run("returns nothing for an unparseable base URL", func(t *testing.T) {
		t.Parallel()

		links, lines := goquery.NewLinkExtractor().ExtractLinks(`<a href="x">x</a>`, "http://[::1")

		assert.Empty(t, links)
		assert.Equal(t, 1, lines)
	})

	t.Run("omits duplicates within a page", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/a">1</a><a href="http://example.com/a">2</a><img src="/a">`

		links, _ := goquery.NewLinkExtractor().ExtractLinks(html, "http://example.com/")

		assert.Equal(t, []string{"http://example.com/a"}, links)
	})

	t.Run("gives the same links line by line as for the whole document", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			`<html><body>`,
			`<a href="one.html">1</a> <img src="/img/two.png">`,
			`<p>text</p><a href='three.html'>3</a>`,
			`</body></html>`,
		}
		e := goquery.NewLinkExtractor()
		base := "http://example.com/docs/"

		var perLine []string
		for _, line := range lines {
			links, n := e.ExtractLinks(line, base)
			assert.Equal(t, 1, n)
			perLine = append(perLine, links...)
		}
		whole, n := e.ExtractLinks(strings.Join(lines, "\n"), base)

		assert.Equal(t, 4, n)
		assert.Equal(t, perLine, whole)
	})
}

func TestLinkExtractor_line_count(t *testing.T) {
	t.Parallel()

	e := goquery.NewLinkExtractor()

	tests := []struct {
		html string
		want int
	}{
		{"", 0},
		{"<p>one</p>", 1},
		{"<p>one</p>\n", 1},
		{"a\nb\nc", 3},
		{"a\n\nb\n", 3},
	}
	for _, tt := range tests {
		_, n := e.ExtractLinks(tt.html, "http://example.com/")
		assert.Equal(t, tt.want, n, "html %q", tt.html)
	}
}
