// Package markup renders the inline markup allowed in footer text.
package markup

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	policy = newInlinePolicy()

	linkTarget = regexp.MustCompile(`^_(blank|self)$`)
	linkRel    = regexp.MustCompile(`^[a-z]+( [a-z]+)*$`)
)

func newInlinePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("strong", "em", "b", "i", "code", "br", "span", "del")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(linkTarget).OnElements("a")
	p.AllowAttrs("rel").Matching(linkRel).OnElements("a")
	p.AllowAttrs("class").OnElements("span", "code")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnFullyQualifiedLinks(false)
	p.AddTargetBlankToFullyQualifiedLinks(false)
	return p
}

// Inline renders src as inline Markdown and returns sanitized HTML without a
// wrapping paragraph. Raw inline HTML in src is kept if the policy allows it.
func Inline(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render inline markup: %w", err)
	}
	out := strings.TrimSpace(buf.String())
	if strings.Count(out, "<p>") == 1 && strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return Sanitize(out), nil
}

// Sanitize strips everything the inline policy does not allow.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// Stripped reports the elements and attributes in the rendered form of src
// that the sanitizer removes, as "tag" or "tag[attr]", sorted. A single
// wrapping paragraph is dropped by Inline and not reported; several
// paragraphs are, since they would run together.
func Stripped(src string) ([]string, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("render inline markup: %w", err)
	}
	rendered := buf.String()
	before := signature(rendered)
	after := signature(Sanitize(rendered))

	var lost []string
	for k, n := range before {
		if k == "p" && n == 1 {
			continue
		}
		if after[k] < n {
			lost = append(lost, k)
		}
	}
	sort.Strings(lost)
	return lost, nil
}

// signature counts start tags and their attributes.
func signature(s string) map[string]int {
	counts := make(map[string]int)
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return counts
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			counts[tok.Data]++
			for _, a := range tok.Attr {
				counts[tok.Data+"["+a.Key+"]"]++
			}
		}
	}
}
