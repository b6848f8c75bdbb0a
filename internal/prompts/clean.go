package prompts

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

func policy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// CleanDescription strips markup from a user-supplied description so pasted
// HTML never reaches the completion service. Text without HTML elements is
// only trimmed: angle-bracketed addresses and comparisons like a<b are
// description content, not tags.
func CleanDescription(text string) string {
	if !containsMarkup(text) {
		return strings.TrimSpace(text)
	}
	cleaned := policy().Sanitize(text)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

var voidElements = map[atom.Atom]bool{
	atom.Br:    true,
	atom.Hr:    true,
	atom.Img:   true,
	atom.Input: true,
	atom.Meta:  true,
	atom.Link:  true,
	atom.Wbr:   true,
}

// containsMarkup reports whether text holds an HTML comment, a void element,
// or a known element that is both opened and closed.
func containsMarkup(text string) bool {
	if !strings.Contains(text, "<") {
		return false
	}
	open := make(map[atom.Atom]bool)
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.CommentToken:
			if strings.HasPrefix(string(z.Raw()), "<!--") {
				return true
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom == 0 {
				continue
			}
			if voidElements[tok.DataAtom] {
				return true
			}
			open[tok.DataAtom] = true
		case html.EndTagToken:
			if tok := z.Token(); tok.DataAtom != 0 && open[tok.DataAtom] {
				return true
			}
		}
	}
}
