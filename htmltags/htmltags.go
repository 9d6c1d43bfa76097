// Package htmltags is the library's built-in tag bundle: a reasonable
// default set of classic forum BBCode tags rendering to HTML. A host
// wanting a different vocabulary copies Default() and edits the map;
// nothing in the render engine depends on these specific names.
package htmltags

import (
	"fmt"
	"strings"

	"github.com/gobbcode/bbcode"
	"github.com/gobbcode/bbcode/textproc"
)

// Default returns the built-in tag table: b, i, u, s, url (both forms),
// img, quote, code, noparse, size, color, email, list/* , and the
// short-tag wikipedia example.
func Default() map[string]bbcode.Definition {
	return map[string]bbcode.Definition{
		"b": {Output: bbcode.Template(`<b>%s</b>`)},
		"i": {Output: bbcode.Template(`<i>%s</i>`)},
		"u": {Output: bbcode.Template(`<u>%s</u>`)},
		"s": {Output: bbcode.Template(`<s>%s</s>`)},

		// [url]http://example.com[/url] or [url=http://example.com]text[/url]:
		// %A takes the tag's fallback attribute if present, else its content,
		// so one template serves both forms. The url: prefix forces class=url
		// regardless of the Class field below.
		"url": {
			Class:  bbcode.ClassURL,
			Output: bbcode.Template(`url:<a href="%{link}A" rel="nofollow">%s</a>`),
		},

		// [wikipedia://Go_(programming_language)|the Go page] — short form
		// (the classic [wikipedia]...[/wikipedia] form is accepted too); the
		// title is optional and defaults to the article name.
		"wikipedia": {
			Class:  bbcode.ClassURL,
			Short:  true,
			Output: bbcode.Template(`url:<a href="https://en.wikipedia.org/wiki/%{uri}A" rel="nofollow">%s</a>`),
		},

		// [img]http://example.com/pic.png[/img]: content is the raw URL, not
		// BBCode, so it's rendered with a Callback rather than the %s
		// directive, which would otherwise HTML-double-escape or re-parse
		// it. The "link" escape (not "uri", which percent-encodes ":" and
		// "/") both validates it looks like a real URL and HTML-escapes it.
		"img": {
			ParseContent: bbcode.Bool(false),
			Output: bbcode.Callback(func(ctx *bbcode.Context) string {
				src := ctx.Parser.Escape("link", ctx.Tag.Content())
				return fmt.Sprintf(`<img src="%s" alt="">`, src)
			}),
		},

		// [quote] or [quote=Author]...[/quote]. A callback's content
		// defaults to raw/unparsed, but quoted text is expected to carry
		// its own nested formatting, so ParseContent is set explicitly.
		"quote": {
			Class:        bbcode.ClassBlock,
			ParseContent: bbcode.Bool(true),
			Output: bbcode.Callback(func(ctx *bbcode.Context) string {
				if ctx.Fallback == "" {
					return fmt.Sprintf(`<blockquote><p class="quote-heading">Quote:</p>%s</blockquote>`, ctx.Content)
				}
				author := ctx.Parser.Escape("html", ctx.Fallback)
				return fmt.Sprintf(`<blockquote><p class="quote-heading">%s wrote:</p>%s</blockquote>`, author, ctx.Content)
			}),
		},

		// [code]...[/code]: verbatim, HTML-escaped only, never re-parsed.
		"code": {
			ParseContent: bbcode.Bool(false),
			Output:       bbcode.Template(`<pre class="bbcode-code">%{html}s</pre>`),
		},

		// [noparse]...[/noparse]: like [code], its content is never scanned
		// for tags, just HTML-escaped verbatim inside a <pre>.
		"noparse": {
			ParseContent: bbcode.Bool(false),
			Output:       bbcode.Template(`<pre>%{html}s</pre>`),
		},

		// [size=7]big[/size] — a CSS/HTML legacy font-size keyword (1-7).
		"size": {
			Output: bbcode.Template(`<font size="%{num}a">%s</font>`),
		},

		"color": {
			Output: bbcode.Template(`<span style="color:%{htmlcolor}a">%s</span>`),
		},

		// [email]user@example.com[/email] or [email=user@example.com]text[/email].
		// ctx.Content (the link text) may itself carry nested formatting,
		// so ParseContent is set explicitly rather than left at the
		// callback default of raw/unparsed.
		"email": {
			Class:        bbcode.ClassURL,
			ParseContent: bbcode.Bool(true),
			Output: bbcode.Callback(func(ctx *bbcode.Context) string {
				addr := ctx.Fallback
				if addr == "" {
					addr = ctx.Tag.Content()
				}
				escaped := ctx.Parser.Escape("email", addr)
				if escaped == "" {
					return ctx.Content
				}
				return fmt.Sprintf(`<a href="mailto:%s">%s</a>`, escaped, ctx.Content)
			}),
		},

		// [list] / [list=1] (ordered) / [*]item[/*] entry. Unlike most forum
		// dialects, this one requires an explicit "[/*]" close — this
		// package's nesting model has no "next sibling or enclosing close
		// implicitly ends me" rule, so "*" is scanned and closed like any
		// other classic tag rather than inventing a one-off closing
		// convention.
		"list": {
			Class:        bbcode.ClassBlock,
			ParseContent: bbcode.Bool(true),
			Output: bbcode.Callback(func(ctx *bbcode.Context) string {
				if ctx.Fallback != "" {
					return fmt.Sprintf(`<ol type="%s">%s</ol>`, ctx.Parser.Escape("html", ctx.Fallback), ctx.Content)
				}
				return fmt.Sprintf(`<ul>%s</ul>`, ctx.Content)
			}),
		},
		"*": {
			Class:        bbcode.ClassInline,
			ParseContent: bbcode.Bool(true),
			Output: bbcode.Callback(func(ctx *bbcode.Context) string {
				return fmt.Sprintf(`<li>%s</li>`, strings.TrimSpace(ctx.Content))
			}),
		},
	}
}

// DefaultOptions wraps Default into a ready-to-use Options: default
// attribute quoting, the URL finder and linebreak-to-<br> pass enabled,
// smileys left off since no icon set ships with this package.
func DefaultOptions() bbcode.Options {
	return bbcode.Options{
		Tags:       Default(),
		URLFinder:  &textproc.URLFinder{MaxLength: 60},
		Linebreaks: bbcode.Bool(true),
	}
}
