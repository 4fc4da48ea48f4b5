// ABOUTME: Deterministic markdown-subset renderer producing a sanitized HTML fragment.
// ABOUTME: An ordered pipeline of rewrite passes; escaping always runs first.

package markdown

import (
	"regexp"
	"strings"
)

// A pass is one named rewrite step. Each pass's output is the next pass's
// input, so the pipeline order is a contract, not incidental chaining: later
// passes assume earlier escaping and markup already happened.
type pass struct {
	name string
	fn   func(string) string
}

// pipeline is the full rewrite sequence. escape must stay first: every later
// pass synthesizes markup and relies on user-authored angle brackets, quotes,
// and ampersands already being entities.
var pipeline = []pass{
	{"escape", escapeHTML},
	{"headings", convertHeadings},
	{"fences", convertFencedCode},
	{"inline-code", convertInlineCode},
	{"emphasis", convertEmphasis},
	{"list-items", convertListItems},
	{"list-wrap", wrapListItems},
	{"line-breaks", convertLineBreaks},
	{"cleanup", cleanupBreaks},
}

// Render converts a markdown-subset text block into a sanitized HTML
// fragment. Pure function: no state, no errors. Malformed input degrades to
// imperfectly formatted (but still escaped) output, never to raw markup.
func Render(text string) string {
	out := text
	for _, p := range pipeline {
		out = p.fn(out)
	}
	return out
}

// htmlEscaper rewrites the five HTML-significant characters in one scan, so
// emitted entities are not themselves re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeHTML neutralizes user-authored markup. Precondition: raw input text.
// Postcondition: the string contains no literal & < > " ' outside entities.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var (
	h4Re = regexp.MustCompile(`(?m)^### (.*)$`)
	h3Re = regexp.MustCompile(`(?m)^## (.*)$`)
)

// convertHeadings turns "###"/"##" prefixed lines into h4/h3 elements.
// The deeper prefix converts first so "## " never claims a "### " line.
func convertHeadings(s string) string {
	s = h4Re.ReplaceAllString(s, "<h4>$1</h4>")
	return h3Re.ReplaceAllString(s, "<h3>$1</h3>")
}

// fenceRe consumes a whole fenced block across newlines, lazily up to the
// closing fence. An unterminated fence does not match and falls through as
// literal (already escaped) text.
var fenceRe = regexp.MustCompile("(?s)```(\\w*)\\n?(.*?)```")

// convertFencedCode turns triple-backtick blocks into pre/code elements
// carrying the optional language token as a class.
func convertFencedCode(s string) string {
	return fenceRe.ReplaceAllStringFunc(s, func(block string) string {
		parts := fenceRe.FindStringSubmatch(block)
		lang, body := parts[1], parts[2]
		if lang == "" {
			return "<pre><code>" + body + "</code></pre>"
		}
		return `<pre><code class="language-` + lang + `">` + body + "</code></pre>"
	})
}

var inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")

// convertInlineCode turns single-backtick spans into code elements. Runs
// after the fence pass so fence bodies are already out of reach.
func convertInlineCode(s string) string {
	return inlineCodeRe.ReplaceAllString(s, "<code>$1</code>")
}

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.+?)\*`)
)

// convertEmphasis rewrites **bold** then *italic*. Double-asterisk must be
// consumed first or bold reads as nested italics.
func convertEmphasis(s string) string {
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	return italicRe.ReplaceAllString(s, "<em>$1</em>")
}

var (
	orderedItemRe   = regexp.MustCompile(`(?m)^\d+\. (.*)$`)
	unorderedItemRe = regexp.MustCompile(`(?m)^- (.*)$`)
)

// convertListItems turns "N. text" lines, then "- text" lines, into list
// items. Marker type is not preserved; wrapping happens in the next pass.
func convertListItems(s string) string {
	s = orderedItemRe.ReplaceAllString(s, "<li>$1</li>")
	return unorderedItemRe.ReplaceAllString(s, "<li>$1</li>")
}

var listRunRe = regexp.MustCompile(`(?m)^(?:<li>.*</li>\n?)+`)

// wrapListItems coalesces contiguous list-item lines into a single ul
// wrapper. Grouping is by line adjacency, not by original marker type, so
// ordered and unordered runs wrap identically. A trailing newline stays
// outside the wrapper for the line-break pass to handle.
func wrapListItems(s string) string {
	return listRunRe.ReplaceAllStringFunc(s, func(run string) string {
		trailing := ""
		if strings.HasSuffix(run, "\n") {
			run = strings.TrimSuffix(run, "\n")
			trailing = "\n"
		}
		return "<ul>" + run + "</ul>" + trailing
	})
}

var preBlockRe = regexp.MustCompile(`(?s)<pre>.*?</pre>`)

// convertLineBreaks makes every remaining newline an explicit break element.
// Newlines inside pre blocks were already consumed by the fence pass and
// stay literal. Applied naively otherwise; the cleanup pass repairs the
// breaks this leaves around block boundaries.
func convertLineBreaks(s string) string {
	var out strings.Builder
	last := 0
	for _, loc := range preBlockRe.FindAllStringIndex(s, -1) {
		out.WriteString(strings.ReplaceAll(s[last:loc[0]], "\n", "<br>"))
		out.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	out.WriteString(strings.ReplaceAll(s[last:], "\n", "<br>"))
	return out.String()
}

var cleanupRes = []*regexp.Regexp{
	regexp.MustCompile(`(?:<br>)+(<li>)`),
	regexp.MustCompile(`(</li>)(?:<br>)+`),
	regexp.MustCompile(`(?:<br>)+(</ul>)`),
	regexp.MustCompile(`(?:<br>)+(<ul>|<h3>|<h4>)`),
	regexp.MustCompile(`(</ul>|</h3>|</h4>)(?:<br>)+`),
}

// cleanupBreaks removes break elements that ended up inside list wrappers or
// adjacent to heading/list boundaries, where the block elements already
// break the flow. Each rule strips a whole run of breaks, so the pass is
// idempotent: a second application finds nothing left to remove.
func cleanupBreaks(s string) string {
	for _, re := range cleanupRes {
		s = re.ReplaceAllString(s, "$1")
	}
	return s
}
