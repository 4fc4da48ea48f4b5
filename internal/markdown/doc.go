// Package markdown renders a markdown subset to a sanitized HTML fragment.
//
// # Overview
//
// Render is a pure function built as an explicit, ordered list of named
// rewrite passes over an immutable string. The order is a tested contract:
// each pass's output is the next pass's input, and later passes assume the
// escaping and markup of earlier ones.
//
// # Passes
//
//  1. escape: the five HTML-significant characters become entities. Always
//     first - markup synthesized later must never wrap unescaped input.
//  2. headings: "###"/"##" lines to h4/h3.
//  3. fences: triple-backtick blocks to pre/code with a language class.
//  4. inline-code: single-backtick spans to code.
//  5. emphasis: **bold** before *italic*.
//  6. list-items: "N. text" and "- text" lines to list items.
//  7. list-wrap: contiguous item lines coalesce into one ul, regardless of
//     the original marker type.
//  8. line-breaks: remaining newlines to br (pre bodies excluded).
//  9. cleanup: idempotent removal of br runs at heading/list boundaries.
//
// # Failure policy
//
// There is no error path. Unterminated fences and other malformed input
// fall through as literal escaped text; the worst case is imperfect
// formatting, never a panic or unescaped injection.
package markdown
