// Package authoring implements the text transforms behind the admin editor's
// formatting buttons. Offsets are UTF-16 code unit positions, the way a
// textarea reports selectionStart and selectionEnd.
package authoring

import (
	"html"
	"strings"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// Placeholder is wrapped when nothing is selected.
const Placeholder = "Text Here"

const imageClass = "rounded-2xl my-6 w-full shadow-lg"

var ErrUnknownTag = errors.New("unknown tag")

// Tag names a formatting button.
type Tag string

const (
	TagHeading   Tag = "H3"
	TagItalic    Tag = "Italic"
	TagList      Tag = "List"
	TagQuote     Tag = "Quote"
	TagParagraph Tag = "Paragraph"
)

// Tags in toolbar order.
var Tags = []Tag{TagHeading, TagItalic, TagList, TagQuote, TagParagraph}

// Wrap renders the fragment for s. The list fragment is fixed and ignores s.
func (t Tag) Wrap(s string) (string, error) {
	switch t {
	case TagHeading:
		return "<h3>" + s + "</h3>", nil
	case TagItalic:
		return "<i>" + s + "</i>", nil
	case TagList:
		return "<ul>\n  <li>Point 1</li>\n  <li>Point 2</li>\n</ul>", nil
	case TagQuote:
		return "<blockquote>" + s + "</blockquote>", nil
	case TagParagraph:
		return "<p>\n  " + s + "\n</p>", nil
	}
	return "", errors.Wrapf(ErrUnknownTag, "%q", string(t))
}

// InsertTag replaces text[start:end] with the tag's fragment wrapped around
// the selection, or around Placeholder when the selection is empty. It
// returns the new text and the cursor position just after the fragment.
func InsertTag(text string, start, end int, tag Tag) (string, int, error) {
	units := encode(text)
	start, end = clampSelection(units, start, end)

	selected := decode(units[start:end])
	if selected == "" {
		selected = Placeholder
	}

	fragment, err := tag.Wrap(selected)
	if err != nil {
		return text, start, err
	}

	out := decode(units[:start]) + fragment + decode(units[end:])
	return out, start + len(encode(fragment)), nil
}

// ImageSnippet is the markup inserted for one uploaded body image.
func ImageSnippet(url string) string {
	return "\n<img src=\"" + html.EscapeString(url) + "\" alt=\"blog image\" class=\"" + imageClass + "\" />\n"
}

// InsertImages inserts one <img> per url at cursor. Any selection is left in
// place: images are inserted, never wrapped.
func InsertImages(text string, cursor int, urls []string) (string, int) {
	units := encode(text)
	cursor, _ = clampSelection(units, cursor, cursor)
	if len(urls) == 0 {
		return text, cursor
	}

	var b strings.Builder
	for _, url := range urls {
		b.WriteString(ImageSnippet(url))
	}
	block := b.String()

	out := decode(units[:cursor]) + block + decode(units[cursor:])
	return out, cursor + len(encode(block))
}

// clampSelection bounds both offsets to the text, orders them and moves an
// offset that falls inside a surrogate pair to the start of that pair.
func clampSelection(units []uint16, start, end int) (int, int) {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > len(units) {
			return len(units)
		}
		if v > 0 && v < len(units) && isHighSurrogate(units[v-1]) && isLowSurrogate(units[v]) {
			v--
		}
		return v
	}
	start, end = clamp(start), clamp(end)
	if end < start {
		start, end = end, start
	}
	return start, end
}

func isHighSurrogate(u uint16) bool {
	return u >= 0xd800 && u < 0xdc00
}

func isLowSurrogate(u uint16) bool {
	return u >= 0xdc00 && u < 0xe000
}

func encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func decode(units []uint16) string {
	return string(utf16.Decode(units))
}
