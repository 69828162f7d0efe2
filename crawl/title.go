package crawl

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTitle is stored when a page has no usable <title> element, so the
// user never has to type one in manually.
const DefaultTitle = "untitled page"

// ExtractTitle returns the page's <title> text with whitespace collapsed,
// or DefaultTitle when the element is missing or empty.
func ExtractTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return DefaultTitle
	}

	title := strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
	if title == "" {
		return DefaultTitle
	}
	return title
}

// validUTF8 returns the body as a string safe for TEXT storage, replacing
// any malformed byte sequences.
func validUTF8(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	return strings.ToValidUTF8(string(body), string(utf8.RuneError))
}
