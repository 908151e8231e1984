package users

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Codec decodes response bodies into typed values.
type Codec interface {
	Decode(body []byte, v any) error
}

// JSONCodec decodes JSON bodies.
type JSONCodec struct{}

// Decode unmarshals body into v.
func (JSONCodec) Decode(body []byte, v any) error {
	return json.Unmarshal(body, v)
}

const maxSummaryLen = 256

// bodySummary returns a short human-readable description of a response body.
// HTML pages (proxy and gateway error pages) are reduced to their title.
func bodySummary(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if looksLikeHTML(s) {
		if title := htmlTitle(body); title != "" {
			return title
		}
	}
	if len(s) > maxSummaryLen {
		return s[:maxSummaryLen] + "..."
	}
	return s
}

func looksLikeHTML(s string) bool {
	prefix := strings.ToLower(s)
	if len(prefix) > 64 {
		prefix = prefix[:64]
	}
	return strings.HasPrefix(prefix, "<!doctype html") ||
		strings.HasPrefix(prefix, "<html") ||
		strings.HasPrefix(prefix, "<head") ||
		strings.HasPrefix(prefix, "<body")
}

func htmlTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return firstNonEmpty(
		doc.Find("title").First().Text(),
		doc.Find("h1").First().Text(),
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
