// ABOUTME: Content processing for news bodies and update descriptions
// ABOUTME: Converts server HTML to Markdown and extracts plain text for notifications

package content

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// htmlTagPattern matches common HTML tags
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|code|pre|blockquote)[^>]*>`)

// IsHTML checks if content appears to be HTML
func IsHTML(content string) bool {
	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(content)
}

// ToMarkdown converts HTML content to Markdown.
// If the content doesn't appear to be HTML, returns it unchanged.
func ToMarkdown(content string) string {
	if content == "" {
		return content
	}
	if !IsHTML(content) {
		return content
	}

	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		// If conversion fails, return original content
		return content
	}
	return strings.TrimSpace(markdown)
}

// whitespacePattern collapses runs of whitespace left behind by stripped tags
var whitespacePattern = regexp.MustCompile(`\s+`)

// PlainText strips all markup from content, yielding a single-line string
// suitable for a notification body. Non-HTML content passes through with
// whitespace collapsed.
func PlainText(content string) string {
	if content == "" {
		return content
	}
	if !IsHTML(content) {
		return strings.TrimSpace(whitespacePattern.ReplaceAllString(content, " "))
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		// Script and style bodies are not content.
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(sb.String(), " "))
}
