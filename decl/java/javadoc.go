package java

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"golang.org/x/net/html"
)

// javadoc is a parsed documentation comment.
type javadoc struct {
	text   string
	params map[string]string
}

// docConverter turns Javadoc blocks into plain markdown descriptions.
type docConverter struct {
	converter *md.Converter
}

func newDocConverter() *docConverter {
	return &docConverter{converter: md.NewConverter("", true, nil)}
}

// parse strips the comment markers, splits off @param blocks, drops other block
// tags and converts embedded HTML to markdown.
func (c *docConverter) parse(comment string) javadoc {
	doc := javadoc{params: map[string]string{}}
	if comment == "" {
		return doc
	}
	body := strings.TrimSuffix(strings.TrimPrefix(comment, "/**"), "*/")

	var main []string
	var current *strings.Builder
	var currentParam string
	flush := func() {
		if current != nil && currentParam != "" {
			doc.params[currentParam] = c.toMarkdown(strings.TrimSpace(current.String()))
		}
		current, currentParam = nil, ""
	}
	inBlockTag := false
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if strings.HasPrefix(line, "@") {
			flush()
			inBlockTag = true
			fields := strings.Fields(line)
			if fields[0] == "@param" && len(fields) > 1 {
				currentParam = fields[1]
				current = &strings.Builder{}
				current.WriteString(strings.Join(fields[2:], " "))
			}
			continue
		}
		if inBlockTag {
			if current != nil && line != "" {
				current.WriteString(" " + line)
			}
			continue
		}
		main = append(main, line)
	}
	flush()
	doc.text = c.toMarkdown(strings.TrimSpace(strings.Join(main, "\n")))
	return doc
}

func (c *docConverter) toMarkdown(text string) string {
	text = inlineTags(text)
	if !containsMarkup(text) {
		return text
	}
	out, err := c.converter.ConvertString(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

// inlineTags replaces {@code x} and {@link x} with their content.
func inlineTags(text string) string {
	for {
		start := strings.Index(text, "{@")
		if start < 0 {
			return text
		}
		end := strings.Index(text[start:], "}")
		if end < 0 {
			return text
		}
		inner := strings.TrimSpace(text[start+2 : start+end])
		if i := strings.IndexAny(inner, " \t"); i >= 0 {
			inner = strings.TrimSpace(inner[i+1:])
		} else {
			inner = ""
		}
		text = text[:start] + inner + text[start+end+1:]
	}
}

// containsMarkup reports whether text holds at least one HTML element.
func containsMarkup(text string) bool {
	if !strings.Contains(text, "<") {
		return false
	}
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			return true
		}
	}
}
