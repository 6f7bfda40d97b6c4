package export

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/muesli/termenv"

	"github.com/cj3636/gblame/internal/blame"
	"github.com/cj3636/gblame/internal/gradient"
)

// Format represents the desired export format.
type Format string

const (
	// FormatHTML emits an HTML document for the annotated listing.
	FormatHTML Format = "html"
	// FormatMarkdown emits a Markdown table of annotations and source.
	FormatMarkdown Format = "markdown"
	// FormatANSI emits an ANSI-colored annotation strip beside the source.
	FormatANSI Format = "ansi"
)

// Options control how an annotated listing is exported.
type Options struct {
	// Title will be shown in HTML/Markdown outputs when provided.
	Title string
	// ShowLineNumbers determines whether line numbers are included.
	ShowLineNumbers bool
}

// Render returns the annotated listing in the requested format. The mapper
// supplies the per-bucket gradient colors.
func Render(annotations []blame.Annotation, mapper *gradient.Mapper, format Format, opts Options) (string, error) {
	if mapper == nil {
		return "", errors.New("gradient mapper is nil")
	}

	switch strings.ToLower(string(format)) {
	case string(FormatHTML):
		return renderHTML(annotations, mapper, opts), nil
	case string(FormatMarkdown), "md":
		return renderMarkdown(annotations, opts), nil
	case string(FormatANSI), "text":
		return renderANSI(annotations, mapper, opts), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func renderHTML(annotations []blame.Annotation, mapper *gradient.Mapper, opts Options) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	b.WriteString("<style>body{background:#0f111a;color:#e5e7eb;font-family:Menlo,Consolas,monospace;}" +
		"pre{white-space:pre-wrap;word-wrap:break-word;}" +
		".blame{display:inline-block;min-width:28ch;margin-right:12px;color:#0f111a;}" +
		".uncommitted{display:inline-block;min-width:28ch;margin-right:12px;color:#9ca3af;}" +
		".lineno{color:#9ca3af;margin-right:12px;}" +
		"h1{font-size:18px;margin-bottom:12px;}" +
		"</style></head><body>")

	title := opts.Title
	if title == "" {
		title = "Blame annotations"
	}
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n<pre>", html.EscapeString(title)))

	for _, a := range annotations {
		label := html.EscapeString(a.Label())
		content := html.EscapeString(a.Content)

		strip := fmt.Sprintf("<span class=\"uncommitted\">%s</span>", label)
		if a.Bucket > 0 {
			strip = fmt.Sprintf("<span class=\"blame\" style=\"background:%s\">%s</span>",
				string(mapper.Color(a.Bucket)), label)
		}

		if opts.ShowLineNumbers {
			fmt.Fprintf(&b, "<div>%s%s%s</div>\n", strip, renderLineNoHTML(a.LineIndex+1), content)
		} else {
			fmt.Fprintf(&b, "<div>%s%s</div>\n", strip, content)
		}
	}

	b.WriteString("</pre></body></html>")
	return b.String()
}

func renderLineNoHTML(no int) string {
	return fmt.Sprintf("<span class=\"lineno\">%5d</span>", no)
}

func renderMarkdown(annotations []blame.Annotation, opts Options) string {
	var b strings.Builder

	if opts.Title != "" {
		b.WriteString("# ")
		b.WriteString(opts.Title)
		b.WriteString("\n\n")
	}

	b.WriteString("```\n")
	for _, a := range annotations {
		if opts.ShowLineNumbers {
			fmt.Fprintf(&b, "%-40s │ %5d %s\n", a.Label(), a.LineIndex+1, a.Content)
		} else {
			fmt.Fprintf(&b, "%-40s │ %s\n", a.Label(), a.Content)
		}
	}
	b.WriteString("```\n")
	return b.String()
}

func renderANSI(annotations []blame.Annotation, mapper *gradient.Mapper, opts Options) string {
	var b strings.Builder
	if opts.Title != "" {
		fmt.Fprintf(&b, "%s\n\n", opts.Title)
	}

	for _, a := range annotations {
		strip := termenv.String(fmt.Sprintf("%-40s", a.Label()))
		if a.Bucket > 0 {
			strip = strip.Background(termenv.RGBColor(string(mapper.Color(a.Bucket))))
		} else {
			strip = strip.Faint()
		}

		if opts.ShowLineNumbers {
			lineNo := termenv.String(fmt.Sprintf("%5d", a.LineIndex+1)).Faint()
			fmt.Fprintf(&b, "%s │ %s %s\n", strip, lineNo, a.Content)
		} else {
			fmt.Fprintf(&b, "%s │ %s\n", strip, a.Content)
		}
	}
	return b.String()
}
