package testmail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*
var templates embed.FS

const layoutName = "layout.html"

var (
	md     = goldmark.New(goldmark.WithRendererOptions(html.WithXHTML()))
	layout = template.Must(template.ParseFS(templates, path.Join("templates", layoutName)))
)

// Rendered is a template ready to be sent.
type Rendered struct {
	Subject string
	Headers []string
	Text    string // Executed markdown, before HTML conversion
	HTML    string // Text converted to HTML and wrapped in the layout
}

// Render executes the named embedded template with data.
func Render(name string, data any) (*Rendered, error) {
	return render(templates, name, data)
}

func render(fsys fs.FS, name string, data any) (*Rendered, error) {
	content, err := fs.ReadFile(fsys, path.Join("templates", name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	doc, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	subject, err := execute(name+":subject", doc.Meta.Subject, data)
	if err != nil {
		return nil, err
	}
	text, err := execute(name, doc.Body, data)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := md.Convert([]byte(text), &body); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var out bytes.Buffer
	if err := layout.Execute(&out, map[string]any{
		"Subject": subject,
		"Content": template.HTML(body.String()),
	}); err != nil {
		return nil, fmt.Errorf("%w: %s: layout: %v", ErrRenderFailed, name, err)
	}

	return &Rendered{
		Subject: subject,
		Headers: doc.Meta.Headers,
		Text:    strings.TrimRight(text, "\r\n"),
		HTML:    out.String(),
	}, nil
}

func execute(name, src string, data any) (string, error) {
	tmpl, err := texttemplate.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	return buf.String(), nil
}
