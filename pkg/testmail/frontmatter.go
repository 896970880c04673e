package testmail

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of a template file.
type Frontmatter struct {
	Subject string   `yaml:"subject"`
	Headers []string `yaml:"headers"`
}

// Document is a template file split into its frontmatter and markdown body.
type Document struct {
	Meta Frontmatter
	Body string
}

var delimiter = []byte("---")

// Parse splits content on the "---" delimiters and decodes the frontmatter.
// Content without a leading delimiter is all body.
func Parse(content []byte) (*Document, error) {
	if !bytes.HasPrefix(content, delimiter) {
		return &Document{Body: string(content)}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: nothing after opening delimiter", ErrInvalidFrontmatter)
	}

	end := bytes.Index(rest, delimiter)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	doc := &Document{}
	if head := bytes.TrimSpace(rest[:end]); len(head) > 0 {
		if err := yaml.Unmarshal(head, &doc.Meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	body := rest[end+len(delimiter):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))
	doc.Body = string(body)

	return doc, nil
}
