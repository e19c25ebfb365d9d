package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/resumekit"
)

// Run executes the sanitize command.
func (c *SanitizeCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.File)
	if err != nil {
		return err
	}

	doc := deps.Sanitizer.Sanitize(content)
	for _, b := range doc.Blocked {
		target := b.URL
		if target == "" {
			target = b.Tag
		}
		fmt.Fprintf(deps.Stderr, "blocked: %s %q (%s)\n", b.Kind, target, b.Reason)
	}

	html, err := deps.Markup.Render(doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resumekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, html)
	return nil
}

// readInput reads path, or stdin when path is "-".
func readInput(deps *Dependencies, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" || path == "" {
		b, err = io.ReadAll(deps.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return "", err
	}
	return string(b), nil
}
