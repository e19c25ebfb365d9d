package main

import (
	"fmt"

	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.File)
	if err != nil {
		return err
	}

	if c.Sanitized {
		content, err = deps.Exporter.Export(content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", resumekit.ErrorMessage(err))
			return err
		}
	}

	path, err := fs.NewWriter(c.Output).WriteMarkdown(c.Name, content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resumekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
