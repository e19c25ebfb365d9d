package main

import (
	"fmt"

	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/fs"
)

// Run executes the compose command.
func (c *ComposeCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.File)
	if err != nil {
		return err
	}

	doc, err := deps.Composer.Compose(deps.Ctx, content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resumekit.ErrorMessage(err))
		return err
	}

	path, err := fs.NewWriter(c.Output).WritePDF(doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resumekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s (%d page(s))\n", path, doc.PageCount)

	if !c.Verify {
		return nil
	}
	splits, err := deps.Verifier.Verify(content, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resumekit.ErrorMessage(err))
		return err
	}
	for _, s := range splits {
		fmt.Fprintf(deps.Stderr, "split: [%s] %s\n", s.Section, s.Text)
	}
	if len(splits) > 0 {
		return resumekit.Errorf(resumekit.EINTERNAL, "%d bullet(s) split across pages", len(splits))
	}
	fmt.Fprintln(deps.Stdout, "All bullets kept whole.")
	return nil
}
