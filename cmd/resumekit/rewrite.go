package main

import (
	"fmt"

	"github.com/fwojciec/resumekit"
)

// Run executes the rewrite command.
func (c *RewriteCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.File)
	if err != nil {
		return err
	}

	out, err := deps.Rewriter.Rewrite(deps.Ctx, content, c.Instructions)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resumekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, out)
	return nil
}
