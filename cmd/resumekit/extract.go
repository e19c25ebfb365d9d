package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/extract"
)

// Run executes the extract command. Every file is attempted; the last
// failure is returned after all results are printed.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	docs := make([]*resumekit.UploadedDocument, 0, len(c.Files))
	for _, path := range c.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		docs = append(docs, &resumekit.UploadedDocument{Name: filepath.Base(path), Data: data})
	}

	var lastErr error
	for i, res := range extract.ExtractAll(deps.Ctx, deps.Extractor, docs, c.Concurrency) {
		if res.Err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", res.Name, resumekit.ErrorMessage(res.Err))
			lastErr = res.Err
			continue
		}
		if len(docs) > 1 {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintf(deps.Stdout, "==> %s <==\n", res.Name)
		}
		fmt.Fprintln(deps.Stdout, res.Text)
	}
	return lastErr
}
