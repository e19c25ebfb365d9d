package mock

import "github.com/fwojciec/resumekit"

var _ resumekit.Converter = (*Converter)(nil)

// Converter is a mock implementation of resumekit.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
