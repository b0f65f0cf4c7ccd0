package mock

import "github.com/confsift/confsift"

var _ confsift.Converter = (*Converter)(nil)

// Converter is a mock implementation of confsift.Converter.
type Converter struct {
	ConvertFn func(body string) (string, error)
}

func (c *Converter) Convert(body string) (string, error) {
	return c.ConvertFn(body)
}
