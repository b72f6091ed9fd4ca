package uri

import "braces.dev/errtrace"

// Factory creates URI values from strings.
type Factory interface {
	CreateURI(s string) (URI, error)
}

// CreateURI implements [Factory].
func (p *Parser) CreateURI(s string) (URI, error) { return errtrace.Wrap2(p.Parse(s)) }

var _ Factory = (*Parser)(nil)
