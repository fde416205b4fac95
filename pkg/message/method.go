package message

import (
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/grammar"
)

// RequestMethod is an HTTP method token. The canonical constants below
// name the standard methods; any other token grammar-valid string is an
// extension method.
type RequestMethod struct {
	Name string
}

var (
	MethodGet     = RequestMethod{"GET"}
	MethodHead    = RequestMethod{"HEAD"}
	MethodPost    = RequestMethod{"POST"}
	MethodPut     = RequestMethod{"PUT"}
	MethodPatch   = RequestMethod{"PATCH"}
	MethodDelete  = RequestMethod{"DELETE"}
	MethodOptions = RequestMethod{"OPTIONS"}
	MethodTrace   = RequestMethod{"TRACE"}
	MethodConnect = RequestMethod{"CONNECT"}
)

func (m RequestMethod) String() string { return m.Name }

// ParseMethod validates s as a token and returns the canonical instance
// when it matches one of the named methods, else an extension method.
func ParseMethod(s string) (RequestMethod, error) {
	if !grammar.IsToken(s) {
		return RequestMethod{}, errors.InvalidSyntax("method: " + s)
	}
	upper := strings.ToUpper(s)
	for _, m := range []RequestMethod{MethodGet, MethodHead, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodOptions, MethodTrace, MethodConnect} {
		if m.Name == upper {
			return m, nil
		}
	}
	return RequestMethod{Name: s}, nil
}

// IsBodiless reports whether requests of this method carry no body on the
// wire.
func (m RequestMethod) IsBodiless() bool {
	switch m.Name {
	case MethodGet.Name, MethodHead.Name, MethodDelete.Name, MethodTrace.Name, MethodConnect.Name:
		return true
	}
	return false
}

// IsBodyAllowed reports whether a body is explicitly allowed on requests
// of this method.
func (m RequestMethod) IsBodyAllowed() bool {
	switch m.Name {
	case MethodPost.Name, MethodPut.Name, MethodPatch.Name, MethodOptions.Name:
		return true
	}
	return false
}
