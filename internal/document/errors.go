package document

import (
	"errors"
	"fmt"
	"strings"
)

// MalformedDocumentError reports a document that is not valid XML, misses a
// required element or attribute, or contains an unknown item element.
type MalformedDocumentError struct {
	Path      string // document file, empty when decoding from a reader
	Element   string // slash-separated element path, e.g. "Build/Startup"
	Attribute string
	Reason    string
	Err       error
}

func (e *MalformedDocumentError) Error() string {
	var b strings.Builder
	b.WriteString("malformed project document")
	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}
	if e.Element != "" {
		fmt.Fprintf(&b, ": <%s>", e.Element)
	}
	if e.Attribute != "" {
		fmt.Fprintf(&b, " attribute %q", e.Attribute)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// IsMalformed reports whether err is or wraps a *MalformedDocumentError.
func IsMalformed(err error) bool {
	var e *MalformedDocumentError
	return errors.As(err, &e)
}
