// ABOUTME: Normalizes Subsonic XML payloads into a generic element tree.
// ABOUTME: Strips the REST namespace and surfaces embedded failure statuses as errors.

package subsonic

import (
	"bytes"
	"encoding/xml"
)

// namespaceDecl is the namespace declaration Subsonic servers put on the
// response root. It is removed before parsing so that element and attribute
// lookups can use unprefixed names; downstream extraction depends on this.
const namespaceDecl = `xmlns="http://subsonic.org/restapi"`

// Element is one node of a parsed Subsonic response. The generic tree keeps
// the extraction code independent of the dozens of response shapes the
// Subsonic API defines.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []*Element `xml:",any"`
}

// Tag returns the element's local name.
func (e *Element) Tag() string { return e.XMLName.Local }

// Attr returns the named attribute value, or def when absent.
func (e *Element) Attr(name, def string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return def
}

// Find returns the first descendant with the given tag, depth-first, or nil.
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag() == tag {
			return c
		}
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns all descendants with the given tag, in document order.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag() == tag {
			out = append(out, c)
		}
		out = append(out, c.FindAll(tag)...)
	}
	return out
}

// Normalize parses a raw Subsonic response body into an Element tree.
// Returns *ProtocolError when the payload is not valid XML, and *APIError
// when the root carries status="failed" with an embedded error element.
func Normalize(raw []byte) (*Element, error) {
	cleaned := bytes.ReplaceAll(raw, []byte(namespaceDecl), nil)

	var root Element
	if err := xml.Unmarshal(cleaned, &root); err != nil {
		return nil, &ProtocolError{Err: err}
	}

	if root.Attr("status", "") == "failed" {
		if errElem := root.Find("error"); errElem != nil {
			return nil, &APIError{Message: errElem.Attr("message", "Unknown error")}
		}
	}

	return &root, nil
}
