package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoRoot is returned when an XML document has no root element.
var ErrNoRoot = errors.New("XML document has no root element")

// ParseXML parses an XML document into an element tree.
func ParseXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, ErrNoRoot
	}
	return doc, nil
}

// IntAttr returns the named attribute of el as an integer.
// ok is false when the attribute is missing; err is set when it is present
// but not an integer.
func IntAttr(el *etree.Element, name string) (value int, ok bool, err error) {
	attr := el.SelectAttr(name)
	if attr == nil {
		return 0, false, nil
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(attr.Value))
	if convErr != nil {
		return 0, true, fmt.Errorf("attribute %q: %q is not an integer", name, attr.Value)
	}
	return n, true, nil
}
