package lsxstream

import (
	"cmp"
	"encoding/xml"
	"errors"
	"fmt"
)

const (
	defaultMaxDepth = 256
	defaultMaxAttrs = 256
)

// ErrLimitExceeded reports a document that nests too deeply or carries too many
// attributes on one element.
var ErrLimitExceeded = errors.New("xml limit exceeded")

type limits struct {
	maxDepth int
	maxAttrs int
}

func resolveLimits(maxDepth, maxAttrs int) (limits, error) {
	if maxDepth < 0 {
		return limits{}, fmt.Errorf("xml max depth must be >= 0")
	}
	if maxAttrs < 0 {
		return limits{}, fmt.Errorf("xml max attrs must be >= 0")
	}
	return limits{
		maxDepth: cmp.Or(maxDepth, defaultMaxDepth),
		maxAttrs: cmp.Or(maxAttrs, defaultMaxAttrs),
	}, nil
}

// check validates a start element opened at the given nesting depth (root is 1).
func (l limits) check(start xml.StartElement, depth int) error {
	if depth > l.maxDepth {
		return fmt.Errorf("%w: element %s at depth %d (max %d)", ErrLimitExceeded, start.Name.Local, depth, l.maxDepth)
	}
	if len(start.Attr) > l.maxAttrs {
		return fmt.Errorf("%w: element %s has %d attributes (max %d)", ErrLimitExceeded, start.Name.Local, len(start.Attr), l.maxAttrs)
	}
	return nil
}
