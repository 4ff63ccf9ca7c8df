// Package screen renders note documents for interactive display: as styled
// terminal text, in a scrollable terminal pager, and as HTML markup.
package screen

import (
	"strconv"

	"github.com/jcorbin/noteforge/notedown"
)

// Bullet marks unordered list items.
const Bullet = "•"

// Element is one displayable block.
type Element struct {
	// Key is the index of the source block, stable for a given document.
	Key  int
	Kind notedown.Kind

	// Marker is the list marker of list items: a regenerated ordinal like
	// "3." or Bullet. Empty for every other kind.
	Marker string

	Spans []notedown.Span
}

// Render maps every block of doc to an element.
//
// Ordered items are numbered by position: each run of ordered items counts
// up from 1. Blank blocks within a run do not end it, any other kind does.
func Render(doc notedown.Document) []Element {
	elems := make([]Element, len(doc))
	ordinal := 0
	for i, b := range doc {
		elems[i] = Element{Key: i, Kind: b.Kind, Spans: b.Spans}
		switch b.Kind {
		case notedown.Blank:
		case notedown.OrderedListItem:
			ordinal++
			elems[i].Marker = strconv.Itoa(ordinal) + "."
		case notedown.UnorderedListItem:
			ordinal = 0
			elems[i].Marker = Bullet
		default:
			ordinal = 0
		}
	}
	return elems
}
