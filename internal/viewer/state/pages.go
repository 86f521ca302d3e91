package state

import "github.com/elektrokombinacija/mediaview/internal/geom"

// Page is a handle to one image of the sequence.
type Page struct {
	ID   string    `json:"id"`
	Size geom.Size `json:"size"` // intrinsic pixels
}

// PageSet is the fixed, ordered sequence of pages plus the current index.
type PageSet struct {
	Pages   []Page
	Current int
}

// NewPageSet creates a page set positioned at start. An out-of-range start
// is replaced by 0.
func NewPageSet(pages []Page, start int) PageSet {
	ps := PageSet{Pages: pages}
	if ps.Valid(start) {
		ps.Current = start
	}
	return ps
}

// Len returns the number of pages.
func (ps PageSet) Len() int {
	return len(ps.Pages)
}

// Valid reports whether i indexes a page.
func (ps PageSet) Valid(i int) bool {
	return i >= 0 && i < len(ps.Pages)
}

// CurrentPage returns the current page, or the zero Page for an empty set.
func (ps PageSet) CurrentPage() Page {
	if !ps.Valid(ps.Current) {
		return Page{}
	}
	return ps.Pages[ps.Current]
}

// HasPrev reports whether a page precedes the current one.
func (ps PageSet) HasPrev() bool {
	return ps.Current > 0
}

// HasNext reports whether a page follows the current one.
func (ps PageSet) HasNext() bool {
	return ps.Current < len(ps.Pages)-1
}
