package feed

import "github.com/CrestNiraj12/socialfeed/domain"

// Pager accumulates fetched pages in fetch order. Page numbers start at 1.
type Pager struct {
	size  int
	pages [][]domain.Post
}

// NewPager creates a Pager for a fixed page size.
func NewPager(size int) Pager {
	if size < 1 {
		size = 1
	}
	return Pager{size: size}
}

// Size returns the page size requested from the server.
func (p Pager) Size() int {
	return p.size
}

// Loaded returns the number of pages fetched so far.
func (p Pager) Loaded() int {
	return len(p.pages)
}

// NextPage is the page number a "load more" request asks for.
func (p Pager) NextPage() int {
	return len(p.pages) + 1
}

// Append adds a fetched page. Only the next page in sequence is accepted.
func (p *Pager) Append(number int, posts []domain.Post) bool {
	if number != p.NextPage() {
		return false
	}
	p.pages = append(p.pages, posts)
	return true
}

// Replace swaps the loaded pages for a freshly fetched set. Pages loaded
// after the set was requested, past its end, are kept.
func (p *Pager) Replace(pages [][]domain.Post) {
	if len(p.pages) > len(pages) {
		pages = append(pages, p.pages[len(pages):]...)
	}
	p.pages = pages
}

// Reset forgets all loaded pages.
func (p *Pager) Reset() {
	p.pages = nil
}

// Items concatenates all pages in order. Duplicates across pages are kept.
func (p Pager) Items() []domain.Post {
	n := 0
	for _, pg := range p.pages {
		n += len(pg)
	}
	out := make([]domain.Post, 0, n)
	for _, pg := range p.pages {
		out = append(out, pg...)
	}
	return out
}

// HasMore reports whether the last page came back full. A last page of
// exactly Size items reports true even when the server has nothing left.
func (p Pager) HasMore() bool {
	if len(p.pages) == 0 {
		return false
	}
	return len(p.pages[len(p.pages)-1]) >= p.size
}
