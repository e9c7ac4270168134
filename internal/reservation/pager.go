package reservation

// Pager guards paginated loading. A scroll-bottom event can fire twice in
// quick succession, so Begin refuses to start a load while one is in flight
// or after the source reported the last page.
type Pager struct {
	page     int
	pageSize int
	hasMore  bool
	inFlight bool
}

// NewPager returns a pager positioned before the first page.
func NewPager(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Pager{pageSize: pageSize, hasMore: true}
}

// Begin claims the next page. It returns the page number to fetch and true,
// or false when the call must be a no-op.
func (p *Pager) Begin() (int, bool) {
	if p.inFlight || !p.hasMore {
		return 0, false
	}
	p.inFlight = true
	return p.page + 1, true
}

// Finish records a completed load and whether more pages remain.
func (p *Pager) Finish(hasMore bool) {
	p.inFlight = false
	p.page++
	p.hasMore = hasMore
}

// Abort releases the in-flight claim without advancing, so a failed page
// fetch can be retried.
func (p *Pager) Abort() {
	p.inFlight = false
}

// Reset rewinds to before the first page; used when the filter changes.
func (p *Pager) Reset() {
	p.page = 0
	p.hasMore = true
	p.inFlight = false
}

// PageSize returns the configured page size.
func (p *Pager) PageSize() int { return p.pageSize }

// HasMore reports whether the source indicated further pages.
func (p *Pager) HasMore() bool { return p.hasMore }

// Loading reports whether a page fetch is in flight.
func (p *Pager) Loading() bool { return p.inFlight }
