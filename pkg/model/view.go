package model

import "strings"

// ViewWindow is the query and page the presentation layer is showing.
type ViewWindow struct {
	Query string
	Page  int
}

func NewViewWindow(query string, page int) ViewWindow {
	if page < 1 {
		page = 1
	}
	return ViewWindow{Query: strings.TrimSpace(query), Page: page}
}

// SetQuery replaces the query and always goes back to the first page.
func (v *ViewWindow) SetQuery(query string) {
	v.Query = strings.TrimSpace(query)
	v.Page = 1
}

// SetPage moves to page, clamped into [1, totalPages].
func (v *ViewWindow) SetPage(page, totalPages int) {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case page < 1:
		v.Page = 1
	case page > totalPages:
		v.Page = totalPages
	default:
		v.Page = page
	}
}

// PageView is the result of applying a ViewWindow to a dataset.
type PageView struct {
	Query      string
	Page       int
	PageSize   int
	TotalPages int
	TotalItems int
	First      int
	Last       int
	Records    []Record
}

// Apply runs filter then pagination for the window. The page is clamped to
// the filtered result so a stale page never renders an empty list.
func (v *ViewWindow) Apply(records []Record, pageSize int) PageView {
	filtered := FilterRecords(records, v.Query)
	total := TotalPages(len(filtered), pageSize)
	v.SetPage(v.Page, total)

	first, last := PageBounds(len(filtered), pageSize, v.Page)
	return PageView{
		Query:      v.Query,
		Page:       v.Page,
		PageSize:   pageSize,
		TotalPages: total,
		TotalItems: len(filtered),
		First:      first,
		Last:       last,
		Records:    Paginate(filtered, pageSize, v.Page),
	}
}

// HasPagination mirrors the browse page rule: controls only when results
// do not fit on one page.
func (p PageView) HasPagination() bool {
	return p.TotalItems > p.PageSize
}

func (p PageView) HasPrev() bool { return p.Page > 1 }
func (p PageView) HasNext() bool { return p.Page < p.TotalPages }
func (p PageView) PrevPage() int { return p.Page - 1 }
func (p PageView) NextPage() int { return p.Page + 1 }
