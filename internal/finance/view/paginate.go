package view

// AllowedPageSizes are the page sizes the dashboard offers.
var AllowedPageSizes = []int{10, 20, 50}

const DefaultPageSize = 20

type Page struct {
	Items       []Item `json:"items"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	PageSize    int    `json:"pageSize"`
	TotalItems  int    `json:"totalItems"`
}

func ValidPageSize(size int) bool {
	for _, allowed := range AllowedPageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}

// Paginate slices items into the requested page. The page number is clamped
// to [1, totalPages]; an empty input still yields one (empty) page.
func Paginate(items []Item, page, pageSize int) Page {
	if !ValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Items:       items[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalItems:  len(items),
	}
}
