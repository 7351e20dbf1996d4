// Package pagination implements cursor-based pagination over an already
// ordered in-memory sequence. A cursor is an opaque string attached to each
// item; pagination resumes immediately after the item whose cursor matches.
package pagination

// DefaultPageSize is used when the caller omits the page size or passes a
// non-positive value.
const DefaultPageSize = 20

// Page is one contiguous slice of the input sequence. Cursor is the cursor
// of the last item, or "" when Items is empty. HasMore is true while items
// remain past the end of this page.
type Page[T any] struct {
	Items   []T
	Cursor  string
	HasMore bool
}

// Paginate slices items into the page starting after the item whose cursor
// equals after. It does not sort; items must already be in the desired
// output order.
//
// An empty after starts at the beginning. An after that matches no item also
// starts at the beginning: the cursor is treated as stale rather than
// invalid, and the caller gets the first page instead of an error.
//
// Paginate is pure: no side effects, deterministic for a given input.
func Paginate[T any](items []T, after string, pageSize int, cursorOf func(T) string) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	start := 0
	if after != "" {
		for i, it := range items {
			if cursorOf(it) == after {
				start = i + 1
				break
			}
		}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	page := Page[T]{Items: items[start:end]}
	if len(page.Items) > 0 {
		page.Cursor = cursorOf(page.Items[len(page.Items)-1])
	}
	page.HasMore = start+pageSize < len(items)
	return page
}
