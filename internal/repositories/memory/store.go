// Package memory provides in-process repository implementations backed by
// maps. Selected with STORE_BACKEND=memory; also used by the service tests.
package memory

import (
	"sort"
	"strings"

	"crms/internal/utils"
)

func matchesSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// paginate applies the page window after the caller has filtered and sorted.
func paginate[T any](items []T, params *utils.PaginationParams) []T {
	if params == nil {
		return items
	}
	skip := params.GetSkip()
	if skip >= len(items) {
		return nil
	}
	end := skip + params.GetLimit()
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func sortStable[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
