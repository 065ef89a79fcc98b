package engramdb

import "sort"

// paginate returns the page of ids starting just after pageToken ("" for
// the first page) of at most pageSize entries, plus the token identifying
// the next page ("" once no further pages remain). ids must already be
// sorted ascending, as every List*IDs store method guarantees.
func paginate(ids []string, pageSize int, pageToken string) ([]string, string) {
	if pageSize <= 0 {
		pageSize = len(ids)
	}

	start := 0
	if pageToken != "" {
		start = sort.SearchStrings(ids, pageToken)
		if start < len(ids) && ids[start] == pageToken {
			start++
		}
	}

	if start >= len(ids) {
		return nil, ""
	}

	end := start + pageSize
	if end >= len(ids) {
		return ids[start:], ""
	}
	return ids[start:end], ids[end-1]
}
