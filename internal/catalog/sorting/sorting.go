package sorting

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"docshelf/internal/catalog/model"
)

// Collators keep iteration state, so serialize access.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Und)
)

// Toggle implements the header-click policy: clicking the active field
// flips the order, clicking any other field selects it ascending.
func Toggle(curField model.SortField, curOrder model.SortOrder, requested model.SortField) (model.SortField, model.SortOrder) {
	if requested == curField {
		if curOrder == model.OrderAsc {
			return curField, model.OrderDesc
		}
		return curField, model.OrderAsc
	}
	return requested, model.OrderAsc
}

// Compare orders a against b by the given field; desc negates the result.
func Compare(field model.SortField, order model.SortOrder, a, b model.Document) int {
	c := compareField(field, a, b)
	if order == model.OrderDesc {
		return -c
	}
	return c
}

func compareField(field model.SortField, a, b model.Document) int {
	switch field {
	case model.SortByVersion:
		return compareVersions(a.Version, b.Version)
	case model.SortByCreatedAt:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
		return 0
	default:
		return compareTitles(a.Title, b.Title)
	}
}

func compareTitles(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// compareVersions: two semantic versions compare component by
// component with missing trailing components as zero; two numeric
// versions compare as integers; a numeric/semantic pair has no common
// numeric interpretation and ranks equal. Mixed-type collections
// therefore have no total order and must be sorted stably.
func compareVersions(a, b model.Version) int {
	if a.IsSemantic() && b.IsSemantic() {
		ap, bp := a.Parts(), b.Parts()
		n := len(ap)
		if len(bp) > n {
			n = len(bp)
		}
		for i := 0; i < n; i++ {
			var av, bv int
			if i < len(ap) {
				av = ap[i]
			}
			if i < len(bp) {
				bv = bp[i]
			}
			if av != bv {
				return av - bv
			}
		}
		return 0
	}
	if !a.IsSemantic() && !b.IsSemantic() {
		return a.Numeric() - b.Numeric()
	}
	return 0
}
