package algo

import (
	"cmp"
	"sort"
	"strconv"

	"github.com/huangsam/specboard/schema"
)

// SortRows returns a copy of rows sorted by field. The sort is stable and
// applies no secondary key, so rows that compare equal keep their order.
// Descending flips the comparison sign only. A nil input stays nil.
func SortRows(rows []schema.ComplianceRow, field schema.RowField, descending bool) []schema.ComplianceRow {
	if rows == nil {
		return nil
	}
	out := make([]schema.ComplianceRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		c := CompareRows(out[i], out[j], field)
		if descending {
			c = -c
		}
		return c < 0
	})
	return out
}

// CompareRows orders two rows by a single field.
//
// Severity compares by how severe it is: error is the greatest, then warning,
// info and hint, with unknown severities least. Descending therefore lists
// errors first and unknown severities last.
// Ids compare numerically when both parse as integers, which keeps positional
// ids in build order. Every other field compares as a plain string. An unknown
// field makes all rows equal.
func CompareRows(a, b schema.ComplianceRow, field schema.RowField) int {
	switch field {
	case schema.FieldSeverity:
		return cmp.Compare(b.Severity.Rank(), a.Severity.Rank())
	case schema.FieldID:
		ai, aErr := strconv.Atoi(a.ID)
		bi, bErr := strconv.Atoi(b.ID)
		if aErr == nil && bErr == nil {
			return cmp.Compare(ai, bi)
		}
		return cmp.Compare(a.ID, b.ID)
	}
	av, ok := a.Field(field)
	if !ok {
		return 0
	}
	bv, _ := b.Field(field)
	return cmp.Compare(av, bv)
}
