package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Filter returns the indices of the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *roaring.Bitmap {
	rb := roaring.New()
	for i, r := range t.rows {
		if keep(r) {
			rb.Add(uint32(i))
		}
	}
	return rb
}

// Select returns a new table holding the rows whose indices are set in ids,
// in ascending index order. The result shares the column info of t.
func (t *Table) Select(ids *roaring.Bitmap) (*Table, error) {
	out := &Table{info: t.info, rows: make([]Row, 0, ids.GetCardinality())}
	if ids.IsEmpty() {
		return out, nil
	}
	if last := int(ids.Maximum()); last >= len(t.rows) {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, last, len(t.rows))
	}
	it := ids.Iterator()
	for it.HasNext() {
		out.rows = append(out.rows, t.rows[it.Next()])
	}
	return out, nil
}

// ParseRowRanges parses a comma separated list of 1-based row numbers and
// inclusive ranges ("1-5,9,12-") into 0-based row indices. An open range
// ("12-") extends to limit, which must then be positive.
func ParseRowRanges(ranges string, limit int) (*roaring.Bitmap, error) {
	rb := roaring.New()
	for part := range strings.SplitSeq(ranges, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := parseRowNumber(lo)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			if hi == "" {
				if limit <= 0 {
					return nil, fmt.Errorf("open row range %q needs a row limit", part)
				}
				last = limit
			} else if last, err = parseRowNumber(hi); err != nil {
				return nil, err
			}
		}
		if last < first {
			return nil, fmt.Errorf("invalid row range %q", part)
		}
		rb.AddRange(uint64(first-1), uint64(last))
	}
	return rb, nil
}

func parseRowNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid row number %q", s)
	}
	return n, nil
}
