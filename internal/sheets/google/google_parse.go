package google

import (
	"fmt"
	"strconv"
	"strings"

	"filings/internal/core"
	"filings/internal/slug"
)

// parseRecords converts a values matrix into raw rows. The first row names
// the columns; blank header cells and blank cells are skipped, and fully
// blank rows are dropped.
func parseRecords(values [][]interface{}) ([]core.RawRow, error) {
	if len(values) == 0 {
		return []core.RawRow{}, nil
	}
	headers := toStrings(values[0])
	if !hasAny(headers) {
		return nil, fmt.Errorf("unexpected filings header: got %v", headers)
	}
	rows := make([]core.RawRow, 0, len(values)-1)
	for _, raw := range values[1:] {
		cells := toStrings(raw)
		row := core.RawRow{}
		for i, h := range headers {
			if h == "" {
				continue
			}
			if v := safeGet(cells, i); v != "" {
				row[h] = v
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// parseTotals converts a values matrix with fullName, totalAmount and
// contributionCount columns into a rollup document. The key column is
// optional; without it entries are keyed by their full name.
func parseTotals(values [][]interface{}) (map[string]core.RawTotal, error) {
	out := map[string]core.RawTotal{}
	if len(values) == 0 {
		return out, nil
	}
	headers := toStrings(values[0])
	colKey := indexOf(headers, "key")
	colName := indexOf(headers, "fullName")
	colTotal := indexOf(headers, "totalAmount")
	colCount := indexOf(headers, "contributionCount")
	if colName == -1 || colTotal == -1 || colCount == -1 {
		missing := make([]string, 0, 3)
		if colName == -1 {
			missing = append(missing, "fullName")
		}
		if colTotal == -1 {
			missing = append(missing, "totalAmount")
		}
		if colCount == -1 {
			missing = append(missing, "contributionCount")
		}
		return nil, fmt.Errorf("unexpected totals header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}
	for _, raw := range values[1:] {
		cells := toStrings(raw)
		name := safeGet(cells, colName)
		key := safeGet(cells, colKey)
		if key == "" && name == "" {
			continue
		}
		if key == "" {
			key = slug.Make(name)
		}
		count, _ := strconv.Atoi(safeGet(cells, colCount))
		out[key] = core.RawTotal{
			FullName:          name,
			TotalAmount:       core.ParseAmount(safeGet(cells, colTotal)),
			ContributionCount: count,
		}
	}
	return out, nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch t := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = strings.TrimSpace(t)
		case float64:
			out[i] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[i] = strconv.FormatBool(t)
		default:
			out[i] = strings.TrimSpace(fmt.Sprint(t))
		}
	}
	return out
}

func indexOf(headers []string, name string) int {
	if name == "" {
		return -1
	}
	for i, h := range headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

func safeGet(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func hasAny(values []string) bool {
	for _, v := range values {
		if v != "" {
			return true
		}
	}
	return false
}
