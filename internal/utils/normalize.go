package utils

import "strings"

// NormalizeHeader lower-cases a column header and collapses inner whitespace,
// so "ID  Pallete " and "id pallete" match.
func NormalizeHeader(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// NormalizeStatus trims a scan status and upper-cases it.
func NormalizeStatus(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// NormalizeIdentifier trims a pallet or box identifier. Numeric identifiers
// stored by Excel as floats ("1024.0") lose the redundant fraction.
func NormalizeIdentifier(raw string) string {
	normalized := strings.TrimSpace(raw)
	if whole, ok := strings.CutSuffix(normalized, ".0"); ok && isDigits(whole) {
		return whole
	}
	return normalized
}

// CellValue returns the trimmed cell at idx, or "" when the row is short or idx is negative.
func CellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
