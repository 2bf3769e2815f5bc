package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Skip reasons for records rejected during normalization. The record is
// skipped with a warning; the batch continues.
var (
	ErrNotAnObject = errors.New("not an object")
	ErrMissingGTIN = errors.New("missing gtin")
	ErrMissingName = errors.New("missing name")
)

// ImportRecord is one validated input row.
type ImportRecord struct {
	Name    string
	GTIN    int64
	GTINRaw string // original token, re-applied defensively at save time
	Image   string // optional: external URL or internal asset path
	Date    string // optional: free-form date text
}

// Normalize validates and coerces one raw record. It is pure: all failure
// modes come back as a skip error, nothing escapes.
//
// Rules, in order: the value must be an object; gtin must be present and
// coerce to a strictly positive integer; name must be present (an empty
// string counts as present). image and date pass through untyped.
func Normalize(raw any, index int) (ImportRecord, error) {
	row, ok := raw.(map[string]any)
	if !ok {
		return ImportRecord{}, ErrNotAnObject
	}

	gtinValue, gtinPresent := row["gtin"]
	gtin, gtinRaw, ok := coerceGTIN(gtinValue)
	if !gtinPresent || !ok || gtin <= 0 {
		return ImportRecord{}, ErrMissingGTIN
	}

	nameValue, namePresent := row["name"]
	if !namePresent {
		return ImportRecord{}, ErrMissingName
	}

	record := ImportRecord{
		Name:    coerceString(nameValue),
		GTIN:    gtin,
		GTINRaw: gtinRaw,
	}
	if image, ok := row["image"]; ok {
		record.Image = coerceString(image)
	}
	if date, ok := row["date"]; ok {
		record.Date = coerceString(date)
	}

	return record, nil
}

// coerceGTIN accepts numeric values and numeric strings. String tokens are
// reduced to their digits before parsing, so a decorated token like
// "GTIN:00012345" still conveys its numeric identity.
func coerceGTIN(value any) (gtin int64, raw string, ok bool) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			// Non-integer number: truncate like an int cast would.
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, "", false
			}
			n = int64(f)
		}
		return n, v.String(), true
	case float64:
		return int64(v), strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return int64(v), strconv.Itoa(v), true
	case int64:
		return v, strconv.FormatInt(v, 10), true
	case string:
		digits := stripNonDigits(v)
		if digits == "" {
			return 0, v, false
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, v, false
		}
		return n, v, true
	default:
		return 0, "", false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
