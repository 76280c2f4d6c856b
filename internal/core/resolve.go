package core

// resolve.go finds semantic fields in loosely-labelled rows.
//
// Uploaded sheets label the same column in Arabic, in English with spaces,
// or as camelCase webhook keys. A FieldAliasSet lists the spellings accepted
// for one field, in priority order. Resolution makes two passes:
//
//  1. exact: each alias is looked up verbatim, first non-empty value wins
//  2. fallback: every row key is folded and compared against every folded
//     alias, aliases still in priority order
//
// Folding is Unicode case folding over NFC-normalized, whitespace-trimmed
// text, so "SERIAL NO " matches "Serial No" and Arabic keys typed with
// different code point sequences still match.

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FieldAliasSet is an ordered list of accepted raw keys for one semantic field.
type FieldAliasSet []string

// Aliases builds a FieldAliasSet from keys in priority order.
func Aliases(keys ...string) FieldAliasSet {
	return FieldAliasSet(keys)
}

// With returns a new set with extra aliases appended at lowest priority.
func (s FieldAliasSet) With(keys ...string) FieldAliasSet {
	out := make(FieldAliasSet, 0, len(s)+len(keys))
	out = append(out, s...)
	return append(out, keys...)
}

// FoldKey returns the comparison form of a header or alias.
// A Caser is stateful, so each call gets its own.
func FoldKey(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Resolve returns the first present, non-empty value for the alias set.
// The second result is false when the field is absent.
func Resolve(row RawRow, aliases FieldAliasSet) (any, bool) {
	if len(row) == 0 || len(aliases) == 0 {
		return nil, false
	}

	for _, alias := range aliases {
		if v, ok := row[alias]; ok && present(v) {
			return v, true
		}
	}

	// Map iteration order is random; sort keys so that two row keys folding
	// to the same alias always resolve the same way.
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	folded := make([]string, len(keys))
	for i, k := range keys {
		folded[i] = FoldKey(k)
	}

	for _, alias := range aliases {
		want := FoldKey(alias)
		for i, k := range keys {
			if folded[i] == want && present(row[k]) {
				return row[k], true
			}
		}
	}

	return nil, false
}

// ResolveString resolves a field and returns its trimmed string form.
func ResolveString(row RawRow, aliases FieldAliasSet) (string, bool) {
	v, ok := Resolve(row, aliases)
	if !ok {
		return "", false
	}
	s := CleanCell(Stringify(v))
	if s == "" {
		return "", false
	}
	return s, true
}

// StringOr resolves a field as a string, returning def when absent.
func StringOr(row RawRow, aliases FieldAliasSet, def string) string {
	if s, ok := ResolveString(row, aliases); ok {
		return s
	}
	return def
}

// present reports whether v counts as a found value.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []byte:
		return len(strings.TrimSpace(string(t))) > 0
	default:
		return true
	}
}

// Stringify renders a raw cell value as text. Floats with no fractional
// part drop the decimal point so numeric IDs keep their digits.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case float32:
		return Stringify(float64(t))
	default:
		return fmt.Sprint(t)
	}
}
