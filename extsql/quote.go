package extsql

import (
	"fmt"
	"strings"
	"time"
)

// postgresReservedWords contains SQL keywords that must be quoted when used
// as identifiers. This is the PostgreSQL reserved-key-word list; unreserved
// keywords are left unquoted.
var postgresReservedWords = map[string]bool{
	"all": true, "analyse": true, "analyze": true, "and": true, "any": true,
	"array": true, "as": true, "asc": true, "asymmetric": true, "both": true,
	"case": true, "cast": true, "check": true, "collate": true, "column": true,
	"constraint": true, "create": true, "current_catalog": true,
	"current_date": true, "current_role": true, "current_time": true,
	"current_timestamp": true, "current_user": true, "default": true,
	"deferrable": true, "desc": true, "distinct": true, "do": true,
	"else": true, "end": true, "except": true, "false": true, "fetch": true,
	"for": true, "foreign": true, "from": true, "grant": true, "group": true,
	"having": true, "in": true, "initially": true, "intersect": true,
	"into": true, "lateral": true, "leading": true, "limit": true,
	"localtime": true, "localtimestamp": true, "not": true, "null": true,
	"offset": true, "on": true, "only": true, "or": true, "order": true,
	"placing": true, "primary": true, "references": true, "returning": true,
	"select": true, "session_user": true, "some": true, "symmetric": true,
	"table": true, "then": true, "to": true, "trailing": true, "true": true,
	"union": true, "unique": true, "user": true, "using": true,
	"variadic": true, "when": true, "where": true, "window": true, "with": true,
}

// quoteIdent returns the identifier quoted with double quotes if it is a
// reserved word, otherwise returns it unchanged. Manifest validation only
// admits lower-case snake_case identifiers, so case folding is not a
// concern here.
func quoteIdent(name string) string {
	if postgresReservedWords[strings.ToLower(name)] {
		return `"` + name + `"`
	}
	return name
}

// quoteLiteral renders a seed value as a SQL literal. Strings are quoted
// with single quotes doubled; nil renders as NULL; booleans, integers, and
// floats render in their natural SQL spelling.
func quoteLiteral(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'", nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val), nil
	case float32, float64:
		return fmt.Sprintf("%v", val), nil
	case time.Time:
		return "'" + val.UTC().Format(time.RFC3339Nano) + "'", nil
	default:
		return "", fmt.Errorf("unsupported seed literal type %T", v)
	}
}
