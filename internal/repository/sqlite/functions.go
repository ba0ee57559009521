package sqlite

import (
	"database/sql/driver"
	"fmt"
	"strings"

	modernc "modernc.org/sqlite"
)

// lowerFunc lowercases text with Unicode rules. The built-in lower() and LIKE only fold ASCII.
const lowerFunc = "unicode_lower"

func init() {
	if err := modernc.RegisterDeterministicScalarFunction(lowerFunc, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", lowerFunc, err))
	}
}

func unicodeLower(_ *modernc.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
