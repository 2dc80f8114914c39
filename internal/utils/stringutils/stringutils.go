package stringutils

import (
	"fmt"
	"strings"

	"github.com/siahsang/conduit/internal/utils/functional"
)

// INClause builds numbered placeholders for an IN (...) list, starting at $start.
func INClause[T any](list []T, start int) (clause string, args []any) {
	placeholders := make([]string, len(list))
	args = make([]any, len(list))
	for i, v := range list {
		placeholders[i] = fmt.Sprintf("$%d", start+i)
		args[i] = v
	}

	return strings.Join(placeholders, ", "), args
}

// TrimAll trims every value and drops the ones left blank.
func TrimAll(values []string) []string {
	trimmed := functional.Map(values, strings.TrimSpace)
	return functional.Filter(trimmed, func(s string) bool { return s != "" })
}
