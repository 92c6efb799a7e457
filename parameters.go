package mocksmtpd

import (
	"math"
	"strconv"
	"strings"
)

// String returns parameter in NAME=VALUE form
func (p Parameter) String() string {
	return p.Name + "=" + p.Value
}

// parseParameters extracts every whitespace delimited token having `=` in it.
// Order is preserved and duplicates are kept.
func parseParameters(args string) (params []Parameter) {
	params = make([]Parameter, 0)
	for _, token := range strings.Fields(args) {
		name, value, found := strings.Cut(token, "=")
		if !found {
			continue
		}
		params = append(params, Parameter{Name: name, Value: value})
	}
	return params
}

// declaredSize returns message size client promised via SIZE extension.
// Anything except plain digits after ` SIZE=` gives zero.
func declaredSize(args string) int {
	largs := strings.ToLower(args)
	idx := strings.Index(largs, sizeParameterToken)
	if idx == -1 {
		return 0
	}
	raw := strings.TrimSpace(largs[idx+len(sizeParameterToken):])
	if raw == "" || !isDigits(raw) {
		return 0
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		// only possible error here is overflow
		return math.MaxInt
	}
	return size
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
