package model

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// looseInt decodes a JSON integer that may also arrive as a numeric string,
// which is what HTML form inputs produce. An empty string or null is zero.
type looseInt int

func (n *looseInt) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %s", raw)
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = 0
			return nil
		}
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid integer %q", raw)
	}
	*n = looseInt(v)
	return nil
}
