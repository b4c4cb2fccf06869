package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LooseString accepts either a JSON string or a JSON number and keeps its text
// form as sent. ERP clients send identifiers such as companyId in both shapes.
type LooseString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}

	if trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = LooseString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(trimmed))
	}
	*s = LooseString(num.String())
	return nil
}

func (s LooseString) String() string {
	return string(s)
}

// IsZero reports whether no usable value was supplied. Blank text counts as absent.
func (s LooseString) IsZero() bool {
	return strings.TrimSpace(string(s)) == ""
}

// Int64 parses the value as a base-10 integer identifier.
func (s LooseString) Int64() (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(string(s)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer identifier", string(s))
	}
	return v, nil
}
