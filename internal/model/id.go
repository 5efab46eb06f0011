package model

import (
	"bytes"
	"fmt"
)

// ID is the backend-assigned entity identity. The backend is inconsistent
// about emitting ids as JSON numbers or strings, so the type accepts both and
// normalizes to its string form once at decode time.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		if len(b) < 2 || b[len(b)-1] != '"' {
			return fmt.Errorf("id mal formado: %s", b)
		}
		*id = ID(b[1 : len(b)-1])
		return nil
	}
	*id = ID(b)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + string(id) + `"`), nil
}

func (id ID) String() string { return string(id) }

// ActivoPorDefecto normalizes the wire lifecycle flag: an absent flag means
// active. Applied once when entities enter the cache so that downstream code
// never repeats the nil check.
func ActivoPorDefecto(v *bool) bool {
	return v == nil || *v
}
