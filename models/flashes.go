package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Flashes maps a flash kind ("error", "info") to its pending messages.
type Flashes map[string][]string

// Add appends msg under kind.
func (f *Flashes) Add(kind, msg string) {
	if *f == nil {
		*f = Flashes{}
	}
	(*f)[kind] = append((*f)[kind], msg)
}

// Take removes and returns the messages stored under kind.
func (f Flashes) Take(kind string) []string {
	msgs := f[kind]
	delete(f, kind)
	return msgs
}

func (f Flashes) Value() (driver.Value, error) {
	if len(f) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *Flashes) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*f = Flashes{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported flashes column type %T", value)
	}
	out := Flashes{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
	}
	*f = out
	return nil
}
