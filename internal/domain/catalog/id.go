package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is the canonical identifier for artworks and exhibitions.
//
// Upstream payloads are inconsistent: some send `"artworkId": "42"`, others
// `"artwork_id": 42`. Both decode to ID("42") so comparisons are plain equality.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("catalog id: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("catalog id: unsupported value %s", string(b))
	}
	*id = ID(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// ParseID normalizes loosely typed values (request params, decoded maps) into an ID.
func ParseID(v any) ID {
	switch t := v.(type) {
	case nil:
		return ""
	case ID:
		return ID(strings.TrimSpace(string(t)))
	case string:
		return ID(strings.TrimSpace(t))
	case json.Number:
		return ParseID(string(t))
	case float64:
		return ID(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		return ID(strconv.FormatFloat(float64(t), 'f', -1, 32))
	case int:
		return ID(strconv.Itoa(t))
	case int64:
		return ID(strconv.FormatInt(t, 10))
	case uint:
		return ID(strconv.FormatUint(uint64(t), 10))
	case uint64:
		return ID(strconv.FormatUint(t, 10))
	default:
		return ID(strings.TrimSpace(fmt.Sprint(t)))
	}
}
