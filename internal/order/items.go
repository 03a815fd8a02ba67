package order

import (
	"encoding/json"
	"strings"
)

// EncodeItems serializes items for the JSONB column. A nil list encodes as [].
func EncodeItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

// DecodeItems is the inverse of EncodeItems. Empty input and JSON null decode
// to an empty, non-nil list.
func DecodeItems(raw []byte) ([]Item, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
