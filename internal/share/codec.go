// Package share encodes a user's shortlist, notes and search context into a
// URL-safe self-contained token, and decodes it back.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"onthego/internal/domain/model"
)

// Version is the current payload schema version.
const Version = 1

// FragmentPrefix is how the token travels: appended to the URL fragment.
const FragmentPrefix = "otg="

// ErrDecode signals an undecodable or incomplete token. Callers treat it as a
// non-fatal "no import performed" outcome.
var ErrDecode = errors.New("share token not decodable")

// Center is the search context captured in a share token.
type Center struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label,omitempty"`
}

// Item is one shared shortlist entry.
type Item struct {
	ID   string `json:"id"`
	Note string `json:"note,omitempty"`
}

// Payload is the self-describing versioned share payload.
type Payload struct {
	V         int     `json:"v"`
	CreatedAt int64   `json:"createdAt"`
	Center    *Center `json:"center"`
	Preset    string  `json:"preset,omitempty"`
	Items     []Item  `json:"items"`
}

// Encode serializes the shortlist into a base64url token (standard alphabet
// with + -> -, / -> _, padding stripped).
func Encode(ids []string, notesByID map[string]string, ctx model.SearchContext, preset string) (string, error) {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{ID: id, Note: notesByID[id]})
	}
	payload := Payload{
		V:         Version,
		CreatedAt: time.Now().Unix(),
		Center: &Center{
			Latitude:  ctx.Latitude,
			Longitude: ctx.Longitude,
			Label:     ctx.Label,
		},
		Preset: preset,
		Items:  items,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal share payload: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode. Malformed base64, invalid JSON, or a payload missing
// its required items/center fields all yield ErrDecode, never a panic.
func Decode(token string) (*Payload, error) {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, "#")
	token = strings.TrimPrefix(token, FragmentPrefix)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrDecode)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if payload.Items == nil {
		return nil, fmt.Errorf("%w: missing items", ErrDecode)
	}
	if payload.Center == nil {
		return nil, fmt.Errorf("%w: missing center", ErrDecode)
	}
	return &payload, nil
}
