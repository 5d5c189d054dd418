package model

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/lib/pq"
)

type Question struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	Tags      TagList   `json:"tags"`
	UserID    string    `json:"user_id"`
	Votes     int       `json:"votes"`
	Answers   int       `json:"answers"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"created_at"`
	Username  *string   `json:"username,omitempty"` // From author join, absent if author unknown
	Email     *string   `json:"email,omitempty"`
}

// TagList maps to a Postgres text[] column.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	return pq.StringArray(t).Value()
}

func (t *TagList) Scan(src interface{}) error {
	return (*pq.StringArray)(t).Scan(src)
}

// TagInput accepts the two shapes clients send tags in: a JSON array of
// strings, taken as-is, or a single comma-separated string, which is split,
// trimmed and stripped of empty segments. Either way the decoded value is a
// plain string sequence by the time it reaches service code.
type TagInput []string

func (t *TagInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = splitTags(s)
		return nil
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*t = tags
	return nil
}

func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
