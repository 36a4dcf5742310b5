package store

import (
	"database/sql"
	"fmt"
	"time"
)

// timeLayout is the TEXT encoding for timestamps. Values are stored in UTC
// so that lexical order in SQLite matches chronological order.
const timeLayout = time.RFC3339Nano

func marshalTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// marshalNullTime stores a nil pointer as SQL NULL.
func marshalNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: marshalTime(*t), Valid: true}
}

func unmarshalTime(column, data string) (time.Time, error) {
	t, err := time.Parse(timeLayout, data)
	if err != nil {
		return time.Time{}, fmt.Errorf("unmarshal %s: %w", column, err)
	}
	return t, nil
}

func unmarshalNullTime(column string, data sql.NullString) (*time.Time, error) {
	if !data.Valid {
		return nil, nil
	}
	t, err := unmarshalTime(column, data.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
