package catalog

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/roach88/fieldq/internal/record"
)

// ParseLiteral converts raw to the type a query literal on f must have.
//
// List fields take literals of their element type. raw may be the string
// form typed on a command line or the value decoded from a plan file
// (string, int64, float64, bool). Times accept RFC 3339 or a plain date,
// which is read as midnight UTC.
func ParseLiteral(f FieldInfo, raw any) (any, error) {
	target := f.Type
	if f.Kind == record.KindList {
		target = f.Elem
	}
	if target == nil {
		return nil, &LiteralError{Field: f.Name, Raw: raw, Want: "a scalar"}
	}

	fail := func(err error) error {
		return &LiteralError{Field: f.Name, Raw: raw, Want: record.TypeName(target), Err: err}
	}

	switch target {
	case reflect.TypeFor[string]():
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case reflect.TypeFor[time.Time]():
		switch v := raw.(type) {
		case time.Time:
			return v, nil
		case string:
			t, err := parseTime(v)
			if err != nil {
				return nil, fail(err)
			}
			return t, nil
		}
	case reflect.TypeFor[int]():
		n, err := parseInt(raw)
		if err != nil {
			return nil, fail(err)
		}
		if n < math.MinInt || n > math.MaxInt {
			return nil, fail(errors.New("out of range"))
		}
		return int(n), nil
	case reflect.TypeFor[int64]():
		n, err := parseInt(raw)
		if err != nil {
			return nil, fail(err)
		}
		return n, nil
	case reflect.TypeFor[float64]():
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case int:
			return float64(v), nil
		case string:
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fail(err)
			}
			return x, nil
		}
	case reflect.TypeFor[bool]():
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fail(err)
			}
			return b, nil
		}
	default:
		return nil, fail(errors.New("no literal form for this type"))
	}
	return nil, fail(fmt.Errorf("unexpected %T", raw))
}

func parseInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected %T", raw)
	}
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
