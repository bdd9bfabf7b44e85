package dispatch

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/san-kum/algoviz/internal/algo"
)

var paramFields = []string{"value", "index", "start", "target", "window"}

// DecodeParams turns loosely typed input (form values, JSON numbers, YAML
// scalars) into algo.Params. Numeric strings are accepted; nil and blank
// values count as absent. Unknown keys are ignored.
func DecodeParams(op string, raw map[string]any) (algo.Params, error) {
	var p algo.Params
	for _, name := range paramFields {
		v, ok := raw[name]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		if s, isStr := v.(string); isStr {
			v = strings.TrimSpace(s)
		}
		n, err := decodeInt(v)
		if errors.Is(err, errNotWhole) {
			return algo.Params{}, invalid(op, name, "%v is not a whole number", v)
		}
		if err != nil {
			return algo.Params{}, invalid(op, name, "%q is not a number", fmt.Sprint(v))
		}
		switch name {
		case "value":
			p.Value = algo.Int(n)
		case "index":
			p.Index = algo.Int(n)
		case "start":
			p.Start = algo.Int(n)
		case "target":
			p.Target = algo.Int(n)
		case "window":
			p.Window = n
		}
	}
	return p, nil
}

var errNotWhole = errors.New("not a whole number")

// decodeInt rejects fractional and out-of-range floats, which mapstructure
// would otherwise truncate.
func decodeInt(v any) (int, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return weakInt(v)
	}
	if math.IsNaN(f) || math.Trunc(f) != f || f < math.MinInt || f >= math.MaxInt {
		return 0, errNotWhole
	}
	return int(f), nil
}

func weakInt(v any) (int, error) {
	var n int
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &n,
	})
	if err != nil {
		return 0, err
	}
	if err := dec.Decode(v); err != nil {
		return 0, err
	}
	return n, nil
}
