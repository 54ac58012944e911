// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Levels is a resolved upper-bound threshold pair. A nil *Levels means the
// metric is reported but never escalates severity.
//
// Rule sets spelled thresholds in several historical shapes. All of them
// decode into this one form when the configuration is loaded, so evaluation
// never branches on shape:
//
//	[80, 90]
//	{warning: 80, critical: 90}
//	{levels_upper: [80, 90]}
//	["fixed", [80, 90]]
//
// 'warning <= critical' is trusted, not enforced.
type Levels struct {
	Warning  float64
	Critical float64
}

func (l *Levels) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return l.decode(raw)
}

func (l *Levels) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return l.decode(raw)
}

func (l Levels) MarshalYAML() (any, error) {
	return []float64{l.Warning, l.Critical}, nil
}

func (l Levels) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{l.Warning, l.Critical})
}

func (l *Levels) decode(raw any) error {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return l.decodeSeq(v)
	case map[string]any:
		return l.decodeMapping(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, vv := range v {
			s, ok := k.(string)
			if !ok {
				return fmt.Errorf("levels mapping key must be a string, got %T", k)
			}
			m[s] = vv
		}
		return l.decodeMapping(m)
	default:
		return fmt.Errorf("unsupported levels shape %T", raw)
	}
}

func (l *Levels) decodeSeq(seq []any) error {
	if len(seq) != 2 {
		return fmt.Errorf("levels pair must have 2 elements, got %d", len(seq))
	}

	if tag, ok := seq[0].(string); ok {
		if tag != "fixed" {
			return fmt.Errorf("unsupported levels tag '%s'", tag)
		}
		inner, ok := seq[1].([]any)
		if !ok {
			return fmt.Errorf("'fixed' levels must carry a [warning, critical] pair, got %T", seq[1])
		}
		return l.decodeSeq(inner)
	}

	w, okW := asFloat(seq[0])
	c, okC := asFloat(seq[1])
	if !okW || !okC {
		return fmt.Errorf("levels pair must be numeric, got [%v, %v]", seq[0], seq[1])
	}

	l.Warning, l.Critical = w, c

	return nil
}

func (l *Levels) decodeMapping(m map[string]any) error {
	if inner, ok := m["levels_upper"]; ok {
		seq, ok := inner.([]any)
		if !ok {
			return fmt.Errorf("'levels_upper' must carry a [warning, critical] pair, got %T", inner)
		}
		return l.decodeSeq(seq)
	}

	w, okW := asFloat(m["warning"])
	c, okC := asFloat(m["critical"])
	if !okW || !okC {
		return fmt.Errorf("levels mapping must have numeric 'warning' and 'critical' (got %v)", m)
	}

	l.Warning, l.Critical = w, c

	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
