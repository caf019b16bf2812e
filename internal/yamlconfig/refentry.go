package yamlconfig

import (
	"fmt"
	"time"

	"github.com/C2SM/ethiopia/internal/refspec"
	"github.com/C2SM/ethiopia/internal/temporal"
)

// parseRefSpecs resolves a raw `inputs`/`outputs`/`wait_on` list: each
// element is either a bare name string or a one-key map
// `name: {lag?, date?, when?, parameters?}` (spec.md §6).
func parseRefSpecs(raw []any) ([]refspec.Spec, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	specs := make([]refspec.Spec, 0, len(raw))
	for _, item := range raw {
		spec, err := parseRefEntry(item)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseRefEntry(item any) (refspec.Spec, error) {
	switch v := item.(type) {
	case string:
		return refspec.Spec{Name: v}, nil
	default:
		m, ok := asStringMap(v)
		if !ok {
			return refspec.Spec{}, fmt.Errorf("yamlconfig: reference entry must be a string or single-key map, got %T", item)
		}
		if len(m) != 1 {
			return refspec.Spec{}, fmt.Errorf("yamlconfig: reference entry map must have exactly one key, got %d", len(m))
		}
		for name, body := range m {
			bodyMap, ok := asStringMap(body)
			if body != nil && !ok {
				return refspec.Spec{}, fmt.Errorf("yamlconfig: reference %q body must be a mapping", name)
			}
			return parseRefBody(name, bodyMap)
		}
	}
	panic("unreachable")
}

func parseRefBody(name string, body map[string]any) (refspec.Spec, error) {
	spec := refspec.Spec{Name: name}
	if body == nil {
		return spec, nil
	}
	if raw, ok := body["lag"]; ok {
		strs, err := asStringList(raw)
		if err != nil {
			return spec, fmt.Errorf("yamlconfig: %q lag: %w", name, err)
		}
		for _, s := range strs {
			d, err := temporal.ParseDuration(s)
			if err != nil {
				return spec, fmt.Errorf("yamlconfig: %q lag %q: %w", name, s, err)
			}
			spec.Lag = append(spec.Lag, d)
		}
	}
	if raw, ok := body["date"]; ok {
		strs, err := asStringList(raw)
		if err != nil {
			return spec, fmt.Errorf("yamlconfig: %q date: %w", name, err)
		}
		for _, s := range strs {
			d, err := temporal.ParseDate(s)
			if err != nil {
				return spec, fmt.Errorf("yamlconfig: %q date %q: %w", name, s, err)
			}
			spec.Date = append(spec.Date, d)
		}
	}
	if raw, ok := body["parameters"]; ok {
		pm, ok := asStringMap(raw)
		if !ok {
			return spec, fmt.Errorf("yamlconfig: %q parameters must be a mapping", name)
		}
		spec.Parameters = make(map[string]refspec.Selector, len(pm))
		for dim, sel := range pm {
			s, ok := sel.(string)
			if !ok {
				return spec, fmt.Errorf("yamlconfig: %q parameter %q selector must be a string", name, dim)
			}
			spec.Parameters[dim] = refspec.Selector(s)
		}
	}
	if raw, ok := body["when"]; ok {
		wm, ok := asStringMap(raw)
		if !ok {
			return spec, fmt.Errorf("yamlconfig: %q when must be a mapping", name)
		}
		guard := &refspec.Guard{}
		if err := parseGuardField(wm, "at", &guard.At); err != nil {
			return spec, fmt.Errorf("yamlconfig: %q when.at: %w", name, err)
		}
		if err := parseGuardField(wm, "before", &guard.Before); err != nil {
			return spec, fmt.Errorf("yamlconfig: %q when.before: %w", name, err)
		}
		if err := parseGuardField(wm, "after", &guard.After); err != nil {
			return spec, fmt.Errorf("yamlconfig: %q when.after: %w", name, err)
		}
		spec.When = guard
	}
	return spec, nil
}

func parseGuardField(m map[string]any, key string, dst **time.Time) error {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("expected a date-time string, got %T", raw)
	}
	t, err := temporal.ParseDate(s)
	if err != nil {
		return err
	}
	*dst = &t
	return nil
}

// asStringMap normalizes a decoded YAML mapping to map[string]any,
// regardless of whether the underlying library produced map[string]any or
// map[any]any for a generic interface{} target.
func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// asStringList accepts either a single string or a list of strings — `lag`
// and `date` may each be given as one value or several (spec.md §3).
func asStringList(v any) ([]string, error) {
	switch x := v.(type) {
	case string:
		return []string{x}, nil
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a string or list of strings, got %T", v)
	}
}
