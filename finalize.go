package livellm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// finalizeComponent converts the captured component block into either a
// live widget or a degraded fallback, replacing the skeleton in place.
// terminated reports whether the closing fence arrived; false means the
// stream ended mid-block.
func (s *Session) finalizeComponent(terminated bool) {
	typ := s.componentType
	node, err := s.buildWidget(typ, s.componentJSON.String(), terminated)
	if err != nil {
		node = NewFallbackNode(s.rawComponentText(terminated), s.theme)
		s.notify(EventComponentError{Type: typ, Err: err})
	} else {
		s.rendered++
		s.notify(EventComponentRendered{Type: typ})
	}

	if s.pending != nil {
		s.container.Replace(s.pending, node)
		s.pending = nil
	} else {
		s.container.Append(node)
	}

	s.componentType = ""
	s.componentJSON.Reset()
	s.fenceInfo = ""
	s.markDirty()
}

// buildWidget runs the finalization contract: size bound, JSON parse,
// registry lookup, schema validation with defaults, then instantiation.
// Every error wraps one of the block-local sentinels.
func (s *Session) buildWidget(typ, body string, terminated bool) (Node, error) {
	if len(body) > s.maxComponentBytes {
		return nil, fmt.Errorf("component body %d bytes exceeds %d byte bound: %w",
			len(body), s.maxComponentBytes, ErrParse)
	}

	props, err := s.parseProps(body, terminated)
	if err != nil {
		return nil, err
	}

	comp, ok := s.lookup(typ)
	if !ok {
		return nil, fmt.Errorf("component type %q: %w", typ, ErrUnknownComponent)
	}

	if schema := comp.Schema(); schema != nil {
		resolved, rerr := schema.Resolve(nil)
		if rerr != nil {
			return nil, fmt.Errorf("resolve schema for %q: %v: %w", typ, rerr, ErrValidation)
		}
		if derr := resolved.ApplyDefaults(&props); derr != nil {
			return nil, fmt.Errorf("apply defaults for %q: %v: %w", typ, derr, ErrValidation)
		}
		if verr := resolved.Validate(props); verr != nil {
			return nil, fmt.Errorf("props for %q: %v: %w", typ, verr, ErrValidation)
		}
	}

	return comp.Render(props), nil
}

// parseProps unmarshals the component body. When the block was cut off by
// End() and repair is enabled, a repair pass recovers truncated JSON
// (unclosed braces, dangling values) before giving up.
func (s *Session) parseProps(body string, terminated bool) (map[string]any, error) {
	trimmed := strings.TrimSpace(body)
	var props map[string]any
	err := json.Unmarshal([]byte(trimmed), &props)
	if err == nil {
		return props, nil
	}
	if !terminated && s.repair {
		if fixed, rerr := jsonrepair.JSONRepair(trimmed); rerr == nil {
			if json.Unmarshal([]byte(fixed), &props) == nil {
				return props, nil
			}
		}
	}
	return nil, fmt.Errorf("component body: %v: %w", err, ErrParse)
}

// rawComponentText reconstructs the original fenced source for fallback
// rendering.
func (s *Session) rawComponentText(terminated bool) string {
	raw := "```" + s.fenceInfo + "\n" + s.componentJSON.String()
	if terminated {
		if !strings.HasSuffix(raw, "\n") {
			raw += "\n"
		}
		raw += "```"
	}
	return raw
}
