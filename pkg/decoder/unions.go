package decoder

import (
	"strings"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/jsoncodec"
)

// avroType is the part of a schema needed to turn goavro's native union
// values ({"<branch>": value}) back into plain values.
type avroType struct {
	kind   string
	name   string
	fields map[string]*avroType
	items  *avroType
	values *avroType
	union  []*avroType
}

// parseShape reads the union layout of a schema document. It returns nil when
// the document is not JSON, in which case values are left as goavro returns them.
func parseShape(definition string) *avroType {
	var doc interface{}
	if err := jsoncodec.Unmarshal([]byte(definition), &doc); err != nil {
		return nil
	}
	return shapeOf(doc, "", map[string]*avroType{})
}

func shapeOf(schema interface{}, namespace string, names map[string]*avroType) *avroType {
	switch s := schema.(type) {
	case string:
		if t, ok := names[qualify(s, namespace)]; ok {
			return t
		}
		if t, ok := names[s]; ok {
			return t
		}
		return &avroType{name: s}

	case []interface{}:
		t := &avroType{kind: "union"}
		for _, branch := range s {
			t.union = append(t.union, shapeOf(branch, namespace, names))
		}
		return t

	case map[string]interface{}:
		typ, ok := s["type"].(string)
		if !ok {
			return shapeOf(s["type"], namespace, names)
		}
		switch typ {
		case "record", "error", "enum", "fixed":
			name, _ := s["name"].(string)
			if ns, ok := s["namespace"].(string); ok && !strings.Contains(name, ".") {
				namespace = ns
			}
			full := qualify(name, namespace)
			t := &avroType{kind: typ, name: full}
			names[full] = t
			if typ != "enum" && typ != "fixed" {
				t.kind = "record"
				t.fields = map[string]*avroType{}
				inner := namespaceOf(full)
				fields, _ := s["fields"].([]interface{})
				for _, f := range fields {
					field, ok := f.(map[string]interface{})
					if !ok {
						continue
					}
					fieldName, _ := field["name"].(string)
					t.fields[fieldName] = shapeOf(field["type"], inner, names)
				}
			}
			return t
		case "array":
			return &avroType{kind: "array", name: "array", items: shapeOf(s["items"], namespace, names)}
		case "map":
			return &avroType{kind: "map", name: "map", values: shapeOf(s["values"], namespace, names)}
		default:
			if lt, ok := s["logicalType"].(string); ok {
				return &avroType{name: typ + "." + lt}
			}
			return shapeOf(typ, namespace, names)
		}
	}
	return nil
}

func qualify(name, namespace string) string {
	if namespace == "" || strings.Contains(name, ".") {
		return name
	}
	return namespace + "." + name
}

func namespaceOf(full string) string {
	if i := strings.LastIndex(full, "."); i >= 0 {
		return full[:i]
	}
	return ""
}

// plain replaces every single-branch union map in v with the branch value.
// Values that do not match the shape are returned unchanged.
func (t *avroType) plain(v interface{}) interface{} {
	if t == nil || v == nil {
		return v
	}
	switch t.kind {
	case "union":
		m, ok := v.(map[string]interface{})
		if !ok || len(m) != 1 {
			return v
		}
		for branch, inner := range m {
			for _, b := range t.union {
				if b != nil && b.name == branch {
					return b.plain(inner)
				}
			}
		}
		return v

	case "record":
		m, ok := v.(map[string]interface{})
		if !ok {
			return v
		}
		out := make(map[string]interface{}, len(m))
		for k, fv := range m {
			out[k] = t.fields[k].plain(fv)
		}
		return out

	case "array":
		items, ok := v.([]interface{})
		if !ok {
			return v
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = t.items.plain(item)
		}
		return out

	case "map":
		m, ok := v.(map[string]interface{})
		if !ok {
			return v
		}
		out := make(map[string]interface{}, len(m))
		for k, mv := range m {
			out[k] = t.values.plain(mv)
		}
		return out
	}
	return v
}
