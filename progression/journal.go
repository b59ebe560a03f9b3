package progression

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// FieldKind tags one variant of a journal schema field
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldSlider   FieldKind = "slider"
	FieldCheckbox FieldKind = "checkbox"
	FieldChips    FieldKind = "chips"
	FieldGroup    FieldKind = "group"
)

// Field is one entry of a unit's journal schema. Units declare their schema as
// an ordered JSON list of fields; group fields nest their members in Fields.
type Field struct {
	Kind    FieldKind `json:"kind"`
	Key     string    `json:"key"`
	Label   string    `json:"label,omitempty"`
	Min     *int      `json:"min,omitempty"`
	Max     *int      `json:"max,omitempty"`
	Options []string  `json:"options,omitempty"`
	Fields  []Field   `json:"fields,omitempty"`
}

// ParseJournal decodes a unit's journal schema column. An empty column means
// the unit declares no journal fields.
func ParseJournal(raw datatypes.JSON) ([]Field, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var fields []Field
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// HasTextPrompts reports whether the schema declares any free-text question,
// descending into groups.
func HasTextPrompts(fields []Field) bool {
	for _, f := range fields {
		switch f.Kind {
		case FieldText:
			return true
		case FieldGroup:
			if HasTextPrompts(f.Fields) {
				return true
			}
		}
	}
	return false
}

// FieldAnswered reports whether data holds a usable answer for the field. A
// group counts as answered when any of its members is.
func FieldAnswered(f Field, data map[string]interface{}) bool {
	switch f.Kind {
	case FieldText:
		s, ok := data[f.Key].(string)
		return ok && strings.TrimSpace(s) != ""
	case FieldSlider:
		switch data[f.Key].(type) {
		case float64, int:
			return true
		}
		return false
	case FieldCheckbox:
		b, ok := data[f.Key].(bool)
		return ok && b
	case FieldChips:
		items, ok := data[f.Key].([]interface{})
		return ok && len(items) > 0
	case FieldGroup:
		for _, sub := range f.Fields {
			if FieldAnswered(sub, data) {
				return true
			}
		}
		return false
	}
	return false
}

// AnyTextAnswered reports whether any non-empty string value exists anywhere in
// the answer document, including nested maps and lists. Day completion only
// requires one such value when the unit declares text prompts; it does not
// match answers to individual questions.
func AnyTextAnswered(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case map[string]interface{}:
		for _, item := range v {
			if AnyTextAnswered(item) {
				return true
			}
		}
	case []interface{}:
		for _, item := range v {
			if AnyTextAnswered(item) {
				return true
			}
		}
	}
	return false
}
