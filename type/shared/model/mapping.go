package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type FieldColumn struct {
	Field  string
	Column string
}

// ColumnMapping maps template fields to spreadsheet columns. It decodes from a
// JSON object and keeps the object's key order.
type ColumnMapping []FieldColumn

func (m *ColumnMapping) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("column mapping must be a JSON object")
	}

	mapping := ColumnMapping{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected column mapping key %v", keyTok)
		}

		var column string
		if err := dec.Decode(&column); err != nil {
			return fmt.Errorf("column mapping %q: %w", key, err)
		}

		replaced := false
		for i := range mapping {
			if mapping[i].Field == key {
				mapping[i].Column = column
				replaced = true
			}
		}
		if !replaced {
			mapping = append(mapping, FieldColumn{Field: key, Column: column})
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = mapping
	return nil
}

func (m ColumnMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fc := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fc.Field)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(fc.Column)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
