// Package normalize turns decoded RaMP API responses into flat tables.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

const Separator = "."

var (
	ErrUnrecognizedShape = errors.New("unrecognized response shape")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrDuplicateColumn   = errors.New("duplicate column")
)

type MalformedRecordError struct {
	Index int
	Value any
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at position %d: %s", ErrMalformedRecord, e.Index, e.Err)
	}
	return fmt.Sprintf("%s at position %d: expected an object, got %T", ErrMalformedRecord, e.Index, e.Value)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

type Row map[string]any

type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Values returns the rows projected onto the columns, in column order.
// Keys missing from a row are nil.
func (t *Table) Values() [][]any {
	values := make([][]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		v := make([]any, len(t.Columns))
		for i, c := range t.Columns {
			v[i] = row[c]
		}
		values = append(values, v)
	}
	return values
}

// Decode parses a response body holding exactly one JSON value, keeping
// numbers as json.Number. A body that is not JSON is an unrecognized shape.
func Decode(b []byte) (any, error) {
	var raw any

	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	if err := d.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: unable to decode response: %w", ErrUnrecognizedShape, err)
	}
	if err := d.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unable to decode response: unexpected content after JSON value", ErrUnrecognizedShape)
	}

	return raw, nil
}

// Normalize flattens the records held by raw into a Table. A single
// malformed record fails the whole batch, so a returned Table always has
// exactly one row per record.
func Normalize(raw any) (*Table, error) {
	envelope := Classify(raw)
	if envelope.Kind == Unrecognized {
		return nil, fmt.Errorf("%w: %T", ErrUnrecognizedShape, raw)
	}

	table := &Table{
		Columns: []string{},
		Rows:    make([]Row, 0, len(envelope.Records)),
	}
	seen := make(map[string]struct{})

	for i, r := range envelope.Records {
		record, ok := r.(map[string]any)
		if !ok {
			return nil, &MalformedRecordError{Index: i, Value: r}
		}

		row, err := Flatten(record)
		if err != nil {
			return nil, &MalformedRecordError{Index: i, Value: r, Err: err}
		}

		for _, k := range sortedKeys(row) {
			if _, found := seen[k]; !found {
				seen[k] = struct{}{}
				table.Columns = append(table.Columns, k)
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Flatten joins nested object keys with Separator. Arrays and empty
// objects are kept as their compact JSON text. Two fields flattening to the
// same column (a literal "a.b" next to a nested a.b) fail with
// ErrDuplicateColumn.
func Flatten(record map[string]any) (Row, error) {
	row := make(Row, len(record))
	if err := flatten(row, "", record); err != nil {
		return nil, err
	}
	return row, nil
}

func flatten(row Row, prefix string, record map[string]any) error {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + Separator + k
		}

		switch value := record[k].(type) {
		case map[string]any:
			if len(value) == 0 {
				if err := set(row, key, "{}"); err != nil {
					return err
				}
				continue
			}
			if err := flatten(row, key, value); err != nil {
				return err
			}
		case []any:
			b, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("unable to encode field %s: %w", key, err)
			}
			if err := set(row, key, string(b)); err != nil {
				return err
			}
		default:
			if err := set(row, key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func set(row Row, key string, value any) error {
	if _, found := row[key]; found {
		return fmt.Errorf("%w: %s", ErrDuplicateColumn, key)
	}
	row[key] = value
	return nil
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
