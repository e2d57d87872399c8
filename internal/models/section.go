package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// IndividualPrefix prefixes every line item list key
	IndividualPrefix = "individual_"
	// TotalPrefix prefixes every aggregate list key
	TotalPrefix = "total_"

	KeyPublicExpenseSummary           = "public_expense_summary"
	KeyPublicExpenseEquivalentSummary = "public_expense_equivalent_summary"
	KeyChecksum                       = "json_checksum"
)

// Section is the extraction result of one sheet, written as one JSON document.
// Fields keep insertion order when serialized.
type Section struct {
	Name string // document name without extension, e.g. "personnel_data"
	Path string // set once the document has been written

	fields      []sectionField
	checksum    Amount
	hasChecksum bool
}

type sectionField struct {
	key   string
	value any
}

// NewSection creates an empty section
func NewSection(name string) *Section {
	return &Section{Name: name}
}

// AddItems appends an individual_<name> list
func (s *Section) AddItems(name string, items []*LineItem) {
	if items == nil {
		items = []*LineItem{}
	}
	s.set(IndividualPrefix+name, items)
}

// AddTotals appends a total_<name> list
func (s *Section) AddTotals(name string, rows []AggregateRow) {
	if rows == nil {
		rows = []AggregateRow{}
	}
	s.set(TotalPrefix+name, rows)
}

// Set stores an arbitrary field under key
func (s *Section) Set(key string, value any) {
	s.set(key, value)
}

func (s *Section) set(key string, value any) {
	for i := range s.fields {
		if s.fields[i].key == key {
			s.fields[i].value = value
			return
		}
	}
	s.fields = append(s.fields, sectionField{key: key, value: value})
}

// Get returns the value stored under key
func (s *Section) Get(key string) (any, bool) {
	for _, f := range s.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// Keys returns the field keys in insertion order, json_checksum last when present
func (s *Section) Keys() []string {
	keys := make([]string, 0, len(s.fields)+1)
	for _, f := range s.fields {
		keys = append(keys, f.key)
	}
	if s.hasChecksum {
		keys = append(keys, KeyChecksum)
	}
	return keys
}

// AddChecksum adds a declared subtotal to the section checksum
func (s *Section) AddChecksum(a Amount) {
	s.checksum = s.checksum.Add(a)
	s.hasChecksum = true
}

// Checksum returns the declared checksum, zero when none was captured
func (s *Section) Checksum() Amount { return s.checksum }

// HasChecksum reports whether any block declared a checksum
func (s *Section) HasChecksum() bool { return s.hasChecksum }

// ItemLists returns every individual_ list in insertion order
func (s *Section) ItemLists() [][]*LineItem {
	var lists [][]*LineItem
	for _, f := range s.fields {
		if !strings.HasPrefix(f.key, IndividualPrefix) {
			continue
		}
		if items, ok := f.value.([]*LineItem); ok {
			lists = append(lists, items)
		}
	}
	return lists
}

// Items flattens every individual_ list in insertion order
func (s *Section) Items() []*LineItem {
	var items []*LineItem
	for _, list := range s.ItemLists() {
		items = append(items, list...)
	}
	return items
}

// Source identifies the section in diagnostics: the written path, else the name
func (s *Section) Source() string {
	if s.Path != "" {
		return s.Path
	}
	return s.Name
}

// IsSummary reports whether the section only restates totals
func (s *Section) IsSummary() bool {
	return IsSummarySource(s.Source())
}

// IsSummarySource reports whether a document path names an aggregate-only section.
// Only the document name counts, so a folder called "summary" changes nothing.
func IsSummarySource(path string) bool {
	return strings.Contains(filepath.Base(path), "summary")
}

// MarshalJSON writes the fields in insertion order
func (s *Section) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(i int, key string, value any) error {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := marshalNoEscape(value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}
	for i, f := range s.fields {
		if err := write(i, f.key, f.value); err != nil {
			return nil, err
		}
	}
	if s.hasChecksum {
		if err := write(len(s.fields), KeyChecksum, s.checksum); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
