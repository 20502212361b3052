package frame

import "strings"

// structuralKeys are container-structural header keys that are
// re-derived on write and must never be carried in a Frame's header
// list.
var structuralKeys = map[string]bool{
	"SIMPLE": true, "EXTEND": true, "BITPIX": true,
}

func isStructuralKey(key string) bool {
	if structuralKeys[key] {
		return true
	}
	return strings.HasPrefix(key, "NAXIS")
}

// Record is one fixed-length (<=80 char) header record, keyed by the
// portion before the first '='.
type Record struct {
	Key   string
	Value string
}

// HeaderList is an ordered, duplicate-tolerant sequence of header
// records, backed by a contiguous slice rather than a linked list
// since middle deletion is rare.
type HeaderList struct {
	records []Record
}

// NewHeaderList returns an empty header list.
func NewHeaderList() *HeaderList {
	return &HeaderList{}
}

// Clone returns an independent copy preserving insertion order.
func (h *HeaderList) Clone() *HeaderList {
	out := &HeaderList{records: make([]Record, len(h.records))}
	copy(out.records, h.records)
	return out
}

// Add appends a record, rejecting container-structural keys, which
// are re-derived on write by the I/O collaborator rather than carried
// through the pipeline.
func (h *HeaderList) Add(key, value string) {
	if isStructuralKey(key) {
		return
	}
	h.records = append(h.records, Record{Key: key, Value: value})
}

// AddComment appends a COMMENT record documenting a stage's operation.
func (h *HeaderList) AddComment(text string) {
	h.records = append(h.records, Record{Key: "COMMENT", Value: text})
}

// AddHistory appends a HISTORY record.
func (h *HeaderList) AddHistory(text string) {
	h.records = append(h.records, Record{Key: "HISTORY", Value: text})
}

// Records returns the header records in insertion order.
func (h *HeaderList) Records() []Record {
	return h.records
}

// FindByPrefix returns every record whose key starts with prefix, in
// insertion order.
func (h *HeaderList) FindByPrefix(prefix string) []Record {
	var out []Record
	for _, r := range h.records {
		if strings.HasPrefix(r.Key, prefix) {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the first record with the given key and whether it was
// found.
func (h *HeaderList) Find(key string) (Record, bool) {
	for _, r := range h.records {
		if r.Key == key {
			return r, true
		}
	}
	return Record{}, false
}

// Modify updates the value of the first record matching key; it is a
// no-op if no such record exists.
func (h *HeaderList) Modify(key, newValue string) {
	for i := range h.records {
		if h.records[i].Key == key {
			h.records[i].Value = newValue
			return
		}
	}
}

// RemoveKey deletes every record with the given key.
func (h *HeaderList) RemoveKey(key string) {
	h.filterOut(func(r Record) bool { return r.Key == key })
}

// RemoveSubstring deletes every record whose value contains sub.
func (h *HeaderList) RemoveSubstring(sub string) {
	h.filterOut(func(r Record) bool { return strings.Contains(r.Value, sub) })
}

func (h *HeaderList) filterOut(drop func(Record) bool) {
	kept := h.records[:0]
	for _, r := range h.records {
		if !drop(r) {
			kept = append(kept, r)
		}
	}
	h.records = kept
}

// Len reports the number of records.
func (h *HeaderList) Len() int {
	return len(h.records)
}
