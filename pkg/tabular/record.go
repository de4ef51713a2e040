package tabular

// Record is an ordered set of named cells. Field order is insertion
// order, which keeps output columns stable across runs.
type Record struct {
	fields []string
	values map[string]string
}

// NewRecord creates an empty record
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores a cell value. The first Set of a field fixes its position.
func (r *Record) Set(field, value string) *Record {
	if _, ok := r.values[field]; !ok {
		r.fields = append(r.fields, field)
	}
	r.values[field] = value
	return r
}

// Get returns the cell value for field and whether it is present
func (r *Record) Get(field string) (string, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Fields returns the field names in insertion order
func (r *Record) Fields() []string {
	return r.fields
}

// Len returns the number of cells in the record
func (r *Record) Len() int {
	return len(r.fields)
}

// UnionFields returns the union of all field names across records in
// first-seen order.
func UnionFields(records []*Record) []string {
	var header []string
	seen := make(map[string]bool)
	for _, record := range records {
		for _, field := range record.Fields() {
			if !seen[field] {
				seen[field] = true
				header = append(header, field)
			}
		}
	}
	return header
}
