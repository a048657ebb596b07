package listing

// Record is a loosely typed record as received from the CMS or another backend.
// Identity is always read from "id": call NormalizeRecord on ingestion so that
// records using the "_id" convention are mapped once, at the boundary.
type Record map[string]any

func (r Record) Identity() string {
	v, ok := r["id"]
	if !ok || v == nil {
		return ""
	}
	return toString(v)
}

// NormalizeRecord returns a copy of r whose identity lives in "id".
// A present, non-empty "id" wins over "_id".
func NormalizeRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	raw, hasRaw := out["_id"]
	if !hasRaw {
		return out
	}
	delete(out, "_id")
	if id, ok := out["id"]; ok && id != nil && toString(id) != "" {
		return out
	}
	out["id"] = raw
	return out
}

func NormalizeRecords(rs []Record) []Record {
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = NormalizeRecord(r)
	}
	return out
}

// RecordField is the accessor for a top-level key of a Record.
func RecordField(name string) Accessor[Record] {
	return func(r Record) (any, bool) {
		v, ok := r[name]
		return v, ok
	}
}

// RecordFields registers RecordField accessors for every name.
func RecordFields(names ...string) map[string]Accessor[Record] {
	out := make(map[string]Accessor[Record], len(names))
	for _, n := range names {
		out[n] = RecordField(n)
	}
	return out
}

// MergeRecord returns an update func applying a shallow merge of partial.
// The identity key is never overwritten.
func MergeRecord(partial Record) func(Record) Record {
	return func(r Record) Record {
		out := make(Record, len(r)+len(partial))
		for k, v := range r {
			out[k] = v
		}
		for k, v := range partial {
			if k == "id" || k == "_id" {
				continue
			}
			out[k] = v
		}
		return out
	}
}
