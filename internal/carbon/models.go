package carbon

import (
	"bytes"
	"encoding/json"
)

// RegionKeys are the record fields copied into responses as region metadata.
var RegionKeys = []string{"region", "shortname", "regionid", "dnoregion"}

// Intensity is the value of the upstream "data" field. It is relayed to
// callers byte-for-byte; only region metadata is ever read out of it.
type Intensity json.RawMessage

// MarshalJSON emits the upstream bytes unchanged.
func (i Intensity) MarshalJSON() ([]byte, error) {
	if len(i) == 0 {
		return []byte("null"), nil
	}
	return i, nil
}

// UnmarshalJSON keeps a copy of the raw bytes.
func (i *Intensity) UnmarshalJSON(b []byte) error {
	*i = append((*i)[:0], b...)
	return nil
}

// RegionMetadata holds the RegionKeys present on a record, as raw JSON values.
type RegionMetadata map[string]json.RawMessage

// Region extracts region metadata from the first record.
//
// A JSON array yields its first element; a JSON object is itself the record.
// Anything else, an empty array or a first element that is not an object
// produces an empty result. Keys absent from the record are left out.
func (i Intensity) Region() RegionMetadata {
	first, ok := i.firstRecord()
	if !ok {
		return nil
	}

	meta := make(RegionMetadata, len(RegionKeys))
	for _, k := range RegionKeys {
		if v, ok := first[k]; ok {
			meta[k] = v
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func (i Intensity) firstRecord() (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(i)
	if len(trimmed) == 0 {
		return nil, false
	}

	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil || len(records) == 0 {
			return nil, false
		}
		return decodeRecord(records[0])
	case '{':
		return decodeRecord(trimmed)
	default:
		return nil, false
	}
}

func decodeRecord(b json.RawMessage) (map[string]json.RawMessage, bool) {
	var rec map[string]json.RawMessage
	if err := json.Unmarshal(b, &rec); err != nil || rec == nil {
		return nil, false
	}
	return rec, true
}

// Envelope is the response body for a regional query: the upstream data plus
// the outward code and whatever region metadata the first record carries.
func Envelope(postcode string, data Intensity) map[string]any {
	body := map[string]any{
		"data":     data,
		"postcode": OutwardCode(postcode),
	}
	for k, v := range data.Region() {
		body[k] = v
	}
	return body
}
