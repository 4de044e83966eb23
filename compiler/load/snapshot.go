package load

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalSnapshot encodes the document as msgpack. Field names follow the
// JSON names of the document types and map keys are sorted, so equal
// documents give equal snapshots.
func MarshalSnapshot(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.SetSortMapKeys(true)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("load: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalSnapshot decodes a document encoded by MarshalSnapshot.
func UnmarshalSnapshot(b []byte) (*Document, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.SetCustomStructTag("json")
	doc := &Document{}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("load: decode snapshot: %w", err)
	}
	return doc, nil
}
