package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned by Decode when the payload is valid JSON but not an object.
var ErrNotObject = errors.New("document is not a JSON object")

// Decode parses a stored or transmitted document. Numbers stay json.Number so
// large point balances and decimal cash amounts keep their exact text.
func Decode(raw []byte) (Fragment, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	frag, ok := AsFragment(v)
	if !ok {
		return nil, ErrNotObject
	}
	return frag, nil
}

// DecodeList parses a JSON array of documents, as returned by list queries.
// Elements that are not objects are left out and their positions returned in
// skipped, so one bad element never fails the list.
func DecodeList(raw []byte) (docs []Fragment, skipped []int, err error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, nil, fmt.Errorf("decode document list: %w", err)
	}
	docs = make([]Fragment, 0, len(items))
	for i, item := range items {
		frag, ok := AsFragment(item)
		if !ok {
			skipped = append(skipped, i)
			continue
		}
		docs = append(docs, frag)
	}
	return docs, skipped, nil
}

// Encode serializes a fragment for storage.
func Encode(frag Fragment) ([]byte, error) {
	if frag == nil {
		return nil, ErrNotObject
	}
	return json.Marshal(frag)
}
