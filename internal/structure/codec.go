package structure

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wire form of a Structure: the kind tag travels next to the
// variant's own fields.
type Envelope struct {
	Kind Kind            `json:"kind" yaml:"kind"`
	Data json.RawMessage `json:"data" yaml:"-"`
}

func Wrap(s Structure) (Envelope, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return Envelope{}, fmt.Errorf("structure: encode %s: %w", s.Kind(), err)
	}
	return Envelope{Kind: s.Kind(), Data: data}, nil
}

// New returns an empty value of the given kind, ready to decode into.
func New(k Kind) (Structure, error) {
	switch k {
	case KindArray:
		return &Array{}, nil
	case KindLinkedList:
		return &LinkedList{Head: -1}, nil
	case KindStack:
		return &Stack{}, nil
	case KindQueue:
		return &Queue{}, nil
	case KindBinaryTree:
		return &BinaryTree{Root: -1}, nil
	case KindHashTable:
		return &HashTable{}, nil
	case KindGraph:
		return &Graph{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

func (e Envelope) Unwrap() (Structure, error) {
	s, err := New(e.Kind)
	if err != nil {
		return nil, err
	}
	if len(e.Data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(e.Data, s); err != nil {
		return nil, fmt.Errorf("structure: decode %s: %w", e.Kind, err)
	}
	return s, nil
}

// FromValues builds a linear structure of kind k from plain values.
func FromValues(k Kind, values []int) (Structure, error) {
	switch k {
	case KindArray:
		return &Array{Values: cloneInts(values)}, nil
	case KindStack:
		return &Stack{Values: cloneInts(values)}, nil
	case KindQueue:
		return &Queue{Values: cloneInts(values)}, nil
	case KindLinkedList:
		return NewLinkedList(values), nil
	case KindBinaryTree:
		t := &BinaryTree{Root: -1}
		for _, v := range values {
			if err := t.Insert(v); err != nil {
				return nil, err
			}
		}
		return t, nil
	case KindHashTable:
		h := NewHashTable(DefaultBuckets)
		for _, v := range values {
			b := h.Bucket(v)
			h.Buckets[b] = append(h.Buckets[b], v)
		}
		return h, nil
	}
	return nil, fmt.Errorf("%w: %q cannot be built from values", ErrUnknownKind, k)
}

// DefaultBuckets is the bucket count used when a hash table is built from values.
const DefaultBuckets = 7
