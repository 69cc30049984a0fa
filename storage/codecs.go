package storage

import (
	"errors"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode marshals a record to msgpack for storage.
func Encode[T any](value T) ([]byte, error) {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return nil, errors.Join(ErrEncodeFailed, err)
	}
	return data, nil
}

// Decode unmarshals a stored msgpack record. A decode failure means the
// stored record is malformed and is reported, not swallowed.
func Decode[T any](data []byte) (T, error) {
	var value T
	if err := msgpack.Unmarshal(data, &value); err != nil {
		return value, errors.Join(ErrDecodeFailed, err)
	}
	return value, nil
}
