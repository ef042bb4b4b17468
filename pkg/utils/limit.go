package utils

import (
	"errors"
	"io"
)

// ReadAllLimit reads r to the end but fails as soon as the input exceeds
// max bytes, so an oversized upload never gets buffered in full.
func ReadAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := io.LimitReader(r, max+1)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, errors.New("file too large")
	}
	return b, nil
}
