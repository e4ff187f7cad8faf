// Package label renders asset-tag label images: text plus a QR code
// carrying the zero-padded tag identifier, laid out on one or more 1-bit
// canvases per tag.
package label

import (
	"fmt"
	"os"
)

// MaxTag is the largest tag number that fits in a 5-digit identifier.
const MaxTag = 99999

// Range is an inclusive interval of tag numbers. From > To is an empty
// range.
type Range struct {
	From int
	To   int
}

// Len returns the number of tags in the range.
func (r Range) Len() int {
	if r.From > r.To {
		return 0
	}
	return r.To - r.From + 1
}

// FormatID returns the 5-digit zero-padded identifier for tag n. The same
// string is printed on the label and encoded in the QR code.
func FormatID(n int) string {
	return fmt.Sprintf("%05d", n)
}

// ValidateTag checks a single tag number.
func ValidateTag(n int) error {
	if n > MaxTag {
		return &DomainError{Field: "tag", Value: n, Msg: "cannot handle asset tag numbers above 99999"}
	}
	if n < 0 {
		return &DomainError{Field: "tag", Value: n, Msg: "cannot handle negative asset tag numbers"}
	}
	return nil
}

// Validate rejects a request before any rendering starts.
func Validate(r Range, dir string) error {
	if r.To > MaxTag {
		return &DomainError{Field: "tags-to", Value: r.To, Msg: "cannot handle asset tag numbers above 99999"}
	}
	if r.To < 0 {
		return &DomainError{Field: "tags-to", Value: r.To, Msg: "cannot handle negative asset tag numbers"}
	}
	if r.From < 0 {
		return &DomainError{Field: "tags-from", Value: r.From, Msg: "cannot handle negative asset tag numbers"}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return &PathError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &PathError{Path: dir}
	}
	return nil
}
