package label

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestFormatID(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "00000"},
		{7, "00007"},
		{42, "00042"},
		{1234, "01234"},
		{99999, "99999"},
	}
	for _, tt := range tests {
		if got := FormatID(tt.n); got != tt.want {
			t.Errorf("FormatID(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatIDWholeDomain(t *testing.T) {
	for n := 0; n <= MaxTag; n++ {
		id := FormatID(n)
		if len(id) != 5 {
			t.Fatalf("FormatID(%d) = %q, want 5 characters", n, id)
		}
		if strings.Trim(id, "0123456789") != "" {
			t.Fatalf("FormatID(%d) = %q contains non-digits", n, id)
		}
		back, err := strconv.Atoi(id)
		if err != nil || back != n {
			t.Fatalf("FormatID(%d) = %q does not parse back", n, id)
		}
	}
}

func TestRangeLen(t *testing.T) {
	tests := []struct {
		r    Range
		want int
	}{
		{Range{0, 0}, 1},
		{Range{0, 1}, 2},
		{Range{10, 19}, 10},
		{Range{5, 4}, 0},
		{Range{100, 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.r.Len(); got != tt.want {
			t.Errorf("%+v.Len() = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		r          Range
		dir        string
		wantDomain bool
		wantPath   bool
	}{
		{"valid", Range{0, 1}, dir, false, false},
		{"empty range", Range{10, 3}, dir, false, false},
		{"max", Range{99999, 99999}, dir, false, false},
		{"to above max", Range{0, 100000}, dir, true, false},
		{"negative from", Range{-1, 5}, dir, true, false},
		{"negative to", Range{0, -1}, dir, true, false},
		{"to above max beats bad path", Range{0, 100000}, file, true, false},
		{"path is file", Range{0, 1}, file, false, true},
		{"path missing", Range{0, 1}, filepath.Join(dir, "missing"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.r, tt.dir)
			var de *DomainError
			var pe *PathError
			if got := errors.As(err, &de); got != tt.wantDomain {
				t.Errorf("DomainError = %v, want %v (err: %v)", got, tt.wantDomain, err)
			}
			if got := errors.As(err, &pe); got != tt.wantPath {
				t.Errorf("PathError = %v, want %v (err: %v)", got, tt.wantPath, err)
			}
		})
	}
}

func TestValidateTag(t *testing.T) {
	for _, n := range []int{0, 1, 99999} {
		if err := ValidateTag(n); err != nil {
			t.Errorf("ValidateTag(%d) = %v", n, err)
		}
	}
	for _, n := range []int{-1, 100000} {
		var de *DomainError
		if err := ValidateTag(n); !errors.As(err, &de) {
			t.Errorf("ValidateTag(%d) = %v, want DomainError", n, err)
		}
	}
}
