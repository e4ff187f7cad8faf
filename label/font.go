package label

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontRole selects which configured font a text operation uses.
type FontRole string

const (
	Regular FontRole = "regular"
	Bold    FontRole = "bold"
)

// FontSet maps font roles to font names. Names are resolved against Dirs
// unless they refer to one of the embedded Go fonts.
type FontSet struct {
	Regular string
	Bold    string
	Dirs    []string
}

// Name returns the configured font name for role.
func (s FontSet) Name(role FontRole) (string, error) {
	switch role {
	case Regular, "":
		return s.Regular, nil
	case Bold:
		return s.Bold, nil
	}
	return "", fmt.Errorf("unknown font role %q", role)
}

var builtinFonts = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
}

var errFontNotFound = errors.New("not found in any font directory")

// LoadFont resolves a font by name. A name matches a .ttf or .otf file
// whose stem equals it, ignoring case, anywhere below one of dirs.
func LoadFont(name string, dirs []string) (*opentype.Font, error) {
	if name == "" {
		return nil, &ResourceError{Name: name, Err: errors.New("no font configured")}
	}
	if data, ok := builtinFonts[strings.ToLower(name)]; ok {
		return parseFont(name, data)
	}

	path, err := findFont(name, dirs)
	if err != nil {
		return nil, &ResourceError{Name: name, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceError{Name: name, Err: err}
	}
	return parseFont(name, data)
}

func parseFont(name string, data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &ResourceError{Name: name, Err: fmt.Errorf("parse: %w", err)}
	}
	return f, nil
}

func findFont(name string, dirs []string) (string, error) {
	// An explicit path wins over a directory search.
	if strings.ContainsRune(name, filepath.Separator) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}

	want := strings.ToLower(strings.TrimSuffix(strings.TrimSuffix(name, ".ttf"), ".otf"))
	for _, dir := range dirs {
		var found string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtrees are skipped, a missing root just yields nothing.
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			base := strings.ToLower(d.Name())
			ext := filepath.Ext(base)
			if ext != ".ttf" && ext != ".otf" {
				return nil
			}
			if strings.TrimSuffix(base, ext) == want {
				found = path
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}
	return "", errFontNotFound
}
