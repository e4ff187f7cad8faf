package label

import (
	"fmt"
	"sort"
	"strings"
)

// IDPlaceholder is replaced by the formatted tag identifier in text
// operations.
const IDPlaceholder = "{id}"

// dpi is the pixel pitch the label stock is designed at.
const dpi = 96

// OpKind is the type of a draw operation.
type OpKind string

const (
	OpText OpKind = "text"
	OpQR   OpKind = "qr"
)

// Op is one draw operation on a canvas. Text ops use Text, Font and Size;
// QR ops use ModuleSize and always encode the tag identifier.
type Op struct {
	Kind       OpKind   `yaml:"kind"`
	X          int      `yaml:"x"`
	Y          int      `yaml:"y"`
	Text       string   `yaml:"text,omitempty"`
	Font       FontRole `yaml:"font,omitempty"`
	Size       float64  `yaml:"size,omitempty"`
	ModuleSize int      `yaml:"module_size,omitempty"`
}

// Canvas is one output image of a layout. Suffix is appended to the tag
// number in the output file name.
type Canvas struct {
	Suffix string `yaml:"suffix"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Ops    []Op   `yaml:"ops"`
}

// Layout is a named arrangement of canvases produced for every tag.
type Layout struct {
	Name     string   `yaml:"name"`
	Canvases []Canvas `yaml:"canvases"`
}

// Standard is the single-canvas label: caption and identifier on the left,
// QR code on the right.
var Standard = Layout{
	Name: "standard",
	Canvases: []Canvas{{
		Width:  35 * dpi,
		Height: 10 * dpi,
		Ops: []Op{
			{Kind: OpText, X: 7 * dpi, Y: 150, Text: "μLab Asset", Font: Regular, Size: 227},
			{Kind: OpText, X: 7 * dpi, Y: 550, Text: IDPlaceholder, Font: Regular, Size: 227},
			{Kind: OpQR, X: 2000, Y: 150, ModuleSize: 30},
		},
	}},
}

// Dual produces a large label plus a small square one for tight spots.
var Dual = Layout{
	Name: "dual",
	Canvases: []Canvas{
		{
			Width:  32 * dpi,
			Height: 9 * dpi,
			Ops: []Op{
				{Kind: OpText, X: dpi, Y: 100, Text: "EE μLab Asset", Font: Bold, Size: 227},
				{Kind: OpText, X: dpi, Y: 470, Text: IDPlaceholder, Font: Bold, Size: 227},
				{Kind: OpQR, X: 2200, Y: 117, ModuleSize: 30},
			},
		},
		{
			Suffix: "_small",
			Width:  9 * dpi,
			Height: 9 * dpi,
			Ops: []Op{
				{Kind: OpText, X: dpi, Y: 40, Text: "EE μLab " + IDPlaceholder, Font: Bold, Size: 72},
				{Kind: OpQR, X: dpi, Y: 168, ModuleSize: 32},
			},
		},
	},
}

// Builtin returns the layouts that ship with the tool, keyed by name.
func Builtin() map[string]Layout {
	return map[string]Layout{
		Standard.Name: Standard,
		Dual.Name:     Dual,
	}
}

// Names returns the sorted keys of layouts.
func Names(layouts map[string]Layout) []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the layout for structural mistakes. It does not check
// that QR codes fit; that depends on the payload and is checked at render
// time.
func (l Layout) Validate() error {
	if len(l.Canvases) == 0 {
		return fmt.Errorf("layout %q: no canvases", l.Name)
	}
	suffixes := make(map[string]bool, len(l.Canvases))
	for i, c := range l.Canvases {
		if suffixes[c.Suffix] {
			return fmt.Errorf("layout %q: duplicate canvas suffix %q", l.Name, c.Suffix)
		}
		suffixes[c.Suffix] = true
		if strings.ContainsAny(c.Suffix, `/\`) {
			return fmt.Errorf("layout %q: canvas suffix %q contains a path separator", l.Name, c.Suffix)
		}
		// File names are <tag><suffix>, so a leading digit would read as
		// part of the tag number.
		if c.Suffix != "" && c.Suffix[0] >= '0' && c.Suffix[0] <= '9' {
			return fmt.Errorf("layout %q: canvas suffix %q starts with a digit", l.Name, c.Suffix)
		}
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("layout %q: canvas %d has size %dx%d", l.Name, i, c.Width, c.Height)
		}
		for j, op := range c.Ops {
			switch op.Kind {
			case OpText:
				if op.Size <= 0 {
					return fmt.Errorf("layout %q: canvas %d op %d: font size %v", l.Name, i, j, op.Size)
				}
				if op.Font != "" && op.Font != Regular && op.Font != Bold {
					return fmt.Errorf("layout %q: canvas %d op %d: unknown font %q", l.Name, i, j, op.Font)
				}
			case OpQR:
				if op.ModuleSize <= 0 {
					return fmt.Errorf("layout %q: canvas %d op %d: module size %d", l.Name, i, j, op.ModuleSize)
				}
			default:
				return fmt.Errorf("layout %q: canvas %d op %d: unknown kind %q", l.Name, i, j, op.Kind)
			}
		}
	}
	return nil
}

// FileName returns the output file name of canvas c for tag n. The raw
// tag number is used, not the padded identifier.
func (c Canvas) FileName(n int) string {
	return fmt.Sprintf("%d%s.png", n, c.Suffix)
}

// fontRoles lists the distinct font roles used by text ops.
func (l Layout) fontRoles() []FontRole {
	seen := map[FontRole]bool{}
	var roles []FontRole
	for _, c := range l.Canvases {
		for _, op := range c.Ops {
			if op.Kind != OpText {
				continue
			}
			role := op.Font
			if role == "" {
				role = Regular
			}
			if !seen[role] {
				seen[role] = true
				roles = append(roles, role)
			}
		}
	}
	return roles
}
