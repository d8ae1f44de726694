package palette

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"braces.dev/errtrace"
	"github.com/BurntSushi/toml"
	"go.abhg.dev/fixedfile/internal/errdefer"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// DefaultName is the name of the palette used when none is requested.
const DefaultName = "greyscale"

// Built-in palettes.
var (
	Greyscale = mustPreset(DefaultName, "fff", "ccc")
	Rainbow   = mustPreset("rainbow",
		"fff", "f88", "ffc088", "a2ff88", "88f9ff", "a288ff", "ff88ba")
)

func mustPreset(name string, colors ...string) Palette {
	p, err := ParseList(strings.Join(colors, ","))
	if err != nil {
		panic(fmt.Sprintf("bad preset %q: %v", name, err))
	}
	p.Name = name
	return p
}

// Registry is a collection of named palettes.
//
// Names are matched case-insensitively.
type Registry struct {
	palettes map[string]Palette // folded name => palette
}

// NewRegistry builds a registry holding the built-in presets.
func NewRegistry() *Registry {
	r := Registry{palettes: make(map[string]Palette)}
	r.Add(Greyscale)
	r.Add(Rainbow)
	r.alias("grayscale", Greyscale)
	return &r
}

func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Add adds a palette to the registry,
// replacing an existing palette with the same name.
func (r *Registry) Add(p Palette) {
	r.alias(p.Name, p)
}

func (r *Registry) alias(name string, p Palette) {
	if r.palettes == nil {
		r.palettes = make(map[string]Palette)
	}
	r.palettes[foldName(name)] = p
}

// Lookup retrieves a palette by name.
func (r *Registry) Lookup(name string) (Palette, bool) {
	p, ok := r.palettes[foldName(name)]
	return p, ok
}

// Names reports the names of all registered palettes, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.palettes))
	for name := range r.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a user-provided colour specification into a palette.
//
// The value is either the name of a registered palette,
// or a comma-separated list of hex triplets.
// An empty value selects the default palette.
func (r *Registry) Resolve(value string) (Palette, error) {
	if len(value) == 0 {
		value = DefaultName
	}
	if p, ok := r.Lookup(value); ok {
		return p, nil
	}

	p, err := ParseList(value)
	if err != nil {
		// A single word that isn't a colour was probably meant
		// to be a palette name.
		if !strings.Contains(value, ",") && !isHex(strings.TrimPrefix(value, "#")) {
			return Palette{}, errtrace.Errorf(
				"unknown palette %q: valid names are %q", value, r.Names())
		}
		return Palette{}, errtrace.Wrap(err)
	}
	return p, nil
}

// fileFormat is the structure of a palette file.
//
//	[palettes.ocean]
//	colors = ["#003f5c", "#58508d", "#bc5090"]
type fileFormat struct {
	Palettes map[string]filePalette `toml:"palettes" yaml:"palettes"`
}

type filePalette struct {
	Colors []string `toml:"colors" yaml:"colors"`
}

// LoadFile loads palettes from a TOML or YAML file
// and adds them to the registry.
// Files ending with .yaml or .yml are read as YAML,
// and all other files as TOML.
//
// Palettes in the file override presets with the same name.
func (r *Registry) LoadFile(path string) (err error) {
	var ff fileFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		ff, err = decodeYAML(path)
	default:
		ff, err = decodeTOML(path)
	}
	if err != nil {
		return errtrace.Wrap(err)
	}

	names := make([]string, 0, len(ff.Palettes))
	for name := range ff.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		colors := ff.Palettes[name].Colors
		if len(colors) == 0 {
			return errtrace.Errorf("%v: palette %q: %w", path, name, errNoColors)
		}

		p, err := ParseList(strings.Join(colors, ","))
		if err != nil {
			return errtrace.Errorf("%v: palette %q: %w", path, name, err)
		}
		p.Name = name
		r.Add(p)
	}
	return nil
}

func decodeTOML(path string) (fileFormat, error) {
	var ff fileFormat
	md, err := toml.DecodeFile(path, &ff)
	if err != nil {
		return ff, errtrace.Wrap(err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return ff, errtrace.Errorf("%v: unrecognized keys: %v", path, undecoded)
	}
	return ff, nil
}

func decodeYAML(path string) (_ fileFormat, err error) {
	var ff fileFormat
	f, err := os.Open(path)
	if err != nil {
		return ff, errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&ff); err != nil && !errors.Is(err, io.EOF) {
		return ff, errtrace.Errorf("%v: %w", path, err)
	}
	return ff, nil
}
