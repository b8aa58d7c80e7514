// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/glenda"
)

// Description errors.
var (
	// ErrUnknownFormat is returned for file extensions other than .toml,
	// .yaml and .yml.
	ErrUnknownFormat = errors.New("layout: unknown format")

	// ErrUnknownField is returned when a description has keys no node uses.
	ErrUnknownField = errors.New("layout: unknown field")

	// ErrUnknownNode is returned for an unrecognized node type.
	ErrUnknownNode = errors.New("layout: unknown node type")

	// ErrChildren is returned when a node has the wrong number of children.
	ErrChildren = errors.New("layout: wrong number of children")

	// ErrInvalidColor is returned for colors that are neither hex nor a
	// known color name.
	ErrInvalidColor = errors.New("layout: invalid color")

	// ErrMissingField is returned when a node lacks a required key.
	ErrMissingField = errors.New("layout: missing field")
)

// Format is a description syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath selects a format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Node types.
const (
	TypeHSplit  = "hsplit"
	TypeVSplit  = "vsplit"
	TypeInset   = "inset"
	TypeAspect  = "aspect"
	TypeColor   = "color"
	TypeImage   = "image"
	TypeText    = "text"
	TypeTilemap = "tilemap"
	TypeNull    = "null"
)

// Config is a complete description.
type Config struct {
	// Background clears the frame before drawing. Empty means transparent.
	Background string `toml:"background" yaml:"background"`
	Root       Node   `toml:"root" yaml:"root"`

	// dir resolves relative paths; Load sets it to the file's directory.
	dir string
}

// Dir returns the directory relative image paths are resolved against.
func (c *Config) Dir() string { return c.dir }

// Node is one renderer in the tree. Which fields apply depends on Type.
type Node struct {
	Type string `toml:"type" yaml:"type"`

	// hsplit, vsplit: split point ("300px", "300", "0.5", "25%").
	At string `toml:"at" yaml:"at"`
	// inset: border width in pixels.
	Inset int `toml:"inset" yaml:"inset"`
	// aspect: width / height.
	Aspect float64 `toml:"aspect" yaml:"aspect"`

	// color, text: fill or glyph color.
	Color string `toml:"color" yaml:"color"`

	// image: file to show, optionally scaled to Width x Height.
	// tilemap: tileset image.
	Path   string `toml:"path" yaml:"path"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`

	// text
	Text     string  `toml:"text" yaml:"text"`
	FontSize float64 `toml:"font_size" yaml:"font_size"`

	// tilemap: tiles of TileWidth x TileHeight texels, Columns tiles per
	// map row, indices row by row from the top.
	TileWidth  int      `toml:"tile_width" yaml:"tile_width"`
	TileHeight int      `toml:"tile_height" yaml:"tile_height"`
	Columns    int      `toml:"columns" yaml:"columns"`
	Tiles      []uint16 `toml:"tiles" yaml:"tiles"`

	// hsplit, vsplit, inset: two children (first, second or outer, inner).
	// aspect: one child.
	Children []Node `toml:"children" yaml:"children"`
}

// Load reads and validates a description file.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Decode parses and validates a description. Keys that no node uses are
// rejected with ErrUnknownField.
func Decode(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, keys[0])
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			if strings.Contains(err.Error(), "not found in type") {
				return nil, fmt.Errorf("%w: %v", ErrUnknownField, err)
			}
			return nil, fmt.Errorf("layout: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks node types, child counts and field values.
func (c *Config) Validate() error {
	if c.Background != "" {
		if _, err := ParseColor(c.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	return c.Root.validate("root")
}

func (n *Node) validate(path string) error {
	want := 0
	switch n.Type {
	case TypeHSplit, TypeVSplit:
		want = 2
		if _, err := glenda.ParseSplitPoint(n.splitAt()); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	case TypeInset:
		want = 2
		if n.Inset < 0 {
			return fmt.Errorf("%s: %w: %d", path, glenda.ErrInvalidInset, n.Inset)
		}
	case TypeAspect:
		want = 1
		if !(n.Aspect > 0) {
			return fmt.Errorf("%s: %w: %v", path, glenda.ErrInvalidAspectRatio, n.Aspect)
		}
	case TypeColor:
		if _, err := ParseColor(n.Color); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	case TypeText:
		if n.Color != "" {
			if _, err := ParseColor(n.Color); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
	case TypeImage:
		if n.Path == "" {
			return fmt.Errorf("%s: %w: path", path, ErrMissingField)
		}
	case TypeTilemap:
		switch {
		case n.Path == "":
			return fmt.Errorf("%s: %w: path", path, ErrMissingField)
		case n.TileWidth <= 0 || n.TileHeight <= 0:
			return fmt.Errorf("%s: %w: tile_width and tile_height", path, ErrMissingField)
		case n.Columns <= 0:
			return fmt.Errorf("%s: %w: columns", path, ErrMissingField)
		}
	case TypeNull:
	default:
		return fmt.Errorf("%s: %w: %q", path, ErrUnknownNode, n.Type)
	}
	if len(n.Children) != want {
		return fmt.Errorf("%s: %w: %s has %d, want %d", path, ErrChildren, n.Type, len(n.Children), want)
	}
	for i := range n.Children {
		if err := n.Children[i].validate(path + "." + n.Type + "[" + strconv.Itoa(i) + "]"); err != nil {
			return err
		}
	}
	return nil
}

// splitAt defaults an empty split point to half.
func (n *Node) splitAt() string {
	if n.At == "" {
		return "0.5"
	}
	return n.At
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" and SVG color names
// such as "cornflowerblue".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	nrgba := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(nrgba).(color.RGBA), nil
}
