// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gogpu/glenda"
)

const sampleTOML = `
background = "#102030"

[root]
type = "hsplit"
at = "25%"

  [[root.children]]
  type = "color"
  color = "red"

  [[root.children]]
  type = "inset"
  inset = 4

    [[root.children.children]]
    type = "color"
    color = "#00f"

    [[root.children.children]]
    type = "aspect"
    aspect = 2.0

      [[root.children.children.children]]
      type = "text"
      text = "hello"
      font_size = 12.0
`

const sampleYAML = `
background: "#102030"
root:
  type: hsplit
  at: 25%
  children:
    - type: color
      color: red
    - type: inset
      inset: 4
      children:
        - type: color
          color: "#00f"
        - type: aspect
          aspect: 2.0
          children:
            - type: text
              text: hello
              font_size: 12
`

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.toml", FormatTOML, false},
		{"dir/A.TOML", FormatTOML, false},
		{"a.yaml", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.json", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("FormatFromPath(%q) err = %v, want ErrUnknownFormat", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v, want %q", tt.path, got, err, tt.want)
		}
	}
}

func TestDecodeTOMLAndYAMLAgree(t *testing.T) {
	fromTOML, err := Decode([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Decode(toml): %v", err)
	}
	fromYAML, err := Decode([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode(yaml): %v", err)
	}
	if !reflect.DeepEqual(fromTOML, fromYAML) {
		t.Errorf("toml and yaml differ:\n%+v\n%+v", fromTOML, fromYAML)
	}

	root := fromTOML.Root
	if root.Type != TypeHSplit || root.At != "25%" || len(root.Children) != 2 {
		t.Fatalf("root = %+v", root)
	}
	text := root.Children[1].Children[1].Children[0]
	if text.Type != TypeText || text.Text != "hello" || text.FontSize != 12 {
		t.Errorf("text node = %+v", text)
	}
}

func TestDecodeUnknownField(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"toml", "[root]\ntype = \"null\"\ncolour = \"red\"\n", FormatTOML},
		{"yaml", "root:\n  type: \"null\"\n  colour: red\n", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data), tt.format); !errors.Is(err, ErrUnknownField) {
				t.Errorf("Decode() err = %v, want ErrUnknownField", err)
			}
		})
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	if _, err := Decode([]byte("[root"), FormatTOML); err == nil {
		t.Error("Decode(bad toml) err = nil")
	}
	if _, err := Decode([]byte("root: [\n"), FormatYAML); err == nil {
		t.Error("Decode(bad yaml) err = nil")
	}
	if _, err := Decode(nil, "ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Decode(ini) err = %v, want ErrUnknownFormat", err)
	}
}

func TestValidate(t *testing.T) {
	null := Node{Type: TypeNull}
	tests := []struct {
		name string
		node Node
		want error
	}{
		{"null", null, nil},
		{"unknown", Node{Type: "circle"}, ErrUnknownNode},
		{"empty type", Node{}, ErrUnknownNode},
		{"split one child", Node{Type: TypeHSplit, Children: []Node{null}}, ErrChildren},
		{"split default at", Node{Type: TypeVSplit, Children: []Node{null, null}}, nil},
		{"split bad at", Node{Type: TypeVSplit, At: "half", Children: []Node{null, null}}, glenda.ErrInvalidSplitPoint},
		{"inset negative", Node{Type: TypeInset, Inset: -1, Children: []Node{null, null}}, glenda.ErrInvalidInset},
		{"aspect zero", Node{Type: TypeAspect, Children: []Node{null}}, glenda.ErrInvalidAspectRatio},
		{"aspect two children", Node{Type: TypeAspect, Aspect: 1, Children: []Node{null, null}}, ErrChildren},
		{"color bad", Node{Type: TypeColor, Color: "#12"}, ErrInvalidColor},
		{"leaf with child", Node{Type: TypeColor, Color: "red", Children: []Node{null}}, ErrChildren},
		{"text default color", Node{Type: TypeText, Text: "x"}, nil},
		{"image no path", Node{Type: TypeImage}, ErrMissingField},
		{"tilemap no tile size", Node{Type: TypeTilemap, Path: "t.png", Columns: 1}, ErrMissingField},
		{"tilemap no columns", Node{Type: TypeTilemap, Path: "t.png", TileWidth: 8, TileHeight: 8}, ErrMissingField},
		{"nested error", Node{Type: TypeAspect, Aspect: 1, Children: []Node{{Type: "bogus"}}}, ErrUnknownNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Root: tt.node}
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	bad := Config{Background: "nope", Root: null}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("Validate(bad background) = %v, want ErrInvalidColor", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"#0f0", color.RGBA{0, 255, 0, 255}, false},
		{"#0000ff80", color.RGBA{0, 0, 128, 128}, false},
		{"#00000000", color.RGBA{}, false},
		{"white", color.RGBA{255, 255, 255, 255}, false},
		{"CornflowerBlue", color.RGBA{100, 149, 237, 255}, false},
		{"ff0000", color.RGBA{}, true},
		{"#ff00", color.RGBA{}, true},
		{"#gg0000", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("ParseColor(%q) err = %v, want ErrInvalidColor", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screen.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
	if cfg.Background != "#102030" {
		t.Errorf("Background = %q", cfg.Background)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) err = %v, want os.ErrNotExist", err)
	}
	if _, err := Load(filepath.Join(dir, "screen.ini")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(.ini) err = %v, want ErrUnknownFormat", err)
	}
}
