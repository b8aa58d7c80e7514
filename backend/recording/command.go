// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"image"

	"github.com/gogpu/glenda/backend"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSetViewport   CommandType = iota // Set viewport rectangle
	CmdSetScissor                       // Set scissor rectangle
	CmdEnableScissor                    // Enable scissor clipping

	// Resource commands
	CmdCreateProgram      // Create a shader program
	CmdCreateVertexBuffer // Upload vertex data
	CmdUpdateVertexBuffer // Replace vertex data
	CmdCreateTexture      // Upload a texture
	CmdDestroy            // Release a resource

	// Drawing commands
	CmdDraw // Draw triangles
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSetViewport:        "SetViewport",
	CmdSetScissor:         "SetScissor",
	CmdEnableScissor:      "EnableScissor",
	CmdCreateProgram:      "CreateProgram",
	CmdCreateVertexBuffer: "CreateVertexBuffer",
	CmdUpdateVertexBuffer: "UpdateVertexBuffer",
	CmdCreateTexture:      "CreateTexture",
	CmdDestroy:            "Destroy",
	CmdDraw:               "Draw",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ResourceID identifies a resource created through the recording backend.
type ResourceID uint32

// InvalidID marks an absent resource, such as the texture of a solid draw.
const InvalidID = ^ResourceID(0)

// IsValid returns true if the ID refers to a resource.
func (id ResourceID) IsValid() bool {
	return id != InvalidID
}

// SetViewportCommand sets the viewport rectangle.
type SetViewportCommand struct {
	Rect image.Rectangle
}

// Type implements Command.
func (SetViewportCommand) Type() CommandType { return CmdSetViewport }

// SetScissorCommand sets the scissor rectangle.
type SetScissorCommand struct {
	Rect image.Rectangle
}

// Type implements Command.
func (SetScissorCommand) Type() CommandType { return CmdSetScissor }

// EnableScissorCommand turns scissor clipping on.
type EnableScissorCommand struct{}

// Type implements Command.
func (EnableScissorCommand) Type() CommandType { return CmdEnableScissor }

// CreateProgramCommand creates a program.
type CreateProgramCommand struct {
	ID   ResourceID
	Desc backend.ProgramDescriptor
}

// Type implements Command.
func (CreateProgramCommand) Type() CommandType { return CmdCreateProgram }

// CreateVertexBufferCommand uploads vertex data. Data is a private copy.
type CreateVertexBufferCommand struct {
	ID     ResourceID
	Data   []float32
	Layout backend.VertexLayout
}

// Type implements Command.
func (CreateVertexBufferCommand) Type() CommandType { return CmdCreateVertexBuffer }

// UpdateVertexBufferCommand replaces vertex data. Data is a private copy.
type UpdateVertexBufferCommand struct {
	ID   ResourceID
	Data []float32
}

// Type implements Command.
func (UpdateVertexBufferCommand) Type() CommandType { return CmdUpdateVertexBuffer }

// CreateTextureCommand uploads a texture. Image is a private copy.
type CreateTextureCommand struct {
	ID      ResourceID
	Image   *image.RGBA
	Options backend.TextureOptions
}

// Type implements Command.
func (CreateTextureCommand) Type() CommandType { return CmdCreateTexture }

// DestroyCommand releases a resource.
type DestroyCommand struct {
	ID ResourceID
}

// Type implements Command.
func (DestroyCommand) Type() CommandType { return CmdDestroy }

// DrawCommand issues a draw call.
type DrawCommand struct {
	Program  ResourceID
	Vertices ResourceID
	// Texture is InvalidID when the call has no texture.
	Texture  ResourceID
	First    int
	Count    int
	Uniforms backend.Uniforms
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }
