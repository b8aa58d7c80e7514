// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

// ProgramKind selects the fragment stage of a program.
type ProgramKind uint8

const (
	// ProgramSolid fills with Uniforms.Color.
	ProgramSolid ProgramKind = iota
	// ProgramTextured samples DrawCall.Texture at the vertex UVs and
	// multiplies by Uniforms.Color.
	ProgramTextured
)

// String returns a string representation of the program kind.
func (k ProgramKind) String() string {
	switch k {
	case ProgramSolid:
		return "solid"
	case ProgramTextured:
		return "textured"
	default:
		return "unknown"
	}
}

// ProgramDescriptor describes a shader program.
//
// Backends pick the source they understand: WGSL for the HAL backend,
// GLSL for OpenGL. The software backend only looks at Kind.
type ProgramDescriptor struct {
	Label        string
	Kind         ProgramKind
	WGSL         string
	GLSLVertex   string
	GLSLFragment string
}

// SolidProgram returns the built-in solid-color program.
func SolidProgram() ProgramDescriptor {
	return ProgramDescriptor{
		Label:        "glenda-solid",
		Kind:         ProgramSolid,
		WGSL:         solidWGSL,
		GLSLVertex:   vertexGLSL,
		GLSLFragment: solidFragmentGLSL,
	}
}

// TexturedProgram returns the built-in textured program.
func TexturedProgram() ProgramDescriptor {
	return ProgramDescriptor{
		Label:        "glenda-textured",
		Kind:         ProgramTextured,
		WGSL:         texturedWGSL,
		GLSLVertex:   vertexGLSL,
		GLSLFragment: texturedFragmentGLSL,
	}
}
