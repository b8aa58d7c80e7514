// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

// Every program maps a 2D position to clip space as
//
//	clip = transform * vec4(pos * scale + offset, 0, 1)
//
// The uniform block layout matches Uniforms.Bytes.

const solidWGSL = `
struct Uniforms {
    transform: mat4x4<f32>,
    color: vec4<f32>,
    scale: vec2<f32>,
    offset: vec2<f32>,
}

@group(0) @binding(0) var<uniform> u: Uniforms;

@vertex
fn vs_main(@location(0) pos: vec2<f32>) -> @builtin(position) vec4<f32> {
    return u.transform * vec4<f32>(pos * u.scale + u.offset, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return u.color;
}
`

const texturedWGSL = `
struct Uniforms {
    transform: mat4x4<f32>,
    color: vec4<f32>,
    scale: vec2<f32>,
    offset: vec2<f32>,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@group(0) @binding(0) var<uniform> u: Uniforms;
@group(0) @binding(1) var tex: texture_2d<f32>;
@group(0) @binding(2) var samp: sampler;

@vertex
fn vs_main(@location(0) pos: vec2<f32>, @location(1) uv: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = u.transform * vec4<f32>(pos * u.scale + u.offset, 0.0, 1.0);
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(tex, samp, in.uv) * u.color;
}
`

const vertexGLSL = `#version 330 core
layout(location = 0) in vec2 a_pos;
layout(location = 1) in vec2 a_uv;

uniform mat4 u_transform;
uniform vec2 u_scale;
uniform vec2 u_offset;

out vec2 v_uv;

void main() {
    v_uv = a_uv;
    gl_Position = u_transform * vec4(a_pos * u_scale + u_offset, 0.0, 1.0);
}
`

const solidFragmentGLSL = `#version 330 core
uniform vec4 u_color;
out vec4 frag_color;

void main() {
    frag_color = u_color;
}
`

const texturedFragmentGLSL = `#version 330 core
uniform vec4 u_color;
uniform sampler2D u_texture;
in vec2 v_uv;
out vec4 frag_color;

void main() {
    frag_color = texture(u_texture, v_uv) * u_color;
}
`
