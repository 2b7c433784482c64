// Command viewer opens an interactive window onto a scene.
//
// Drag to orbit, scroll to zoom, WASD to move, 1 to toggle day/night,
// R to reset the camera and Esc to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/viewer/controller"
)

const vertexShaderSource = `
#version 410 core
layout(location = 0) in vec2 position;
layout(location = 1) in vec2 texCoord;
out vec2 uv;
void main() {
	uv = texCoord;
	gl_Position = vec4(position, 0.0, 1.0);
}` + "\x00"

const fragmentShaderSource = `
#version 410 core
in vec2 uv;
out vec4 fragColor;
uniform sampler2D tex;
void main() {
	fragColor = texture(tex, uv);
}` + "\x00"

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	sceneName := flag.String("scene", "tatooine", "Scene name or path to a .json scene file")
	width := flag.Int("width", 640, "Render width in pixels")
	height := flag.Int("height", 480, "Render height in pixels")
	samples := flag.Int("samples", 1, "Anti-aliasing samples per pixel")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	night := flag.Bool("night", false, "Start with the night sky")
	flag.Parse()

	if err := run(*sceneName, *width, *height, *samples, *workers, *night); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(sceneName string, width, height, samples, workers int, night bool) error {
	s, err := scene.Create(sceneName)
	if err != nil {
		return err
	}
	s.SetNight(night)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(width, height, "Whitted Raytracer", nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize gl: %w", err)
	}

	program, err := buildShader(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	vao := createQuad()
	tex := createTexture(width, height)

	ctrl := controller.New(s, controller.DefaultConfig())
	installCallbacks(window, ctrl)

	fb := renderer.NewFramebuffer(width, height)
	raytracer := renderer.NewRaytracer(s, s.Camera, integrator.NewWhitted(integrator.DefaultConfig()), renderer.RenderConfig{
		TileSize:        renderer.DefaultTileSize,
		SamplesPerPixel: samples,
		NumWorkers:      workers,
	}, nil)

	ctx := context.Background()
	last := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()

		now := time.Now()
		dt := now.Sub(last)
		last = now
		ctrl.Move(axis(window, glfw.KeyD, glfw.KeyA), axis(window, glfw.KeyW, glfw.KeyS), dt)

		// Scene changes are applied here, never while tiles are in flight
		if ctrl.BeginFrame() {
			stats, err := raytracer.Render(ctx, fb)
			if err != nil {
				return err
			}
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(fb.RGBA()))
			window.SetTitle(fmt.Sprintf("Whitted Raytracer - %s (%s) - %v", s.Name, s.Sky.Mode(), stats.Duration.Round(time.Millisecond)))
		}

		fbWidth, fbHeight := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UseProgram(program)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

		window.SwapBuffers()
	}
	return nil
}

func installCallbacks(window *glfw.Window, ctrl *controller.Controller) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.Key1:
			ctrl.RequestToggle()
		case glfw.KeyR:
			ctrl.ResetCamera()
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			x, y := w.GetCursorPos()
			ctrl.BeginDrag(x, y)
		case glfw.Release:
			ctrl.EndDrag()
		}
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		ctrl.CursorMoved(xpos, ypos)
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		ctrl.Scroll(yoff)
	})
}

// axis returns +1, -1 or 0 depending on which of two keys is held
func axis(window *glfw.Window, positive, negative glfw.Key) float32 {
	var v float32
	if window.GetKey(positive) == glfw.Press {
		v++
	}
	if window.GetKey(negative) == glfw.Press {
		v--
	}
	return v
}

// createQuad builds a fullscreen triangle strip; texture V is flipped
// because the framebuffer stores the top row first
func createQuad() uint32 {
	quadVertices := []float32{-1, -1, 1, -1, -1, 1, 1, 1}
	texCoords := []float32{0, 1, 1, 1, 0, 0, 1, 0}

	var vao, vbo, tbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &tbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(texCoords)*4, gl.Ptr(texCoords), gl.STATIC_DRAW)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(1)

	return vao
}

func createTexture(width, height int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}

func buildShader(vertexSource, fragmentSource string) (uint32, error) {
	vertex, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fragment, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)
	gl.DeleteShader(vertex)
	gl.DeleteShader(fragment)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logMsg))
		return 0, fmt.Errorf("failed to link program: %s", strings.TrimSpace(strings.TrimRight(logMsg, "\x00")))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logMsg))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile: %s", strings.TrimSpace(strings.TrimRight(logMsg, "\x00")))
	}
	return shader, nil
}
