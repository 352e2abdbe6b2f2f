//go:build js && wasm

// fluf WASM: client-side wallpaper renderer.
// Compiled with: GOOS=js GOARCH=wasm go build -o fluf.wasm ./clients/wasm/
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"syscall/js"
	"time"

	"github.com/xob0t/fluf/pkg/export"
	"github.com/xob0t/fluf/pkg/style"
	"github.com/xob0t/fluf/pkg/wallpaper"
)

const filenamePrefix = "0fluf"

func main() {
	fmt.Println("fluf WASM loaded")

	// Register JS-callable functions.
	js.Global().Set("goStyles", js.FuncOf(styles))
	js.Global().Set("goRenderWallpaper", js.FuncOf(renderWallpaper))
	js.Global().Set("goWallpaperFilename", js.FuncOf(wallpaperFilename))
	js.Global().Set("goReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

// goStyles() returns the catalog as JSON.
func styles(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(style.Catalog())
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	return js.ValueOf(string(data))
}

// goRenderWallpaper(slug, width, height) renders and returns base64 PNG.
func renderWallpaper(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf("error: need slug, width, height")
	}

	s, ok := style.Lookup(args[0].String())
	if !ok {
		return js.ValueOf("error: unknown style " + args[0].String())
	}
	width, height := args[1].Int(), args[2].Int()
	if width <= 0 || height <= 0 {
		return js.ValueOf(fmt.Sprintf("error: invalid size %dx%d", width, height))
	}

	surface := wallpaper.Render(s, width, height)

	var buf bytes.Buffer
	if err := export.Encode(&buf, ".png", surface.Image()); err != nil {
		return js.ValueOf("error: encode: " + err.Error())
	}

	return js.ValueOf(base64.StdEncoding.EncodeToString(buf.Bytes()))
}

// goWallpaperFilename(slug) returns the download name for a style.
func wallpaperFilename(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("error: need slug")
	}
	s, ok := style.Lookup(args[0].String())
	if !ok {
		return js.ValueOf("error: unknown style " + args[0].String())
	}
	return js.ValueOf(style.Filename(filenamePrefix, s, time.Now()))
}
