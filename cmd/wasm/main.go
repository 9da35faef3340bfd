//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/pressproof/pressproof/backend-go/internal/editor"
	"github.com/pressproof/pressproof/backend-go/internal/geometry"
)

// The wasm build embeds the placement editor directly in the page: the host
// calls into this object instead of going through the WebSocket bridge, and
// receives change snapshots through an onChange callback.

var ed *editor.Editor

func main() {
	api := js.Global().Get("Object").New()

	// --- Lifecycle ---
	api.Set("init", js.FuncOf(initEditor))
	api.Set("onChange", js.FuncOf(onChange))

	// --- Pointer/touch event injection ---
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("pointerCancel", js.FuncOf(pointerCancel))

	// --- Programmatic control surface ---
	api.Set("setActiveView", js.FuncOf(setActiveView))
	api.Set("setDisplayScale", js.FuncOf(setDisplayScale))
	api.Set("select", js.FuncOf(selectImage))
	api.Set("delete", js.FuncOf(deleteImage))
	api.Set("deleteSelected", js.FuncOf(deleteSelected))
	api.Set("bringToFront", js.FuncOf(bringToFront))
	api.Set("sendToBack", js.FuncOf(sendToBack))
	api.Set("reorder", js.FuncOf(reorder))
	api.Set("updateTransform", js.FuncOf(updateTransform))
	api.Set("addImage", js.FuncOf(addImage))

	// --- Queries ---
	api.Set("snapshot", js.FuncOf(snapshot))

	js.Global().Set("pressproofEditor", api)
	js.Global().Set("pressproofWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

var changeCallback js.Value

func initEditor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing config JSON"})
	}

	var cfg editor.Config
	if err := json.Unmarshal([]byte(args[0].String()), &cfg); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return js.ValueOf(map[string]interface{}{"error": "canvas width and height must be positive"})
	}

	ed = editor.New(cfg)
	ed.SetOnChange(func(snap editor.Snapshot) {
		if changeCallback.Type() == js.TypeFunction {
			data, _ := json.Marshal(snap)
			changeCallback.Invoke(string(data))
		}
	})

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func onChange(this js.Value, args []js.Value) interface{} {
	if len(args) > 0 {
		changeCallback = args[0]
	}
	return nil
}

// --- Pointer handlers ---

func parsePointer(arg js.Value) (editor.PointerEvent, bool) {
	var ev editor.PointerEvent
	if err := json.Unmarshal([]byte(arg.String()), &ev); err != nil {
		return ev, false
	}
	return ev, true
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 1 {
		return nil
	}
	if ev, ok := parsePointer(args[0]); ok {
		ed.PointerDown(ev)
	}
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 1 {
		return nil
	}
	if ev, ok := parsePointer(args[0]); ok {
		ed.PointerMove(ev)
	}
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 1 {
		return nil
	}
	if ev, ok := parsePointer(args[0]); ok {
		ed.PointerUp(ev)
	}
	return nil
}

func pointerCancel(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 1 {
		return nil
	}
	if ev, ok := parsePointer(args[0]); ok {
		ed.PointerCancel(ev)
	}
	return nil
}

// --- Operation handlers ---

func setActiveView(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 1 {
		return nil
	}
	ed.SetActiveView(editor.View(args[0].String()))
	return nil
}

func setDisplayScale(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 1 {
		return nil
	}
	ed.SetDisplayScale(args[0].Float())
	return nil
}

func selectImage(this js.Value, args []js.Value) interface{} {
	if ed == nil {
		return nil
	}
	id := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		id = args[0].String()
	}
	ed.Select(id)
	return nil
}

func deleteImage(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 1 {
		return nil
	}
	ed.Delete(args[0].String())
	return nil
}

func deleteSelected(this js.Value, args []js.Value) interface{} {
	if ed == nil {
		return nil
	}
	ed.DeleteSelected()
	return nil
}

func bringToFront(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 1 {
		return nil
	}
	ed.BringToFront(args[0].String())
	return nil
}

func sendToBack(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 1 {
		return nil
	}
	ed.SendToBack(args[0].String())
	return nil
}

func reorder(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 2 {
		return nil
	}
	ed.Reorder(args[0].Int(), args[1].Int())
	return nil
}

func updateTransform(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 2 {
		return nil
	}
	var t geometry.Transform
	if err := json.Unmarshal([]byte(args[1].String()), &t); err != nil {
		return nil
	}
	ed.UpdateTransform(args[0].String(), t)
	return nil
}

// addImage accepts a pre-decoded candidate from the host (the browser
// already knows the file's natural dimensions after creating an ImageBitmap).
func addImage(this js.Value, args []js.Value) interface{} {
	if ed == nil || len(args) < 1 {
		return js.ValueOf("")
	}
	var c editor.Candidate
	if err := json.Unmarshal([]byte(args[0].String()), &c); err != nil {
		return js.ValueOf("")
	}
	img := ed.AddImage(c)
	if img == nil {
		return js.ValueOf("")
	}
	return js.ValueOf(img.ID)
}

func snapshot(this js.Value, args []js.Value) interface{} {
	if ed == nil {
		return js.ValueOf("{}")
	}
	data, _ := json.Marshal(ed.Snapshot())
	return js.ValueOf(string(data))
}
