package stagelayout

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// ExportFilename is the fixed name of the exported image.
const ExportFilename = "orchestra_layout.png"

// Export clears the selection, so no outline is baked into the image, and
// queues a PNG export of the stage. The file is written at the end of the
// next Draw. Requests made before that Draw coalesce into one write.
func (e *Editor) Export() {
	e.selection.Clear()
	e.exportPending = true
}

// ExportPath returns where Export writes the image.
func (e *Editor) ExportPath() string {
	return filepath.Join(e.exportDir, ExportFilename)
}

// flushExport renders the stage onto an offscreen image filled white, reads
// it back and writes it as a PNG. Called at the end of Draw.
func (e *Editor) flushExport() {
	if !e.exportPending {
		return
	}
	e.exportPending = false

	w, h := int(e.view.width), int(e.view.height)
	img := ebiten.NewImage(w, h)
	defer img.Deallocate()
	img.Fill(color.White)
	e.drawStage(img, 0, 0, false)

	pixels := make([]byte, 4*w*h)
	img.ReadPixels(pixels)

	path := e.ExportPath()
	if err := WritePNG(path, unpremultiply(pixels, w, h)); err != nil {
		e.log.Error("export image", "path", path, "err", err)
		e.status.show("画像の書き出しに失敗しました")
		return
	}
	e.log.Info("image exported", "path", path, "width", w, "height", h)
	e.status.show("画像を書き出しました: " + ExportFilename)
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// WritePNG encodes img to path, creating the parent directory if needed.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
