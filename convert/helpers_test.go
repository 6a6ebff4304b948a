package convert

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"htmlcoder/config"
	"htmlcoder/docx"
	"htmlcoder/state"
)

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func newTestPipeline(t *testing.T, env *state.LocalEnv, dst string) *pipeline {
	t.Helper()
	p, err := newPipeline(env, dst, env.Log)
	if err != nil {
		t.Fatalf("newPipeline() error = %v", err)
	}
	t.Cleanup(func() {
		if err := p.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return p
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// testArticle is a complete article exercising every zone with one picture.
func testArticle(t *testing.T) []byte {
	t.Helper()
	body := docx.TestText("# weekly column", "") +
		docx.TestText("{% editornote %}", "") +
		docx.TestText("编者按内容", "") +
		docx.TestText("{% ENDeditornote %}", "") +
		docx.TestText("{% body %}", "") +
		docx.TestText("第一段", "") +
		docx.TestDrawing("rId7") +
		docx.TestText("图片说明", `<w:jc w:val="center"/>`) +
		docx.TestText("{% ENDbody %}", "") +
		docx.TestText("{% ending %}", "") +
		docx.TestText("编辑 王五", "") +
		docx.TestText("{% ENDending %}", "")
	return docx.TestContainer(t, body, "", docx.TestImage{ID: "rId7", Name: "image1.png", Data: testPNG(t, 32, 16)})
}

func writeFile(t *testing.T, name string, data []byte, mtime time.Time) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if !mtime.IsZero() {
		if err := os.Chtimes(name, mtime, mtime); err != nil {
			t.Fatalf("chtimes %s: %v", name, err)
		}
	}
	return name
}

func testUnclosed(t *testing.T) []byte {
	t.Helper()
	return docx.TestContainer(t, docx.TestText("{% body %}", "")+docx.TestText("text", ""), "")
}
