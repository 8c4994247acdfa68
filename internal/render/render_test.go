package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/diogo/copilotdesk/internal/config"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != StyleDark {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
	if !opts.EnableEmoji || !opts.PreserveNewLines || !opts.TableWrap {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if opts.InlineTableLinks {
		t.Error("expected InlineTableLinks=false")
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions().WithWidth(120).WithStyle(StyleLight)

	if opts.Width != 120 || opts.Style != StyleLight {
		t.Errorf("unexpected options: %+v", opts)
	}
	if !opts.EnableEmoji {
		t.Error("chaining should preserve other fields")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = StyleLight
	cfg.Markdown.EnableEmoji = false

	opts := OptionsFromConfig(cfg, 60)
	if opts.Width != 60 || opts.Style != StyleLight || opts.EnableEmoji {
		t.Errorf("unexpected options: %+v", opts)
	}

	cfg.Markdown.Style = ""
	if got := OptionsFromConfig(cfg, 60).Style; got != StyleDark {
		t.Errorf("empty style should default to dark, got %s", got)
	}

	t.Setenv("GLAMOUR_STYLE", StyleNoTTY)
	if got := OptionsFromConfig(cfg, 60).Style; got != StyleNoTTY {
		t.Errorf("GLAMOUR_STYLE should win, got %s", got)
	}
}

func TestIsStandardStyle(t *testing.T) {
	for _, s := range StandardStyles() {
		if !IsStandardStyle(s) {
			t.Errorf("IsStandardStyle(%q) = false", s)
		}
	}
	if IsStandardStyle("/tmp/custom.json") {
		t.Error("paths are not standard styles")
	}
}

func TestMarkdown(t *testing.T) {
	ClearCache()
	opts := DefaultOptions().WithStyle(StyleNoTTY)

	out, err := Markdown("# Title\n\nSome **bold** text", opts)
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Errorf("Markdown() = %q", out)
	}
	if CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1", CacheSize())
	}
}

func TestMarkdown_BadStylePath(t *testing.T) {
	if _, err := Markdown("x", DefaultOptions().WithStyle("/nonexistent/style.json")); err == nil {
		t.Error("expected error for missing style file")
	}
}

func TestMarkdown_Concurrent(t *testing.T) {
	opts := DefaultOptions().WithStyle(StyleASCII)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("- one\n- two", opts); err != nil {
				t.Errorf("Markdown() error: %v", err)
			}
		}()
	}
	wg.Wait()
}
