package notify

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	if _, ok := r.Last(); ok {
		t.Fatal("empty recorder reported a notification")
	}
	r.Notify(context.Background(), Notification{Title: "a"})
	r.Notify(context.Background(), Notification{Title: "b", Variant: VariantSuccess})

	if got := len(r.All()); got != 2 {
		t.Errorf("recorded %d, want 2", got)
	}
	if n, _ := r.Last(); n.Title != "b" {
		t.Errorf("last = %+v", n)
	}
	r.Reset()
	if len(r.All()) != 0 {
		t.Error("reset kept notifications")
	}
}

func TestLogNotifier_DestructiveIsWarn(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Log: slog.New(slog.NewTextHandler(&buf, nil))}
	n.Notify(context.Background(), Notification{Title: "Invalid input", Description: "not a number", Variant: VariantDestructive})

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, `description="not a number"`) {
		t.Errorf("unexpected log line %q", out)
	}
}

func TestMulti(t *testing.T) {
	var a, b Recorder
	Multi{&a, &b, Nop}.Notify(context.Background(), Notification{Title: "x"})
	if len(a.All()) != 1 || len(b.All()) != 1 {
		t.Error("notification not fanned out")
	}
}
