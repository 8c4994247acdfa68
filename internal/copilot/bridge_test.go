package copilot

import "testing"

func TestBridge_ConsumeOnce(t *testing.T) {
	var b Bridge

	b.Handoff("use this reply")
	if !b.Pending() {
		t.Fatal("expected pending handoff")
	}

	text, ok := b.Consume()
	if !ok || text != "use this reply" {
		t.Fatalf("Consume() = %q, %v", text, ok)
	}

	text, ok = b.Consume()
	if ok || text != "" {
		t.Errorf("second Consume() = %q, %v; want no-op", text, ok)
	}
	if b.Pending() {
		t.Error("handoff should be cleared")
	}
}

func TestBridge_LatestHandoffWins(t *testing.T) {
	var b Bridge

	b.Handoff("first")
	b.Handoff("second")

	text, _ := b.Consume()
	if text != "second" {
		t.Errorf("Consume() = %q, want second", text)
	}
}

func TestBridge_EmptyHandoffIgnored(t *testing.T) {
	var b Bridge

	b.Handoff("")
	if _, ok := b.Consume(); ok {
		t.Error("empty handoff should not be consumable")
	}
}
