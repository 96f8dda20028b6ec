package Briefing

import (
	"Compass/Store"
	"context"
	"fmt"
	"testing"
	"time"
)

type countingGenerator struct {
	calls int
	reply string
	err   error
}

func (g *countingGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return fmt.Sprintf("%s #%d", g.reply, g.calls), nil
}

func newTestAssembler(gen *countingGenerator, now time.Time) *Assembler {
	a := NewAssembler(gen, nil, Store.NewMemoryStore())
	a.Now = func() time.Time { return now }
	return a
}

func TestGenerateCachesPerDay(t *testing.T) {
	gen := &countingGenerator{reply: "briefing"}
	a := newTestAssembler(gen, time.Date(2026, 9, 2, 8, 0, 0, 0, time.Local))

	first, err := a.Generate(context.Background(), "u1", false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := a.Generate(context.Background(), "u1", false)
	if err != nil {
		t.Fatalf("Generate (cached): %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
	if first != second {
		t.Errorf("cached briefing differs: %q vs %q", first, second)
	}
}

func TestGenerateForceRefresh(t *testing.T) {
	gen := &countingGenerator{reply: "briefing"}
	a := newTestAssembler(gen, time.Date(2026, 9, 2, 8, 0, 0, 0, time.Local))

	if _, err := a.Generate(context.Background(), "u1", false); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	refreshed, err := a.Generate(context.Background(), "u1", true)
	if err != nil {
		t.Fatalf("Generate (refresh): %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls)
	}
	if refreshed != "briefing #2" {
		t.Errorf("refresh returned %q, want the regenerated text", refreshed)
	}
}

func TestGenerateSingleSlotEviction(t *testing.T) {
	gen := &countingGenerator{reply: "briefing"}
	a := newTestAssembler(gen, time.Date(2026, 9, 2, 8, 0, 0, 0, time.Local))

	if _, err := a.Generate(context.Background(), "u1", false); err != nil {
		t.Fatalf("Generate u1: %v", err)
	}
	if _, err := a.Generate(context.Background(), "u2", false); err != nil {
		t.Fatalf("Generate u2: %v", err)
	}
	// u2 took the slot, so u1 has to regenerate.
	if _, err := a.Generate(context.Background(), "u1", false); err != nil {
		t.Fatalf("Generate u1 again: %v", err)
	}
	if gen.calls != 3 {
		t.Errorf("generator called %d times, want 3", gen.calls)
	}
}

func TestGenerateNewDayInvalidatesCache(t *testing.T) {
	gen := &countingGenerator{reply: "briefing"}
	now := time.Date(2026, 9, 2, 8, 0, 0, 0, time.Local)
	a := newTestAssembler(gen, now)

	if _, err := a.Generate(context.Background(), "u1", false); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	a.Now = func() time.Time { return now.AddDate(0, 0, 1) }
	if _, err := a.Generate(context.Background(), "u1", false); err != nil {
		t.Fatalf("Generate next day: %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls)
	}
}

func TestGenerateErrorLeavesCacheEmpty(t *testing.T) {
	gen := &countingGenerator{err: fmt.Errorf("upstream down")}
	a := newTestAssembler(gen, time.Date(2026, 9, 2, 8, 0, 0, 0, time.Local))

	if _, err := a.Generate(context.Background(), "u1", false); err == nil {
		t.Fatal("expected error from failing generator")
	}
	gen.err = nil
	gen.reply = "briefing"
	text, err := a.Generate(context.Background(), "u1", false)
	if err != nil {
		t.Fatalf("Generate after recovery: %v", err)
	}
	if text == "" {
		t.Error("expected fresh briefing after failed attempt")
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2 (failure must not be cached)", gen.calls)
	}
}
