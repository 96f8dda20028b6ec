package Briefing

import (
	"Compass/Gemini"
	"Compass/Models"
	"Compass/Store"
	"context"
	"log"
	"sync"
	"time"
)

// Assembler generates the daily briefing and holds its single-slot cache.
// The slot is keyed by (calendar date, uid) and every successful generation
// overwrites it unconditionally, so a second user's request on the same day
// evicts the first user's text. The mutex covers only slot access; two
// racing requests may both call the generation API, last writer wins.
type Assembler struct {
	Generator Gemini.TextGenerator
	Primary   Store.Store // nil when the document store is unavailable
	Fallback  Store.Store
	Now       func() time.Time

	mu        sync.Mutex
	cacheDate string
	cacheUID  string
	cacheText string
}

func NewAssembler(generator Gemini.TextGenerator, primary, fallback Store.Store) *Assembler {
	return &Assembler{
		Generator: generator,
		Primary:   primary,
		Fallback:  fallback,
		Now:       time.Now,
	}
}

// Generate returns the briefing for uid: at most one generation call per uid
// per calendar day unless forceRefresh bypasses the cache.
func (a *Assembler) Generate(ctx context.Context, uid string, forceRefresh bool) (string, error) {
	now := a.Now()
	todayStr := now.Format(dateLayout)

	if !forceRefresh {
		a.mu.Lock()
		if a.cacheDate == todayStr && a.cacheUID == uid && a.cacheText != "" {
			text := a.cacheText
			a.mu.Unlock()
			return text, nil
		}
		a.mu.Unlock()
	}

	w := ComputeWindows(now)
	tasks, events, memos := a.load(ctx, uid, todayStr)

	prompt := RenderPrompt(now, BucketTasks(tasks, w.Today), BucketEvents(events, w), memos)
	text, err := a.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	a.cacheDate, a.cacheUID, a.cacheText = todayStr, uid, text
	a.mu.Unlock()
	return text, nil
}

// load pulls open tasks, upcoming events and the memo list. A missing or
// failing document store falls back to the in-memory collections rather than
// failing the request; a failing fallback yields empty data.
func (a *Assembler) load(ctx context.Context, uid, todayStr string) ([]Models.Task, []Models.Event, []Models.MemoItem) {
	if a.Primary != nil {
		tasks, events, memos, err := fetchAll(ctx, a.Primary, uid, todayStr)
		if err == nil {
			return tasks, events, memos
		}
		log.Printf("briefing: store fetch failed, using fallback data: %v", err)
	}
	tasks, events, memos, err := fetchAll(ctx, a.Fallback, uid, todayStr)
	if err != nil {
		log.Printf("briefing: fallback fetch failed: %v", err)
		return nil, nil, nil
	}
	return tasks, events, memos
}

func fetchAll(ctx context.Context, s Store.Store, uid, todayStr string) ([]Models.Task, []Models.Event, []Models.MemoItem, error) {
	tasks, err := s.GetOpenTasks(ctx, uid)
	if err != nil {
		return nil, nil, nil, err
	}
	events, err := s.GetEventsFrom(ctx, todayStr)
	if err != nil {
		return nil, nil, nil, err
	}
	memos, err := s.GetMemos(ctx, uid)
	if err != nil {
		return nil, nil, nil, err
	}
	return tasks, events, memos, nil
}
