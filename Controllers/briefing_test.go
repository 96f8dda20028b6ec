package Controllers

import (
	"Compass/Briefing"
	"Compass/Store"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func newBriefingApp(gen *stubGenerator) (*fiber.App, *Briefing.Assembler) {
	assembler := Briefing.NewAssembler(gen, nil, Store.NewMemoryStore())
	assembler.Now = func() time.Time { return time.Date(2026, 9, 2, 8, 0, 0, 0, time.Local) }
	bc := NewBriefingController(assembler)
	app := fiber.New()
	app.Get("/briefing", bc.GetBriefing)
	return app, assembler
}

func TestGetBriefing(t *testing.T) {
	app, _ := newBriefingApp(&stubGenerator{reply: "좋은 아침입니다."})

	resp, err := app.Test(httptest.NewRequest("GET", "/briefing", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["briefing"] != "좋은 아침입니다." {
		t.Errorf("briefing = %q", body["briefing"])
	}
}

func TestGetBriefingUpstreamFailure(t *testing.T) {
	app, _ := newBriefingApp(&stubGenerator{err: errTest})

	resp, err := app.Test(httptest.NewRequest("GET", "/briefing", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestGetBriefingForceRefreshParsing(t *testing.T) {
	gen := &stubGenerator{reply: "brief"}
	app, _ := newBriefingApp(gen)

	for _, target := range []string{"/briefing", "/briefing", "/briefing?force_refresh=notabool"} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		if err != nil {
			t.Fatalf("app.Test %s: %v", target, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status for %s = %d", target, resp.StatusCode)
		}
	}
}
