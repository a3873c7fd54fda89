package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"BoomDoomRadar/internal/collector"
	"BoomDoomRadar/internal/dashboard"
	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/parser"
	"BoomDoomRadar/internal/recorder"
)

type memNotifier struct {
	mu      sync.Mutex
	notices []model.Notice
}

func (m *memNotifier) Notify(_ context.Context, n model.Notice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, n)
	return nil
}

func csvPayload(n int) string {
	lines := []string{"timestamp,price,market_cap,volume"}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		cols := make([]string, 30)
		cols[0] = start.Add(time.Duration(i) * time.Hour).Format(time.RFC3339)
		cols[1] = "0.5"
		cols[2] = "1000"
		cols[3] = "1000"
		lines = append(lines, strings.Join(cols, ","))
	}
	return strings.Join(lines, "\n")
}

func newTestScheduler(t *testing.T, src collector.Source) (*Scheduler, *memNotifier) {
	t.Helper()
	n := &memNotifier{}
	loader := collector.NewLoader(src, parser.New(0))
	d := dashboard.New(loader, nil, n, recorder.NewNoopRecorder(), dashboard.Options{MockDays: 1})
	return NewScheduler(context.Background(), d, n, nil), n
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.StaticSource{Payload: []byte(csvPayload(30))})
	if err := s.RegisterAll("0 */15 * * * *", "0 0 9 * * *"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 2 {
		t.Errorf("entries = %d, want 2", got)
	}
	if err := s.RegisterAll("not a cron", ""); err == nil {
		t.Error("invalid spec should fail")
	}
}

func TestRefreshAndDigest(t *testing.T) {
	s, n := newTestScheduler(t, &collector.StaticSource{Payload: []byte(csvPayload(30))})

	s.RunDigestNow()
	if len(n.notices) != 0 {
		t.Error("digest without a selection should send nothing")
	}

	if _, err := s.Dashboard.Select(context.Background(), "ACT"); err != nil {
		t.Fatal(err)
	}
	s.RunRefreshNow()
	s.RunDigestNow()
	if len(n.notices) != 1 {
		t.Fatalf("notices = %d, want 1", len(n.notices))
	}
	if !n.notices[0].HTML || !strings.Contains(n.notices[0].Text, "(ACT)") {
		t.Errorf("digest = %+v", n.notices[0])
	}
}

func TestHandleCommand(t *testing.T) {
	s, n := newTestScheduler(t, &collector.StaticSource{Payload: []byte(csvPayload(48))})

	if out := s.HandleCommand("/coin bonk"); !strings.Contains(out, "(BONK)") || !strings.Contains(out, "48 of 48") {
		t.Errorf("/coin = %q", out)
	}
	if out := s.HandleCommand("/tf 1d"); !strings.Contains(out, "| 1D") || !strings.Contains(out, "25 of 48") {
		t.Errorf("/tf = %q", out)
	}
	if out := s.HandleCommand("/tf 5Y"); !strings.Contains(out, "Unknown time frame") || !strings.Contains(out, "| ALL") {
		t.Errorf("/tf bad = %q", out)
	}
	if out := s.HandleCommand("/search fart"); strings.Count(out, "\n") != 2 {
		t.Errorf("/search = %q", out)
	}
	if out := s.HandleCommand("/coin nothing-here"); out != "" {
		t.Errorf("unknown coin reply = %q", out)
	}
	if len(n.notices) != 1 || n.notices[0].Title != "Unknown coin" {
		t.Errorf("notices = %+v", n.notices)
	}
	if out := s.HandleCommand("/stats@radar_bot"); !strings.Contains(out, "(BONK)") {
		t.Errorf("/stats = %q", out)
	}
	if out := s.HandleCommand("/loads"); out != "No loads recorded." {
		t.Errorf("/loads = %q", out)
	}
	if out := s.HandleCommand("hello"); !strings.Contains(out, "Available commands") {
		t.Errorf("help = %q", out)
	}
}

func TestHandleCommand_FallbackIsVisible(t *testing.T) {
	s, n := newTestScheduler(t, &collector.StaticSource{Payload: []byte("tiny")})
	out := s.HandleCommand("/coin PEPE")
	if !strings.Contains(out, "Synthetic data in use") {
		t.Errorf("reply should flag synthetic data: %q", out)
	}
	if len(n.notices) != 1 || n.notices[0].Level != model.NoticeWarn {
		t.Errorf("notices = %+v", n.notices)
	}
}
