package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"BoomDoomRadar/internal/dashboard"
	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/strategy"
)

type fakeTelegram struct {
	mu       sync.Mutex
	sent     []map[string]string
	status   int
	polls    int
	received chan string
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		f.mu.Lock()
		f.sent = append(f.sent, payload)
		status := f.status
		f.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		w.Write([]byte(`{"ok":true}`))
		if f.received != nil {
			f.received <- payload["text"]
		}
	case strings.HasSuffix(r.URL.Path, "/getUpdates"):
		f.mu.Lock()
		f.polls++
		first := f.polls == 1
		f.mu.Unlock()
		if first {
			w.Write([]byte(`{"ok":true,"result":[` +
				`{"update_id":6,"message":{"text":"/intruder","chat":{"id":99}}},` +
				`{"update_id":7,"message":{"text":" /ping ","chat":{"id":42}}}]}`))
			return
		}
		if r.URL.Query().Get("offset") != "8" {
			w.Write([]byte(`{"ok":false}`))
			return
		}
		w.Write([]byte(`{"ok":true,"result":[]}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestNotifier(srv *httptest.Server) *TelegramNotifier {
	return &TelegramNotifier{
		BotToken: "TOKEN",
		ChatID:   "42",
		APIBase:  srv.URL,
		Client:   srv.Client(),
	}
}

func TestSend(t *testing.T) {
	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	tn := newTestNotifier(srv)
	if err := tn.Send(context.Background(), "<b>hi</b>"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(fake.sent) != 1 {
		t.Fatalf("sent = %d", len(fake.sent))
	}
	got := fake.sent[0]
	if got["chat_id"] != "42" || got["text"] != "<b>hi</b>" || got["parse_mode"] != "HTML" {
		t.Errorf("payload = %v", got)
	}
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	fake := &fakeTelegram{status: http.StatusBadGateway}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	err := newTestNotifier(srv).SendWithRetry(context.Background(), "x", 0)
	if err == nil || !strings.Contains(err.Error(), "status 502") {
		t.Errorf("err = %v, want status 502", err)
	}
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	fake := &fakeTelegram{status: http.StatusInternalServerError}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := newTestNotifier(srv).SendWithRetry(ctx, "x", 3)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestNotify_EscapesPlainText(t *testing.T) {
	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	tn := newTestNotifier(srv)
	err := tn.Notify(context.Background(), model.Notice{Level: model.NoticeWarn, Title: "Unknown coin", Text: `No coin matches "<x>"`})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	text := fake.sent[0]["text"]
	if !strings.Contains(text, "&lt;x&gt;") || !strings.HasPrefix(text, "⚠️ <b>Unknown coin</b>") {
		t.Errorf("text = %q", text)
	}
}

func TestStartPolling(t *testing.T) {
	fake := &fakeTelegram{received: make(chan string, 1)}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var commands []string
	go func() {
		newTestNotifier(srv).StartPolling(ctx, func(cmd string) string {
			commands = append(commands, cmd)
			return "pong"
		})
		close(done)
	}()

	select {
	case reply := <-fake.received:
		if reply != "pong" {
			t.Errorf("reply = %q", reply)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reply sent")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("polling did not stop")
	}
	if len(commands) != 1 || commands[0] != "/ping" {
		t.Errorf("commands = %v", commands)
	}
}

func testView(synthetic bool) dashboard.View {
	series := make(model.Series, 30)
	for i := range series {
		series[i] = model.Record{
			Timestamp: int64(i) * 3600_000,
			Price:     0.001 + float64(i)*0.0001,
			MarketCap: 1_500_000,
			Volume:    2_000_000,
			RSI:       55,
			EMA6h:     0.001,
		}
	}
	series[29].LifecycleStage = "pump"
	summary, ok := strategy.Summarize(series, strategy.DefaultWeights())
	v := dashboard.View{
		Coin:       model.Coin{Symbol: "BONK", Name: "Bonk", Icon: "🐕"},
		Selected:   true,
		TimeFrame:  model.TimeFrameAll,
		Series:     series,
		Total:      30,
		Summary:    summary,
		HasSummary: ok,
		Synthetic:  synthetic,
	}
	if synthetic {
		v.LoadError = errors.New("load BONK: source unavailable")
	}
	return v
}

func TestFormatSummary(t *testing.T) {
	out := FormatSummary(testView(false))
	for _, want := range []string{"<b>Bonk</b> (BONK) | ALL", "Price: 0.0039", "(from prices: ", "SMA(24): ", "Market Cap: 1.50M (+0.00%)", "Lifecycle: pump", "Boom or Doom:", "30 of 30 records"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Synthetic") {
		t.Error("real data must not be flagged synthetic")
	}

	out = FormatSummary(testView(true))
	if !strings.Contains(out, "Synthetic data in use") || !strings.Contains(out, "source unavailable") {
		t.Errorf("synthetic banner missing:\n%s", out)
	}
}

func TestFormatSummary_NotSelected(t *testing.T) {
	if out := FormatSummary(dashboard.View{}); !strings.Contains(out, "No coin selected") {
		t.Errorf("out = %q", out)
	}
}

func TestFormatLoads(t *testing.T) {
	out := FormatLoads([]model.LoadEvent{{
		Symbol: "PEPE", Outcome: model.OutcomeEmpty, Synthetic: true,
		At: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Duration: 1500 * time.Microsecond,
	}})
	if !strings.Contains(out, "01-02 03:04:05 PEPE empty rows=0 rejected=0 2ms [synthetic]") {
		t.Errorf("out = %q", out)
	}
	if FormatLoads(nil) != "No loads recorded." {
		t.Error("empty list")
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags("<b>A &amp; B</b> &lt;x&gt;"); got != "A & B <x>" {
		t.Errorf("got %q", got)
	}
}
