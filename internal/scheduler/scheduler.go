// Package scheduler runs the periodic refresh and digest jobs and answers
// chat commands against the dashboard.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"BoomDoomRadar/internal/dashboard"
	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/notifier"
	"BoomDoomRadar/internal/recorder"
)

// recentLoadsLimit bounds the /loads reply.
const recentLoadsLimit = 10

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Dashboard *dashboard.Dashboard
	Notifier  dashboard.Notifier
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, d *dashboard.Dashboard, n dashboard.Notifier, rec recorder.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Dashboard: d,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// RegisterAll registers the refresh and digest tasks. An empty spec skips
// that task.
func (s *Scheduler) RegisterAll(refreshCron, digestCron string) error {
	if refreshCron != "" {
		if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
			return fmt.Errorf("register refresh task: %w", err)
		}
	}
	if digestCron != "" {
		if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
			return fmt.Errorf("register digest task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately.
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

// RunDigestNow sends the digest immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running refresh task")
	v, err := s.Dashboard.Refresh(s.Ctx)
	switch {
	case errors.Is(err, dashboard.ErrNoSelection):
		log.Println("[WARN] refresh skipped: no coin selected")
	case errors.Is(err, dashboard.ErrSuperseded):
		log.Printf("[INFO] refresh superseded: %v", err)
	case err != nil:
		log.Printf("[ERROR] refresh: %v", err)
	default:
		log.Printf("[INFO] refreshed %s: %d records, synthetic=%v", v.Coin.Symbol, v.Total, v.Synthetic)
	}
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running digest task")
	v := s.Dashboard.View()
	if !v.Selected {
		log.Println("[WARN] digest skipped: no coin selected")
		return
	}
	s.trySend(model.Notice{
		Level: model.NoticeInfo,
		Title: "Daily digest",
		Text:  notifier.FormatSummary(v),
		HTML:  true,
	})
}

// HandleCommand processes a user command and returns an HTML reply.
func (s *Scheduler) HandleCommand(command string) string {
	name, arg, _ := strings.Cut(strings.TrimSpace(command), " ")
	arg = strings.TrimSpace(arg)
	// Commands may be addressed as /cmd@botname in group chats.
	name, _, _ = strings.Cut(strings.ToLower(name), "@")

	switch name {
	case "/coin":
		if arg == "" {
			return "Usage: /coin &lt;symbol or name&gt;"
		}
		v, err := s.Dashboard.Select(s.Ctx, arg)
		switch {
		case errors.Is(err, dashboard.ErrUnknownSymbol):
			// The dashboard already sent a notice.
			return ""
		case err != nil:
			return fmt.Sprintf("❌ %s", html.EscapeString(err.Error()))
		}
		return notifier.FormatSummary(v)
	case "/tf":
		v := s.Dashboard.SetTimeFrame(arg)
		if arg != "" && !model.ValidTimeFrame(arg) {
			return fmt.Sprintf("Unknown time frame %q, showing ALL.\n\n%s", html.EscapeString(arg), notifier.FormatSummary(v))
		}
		return notifier.FormatSummary(v)
	case "/stats":
		return notifier.FormatSummary(s.Dashboard.View())
	case "/search":
		return notifier.FormatCoins(s.Dashboard.Coins().Search(arg))
	case "/refresh":
		v, err := s.Dashboard.Refresh(s.Ctx)
		if err != nil {
			return fmt.Sprintf("❌ %s", html.EscapeString(err.Error()))
		}
		return notifier.FormatSummary(v)
	case "/loads":
		events, err := s.Recorder.RecentLoads(recentLoadsLimit)
		if err != nil {
			log.Printf("[ERROR] recent loads: %v", err)
			return "❌ could not read load history"
		}
		return notifier.FormatLoads(events)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(n model.Notice) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(s.Ctx, n); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
