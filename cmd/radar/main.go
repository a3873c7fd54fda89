package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"BoomDoomRadar/internal/cache"
	"BoomDoomRadar/internal/coins"
	"BoomDoomRadar/internal/collector"
	"BoomDoomRadar/internal/config"
	"BoomDoomRadar/internal/dashboard"
	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/notifier"
	"BoomDoomRadar/internal/parser"
	"BoomDoomRadar/internal/recorder"
	"BoomDoomRadar/internal/saver"
	"BoomDoomRadar/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	once := flag.Bool("once", false, "load one coin, print its summary and exit")
	symbol := flag.String("symbol", "", "coin symbol or name (default from config)")
	frame := flag.String("frame", "", "time frame: 1D, 1W, 1M, 3M, 1Y or ALL")
	export := flag.String("export", "", "write the loaded series to this path and exit")
	exportFormat := flag.String("format", "", "export format: csv, json or parquet (default from -export extension)")
	flag.Parse()

	log.Println("[INFO] BoomDoomRadar starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	// Resume the last selection unless the command line overrides it.
	st, err := dashboard.LoadState(cfg.Dashboard.StateFile)
	if err != nil {
		log.Printf("[WARN] load dashboard state: %v", err)
		st = &dashboard.State{}
	}
	if st.Symbol != "" {
		cfg.Dashboard.DefaultSymbol = st.Symbol
	}
	if st.TimeFrame != "" {
		cfg.Dashboard.TimeFrame = string(st.TimeFrame)
	}
	if *symbol != "" {
		cfg.Dashboard.DefaultSymbol = *symbol
	}
	if *frame != "" {
		cfg.Dashboard.TimeFrame = *frame
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init source
	var src collector.Source
	if cfg.Source.BaseURL != "" {
		hs := collector.NewHTTPSource(cfg.Source.BaseURL, cfg.Proxy)
		hs.MaxBytes = cfg.Source.MaxPayload
		src = hs
	} else {
		fs := collector.NewFileSource(cfg.Source.DataDir)
		fs.MaxBytes = cfg.Source.MaxPayload
		src = fs
	}
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL)
		if err != nil {
			log.Printf("[WARN] init redis cache failed, fetching uncached: %v", err)
		} else {
			defer rc.Close()
			src = collector.NewCachedSource(src, rc)
		}
	}
	log.Printf("[INFO] data source: %s", src.Name())

	loader := collector.NewLoader(src, parser.New(cfg.Parser.MinFields))
	loader.Timeout = cfg.Source.Timeout
	loader.MinPayload = cfg.Source.MinPayload

	// Init recorder
	rec, err := recorder.Open(cfg.Database.Driver, cfg.Database.SQLitePath, cfg.Database.PostgresDSN)
	if err != nil {
		log.Printf("[WARN] init %s recorder failed, using noop: %v", cfg.Database.Driver, err)
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	// Init notifier
	var tn *notifier.TelegramNotifier
	var n dashboard.Notifier = notifier.NewLogNotifier()
	if cfg.TelegramEnabled() && !*once && *export == "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := dashboard.Options{
		TimeFrame: model.TimeFrame(cfg.Dashboard.TimeFrame),
		Weights:   cfg.Score,
		MockDays:  cfg.Dashboard.MockDays,
	}
	if !*once && *export == "" {
		opts.StatePath = cfg.Dashboard.StateFile
	}
	dash := dashboard.New(loader, coins.Default(), n, rec, opts)

	if *once || *export != "" {
		if err := runOnce(ctx, dash, cfg.Dashboard.DefaultSymbol, *export, *exportFormat); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
		return
	}

	if _, err := dash.Select(ctx, cfg.Dashboard.DefaultSymbol); err != nil {
		log.Printf("[WARN] initial selection: %v", err)
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, dash, n, rec)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, sending digest now")
		go sched.RunDigestNow()
	}

	log.Println("[INFO] BoomDoomRadar is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	dash.Cancel()
	cancel()
	log.Println("[INFO] BoomDoomRadar stopped")
}

// runOnce loads symbol, prints the summary and optionally exports the series.
func runOnce(ctx context.Context, dash *dashboard.Dashboard, symbol, exportPath, exportFormat string) error {
	v, err := dash.Select(ctx, symbol)
	if err != nil {
		return fmt.Errorf("select %s: %w", symbol, err)
	}
	fmt.Print(notifier.StripTags(notifier.FormatSummary(v)))

	if exportPath == "" {
		return nil
	}
	if exportFormat == "" {
		exportFormat = strings.TrimPrefix(filepath.Ext(exportPath), ".")
	}
	s := saver.NewSeriesSaver(exportFormat)
	if s == nil {
		return fmt.Errorf("unsupported export format %q (use: %s)", exportFormat, strings.Join(saver.Formats, ", "))
	}
	if dir := filepath.Dir(exportPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := s.Save(v.Series, exportPath); err != nil {
		return fmt.Errorf("export %s: %w", exportPath, err)
	}
	if v.Synthetic {
		log.Printf("[WARN] exported series is synthetic: %v", v.LoadError)
	}
	log.Printf("[INFO] exported %d records to %s", len(v.Series), exportPath)
	return nil
}
