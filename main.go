package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"
	"time"

	"wink/config"
	"wink/hotkey"
	"wink/landmark"
	"wink/log"
	"wink/notify"
)

var version = "dev"

var shutdownOnce sync.Once

func gracefulShutdown(sess *Session) {
	shutdownOnce.Do(func() {
		if sess != nil {
			sess.Stop()
		}
		log.Close()
		tuiMu.Lock()
		p := tuiProgram
		tuiMu.Unlock()
		if p != nil {
			p.Quit()
		}
		os.Exit(0)
	})
}

// askConsent prompts on stdin when consent was not granted via flag.
func askConsent() bool {
	fmt.Println("wink reads eye landmarks from a local companion page to detect blinks.")
	fmt.Println("Landmarks never leave this machine and nothing is recorded.")
	fmt.Print("Start watching? [y/N] ")
	var answer string
	fmt.Scanln(&answer)
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func main() {
	run()
}

func run() {
	configFlag := flag.String("config", "", "Config file path (default: OS-specific location)")
	thresholdFlag := flag.Int("threshold", 0, "Alert after this many seconds without a blink (5, 8, 10, 12 or 15)")
	consentFlag := flag.Bool("consent", false, "Grant webcam-landmark consent without prompting")
	notifyFlag := flag.Bool("notify", true, "Send a desktop notification when an alert fires")
	listenFlag := flag.String("listen", "", "Listen address for the landmark websocket (default from config)")
	setupFlag := flag.Bool("setup", false, "Pick the alert threshold interactively and exit")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	crashFlag := flag.Bool("crash", false, "Trigger synthetic panic for testing crash logging")
	testFlag := flag.Bool("test", false, "Test mode (headless, stdin-driven, landmark script)")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("wink %s\n", version)
		os.Exit(0)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *crashFlag {
		panic("TEST CRASH: synthetic panic to verify crash logging")
	}

	cfgPath := *configFlag
	if cfgPath == "" {
		cfgPath, err = config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *setupFlag {
		if err := runSetup(cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *thresholdFlag != 0 {
		if !config.ValidThreshold(*thresholdFlag) {
			fmt.Fprintf(os.Stderr, "Error: threshold must be one of %v\n", config.AllowedThresholds)
			os.Exit(1)
		}
		cfg.ThresholdSeconds = *thresholdFlag
	}
	if *listenFlag != "" {
		cfg.ListenAddr = *listenFlag
	}
	cfg.Notifications = cfg.Notifications && *notifyFlag

	opts := SessionOptions{
		Threshold:     time.Duration(cfg.ThresholdSeconds) * time.Second,
		Notifications: cfg.Notifications,
		Consent:       true,
	}

	if *testFlag {
		args := flag.Args()
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Usage: wink -test <landmark-script>")
			os.Exit(1)
		}
		runTestMode(args[0], opts)
		return
	}

	if !*consentFlag && !askConsent() {
		fmt.Println("Aborted.")
		os.Exit(0)
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	var notifier notify.Notifier = notify.New()
	if cfg.Notifications && notifier.Request() != notify.PermissionGranted {
		log.Warn("notifications unavailable, alerts will beep only")
	}

	src := landmark.NewWSSource(cfg.ListenAddr)
	defer src.Close()

	sess := NewSession(src, tuiSink{}, notifier, opts)

	toggleCh := make(chan struct{}, 1)

	// Start TUI
	if !*tuiFlag {
		tuiReadyOnce.Do(func() { close(tuiReady) })
	} else {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram(cfg.ThresholdSeconds, toggleCh)
		tuiMu.Unlock()

		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
				os.Exit(1)
			}
			gracefulShutdown(sess)
		}()

		<-tuiReady
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		gracefulShutdown(sess)
	}()

	hk := hotkey.New()
	if err := hk.Register(); err != nil {
		log.Errorf("hotkey register error: %v", err)
		logToTUI("hotkey unavailable: %v", err)
	} else {
		defer hk.Unregister()
	}

	logToTUI("landmark source on ws://%s/landmarks", src.Addr())

	toggle := func() {
		if sess.Running() {
			sess.Stop()
			return
		}
		if err := sess.Start(); err != nil {
			log.Errorf("session start error: %v", err)
			logToTUI("Error: %v", err)
		}
	}

	// Start watching right away; the hotkey and TUI toggle from here on
	toggle()

	for {
		select {
		case <-hk.Toggled():
			log.Info("hotkey_toggle")
			toggle()
		case <-toggleCh:
			toggle()
		}
	}
}
