package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"clockface/internal/audio"
	"clockface/internal/core/clockwork"
	"clockface/internal/core/model"
	"clockface/internal/core/timesource"
	"clockface/internal/logging"
	"clockface/internal/metrics"
	"clockface/internal/platform"
	"clockface/internal/storage"
	"clockface/internal/ui/face"
	"clockface/internal/ui/frames"
	"clockface/internal/ui/panel"
	"clockface/internal/ui/preferences"
	"clockface/internal/ui/tray"
	"clockface/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "Clockface"

type options struct {
	configPath  string
	debug       bool
	logFile     string
	ntpServer   string
	ntpInterval time.Duration
	metricsAddr string
	use24Hour   bool
	hideSeconds bool
	hideDate    bool
	tick        bool
	offsetHours int
	mute        bool
	party       bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return newCommand(&options{})
}

func newCommand(opts *options) *cobra.Command {
	command := &cobra.Command{
		Use:          "clockface",
		Short:        "Analog and digital desktop clock with alarms, stopwatch and timer",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := command.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML settings file, saved back on Preferences > Save (default: user config dir)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this rotating file")
	flags.StringVar(&opts.ntpServer, "ntp-server", "", "correct the wall clock against this NTP server")
	flags.DurationVar(&opts.ntpInterval, "ntp-interval", 10*time.Minute, "NTP resync interval")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. 127.0.0.1:9310")
	flags.BoolVar(&opts.use24Hour, "24h", false, "use the 24-hour clock")
	flags.BoolVar(&opts.hideSeconds, "no-seconds", false, "hide seconds in the digital readout")
	flags.BoolVar(&opts.hideDate, "no-date", false, "hide the date")
	flags.BoolVar(&opts.tick, "tick", false, "step the hands once per second instead of sweeping")
	flags.IntVar(&opts.offsetHours, "offset", 0, "show the time shifted by this many hours")
	flags.BoolVar(&opts.mute, "mute", false, "disable alert tones")
	flags.BoolVar(&opts.party, "party", false, "start in party mode")
	return command
}

func run(cmd *cobra.Command, opts *options) error {
	logger, err := logging.New(logging.Config{Debug: opts.debug, File: opts.logFile})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("already running, asked the other instance to show itself")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	opts.configPath, err = resolveConfigPath(opts.configPath, storage.DefaultPath)
	if err != nil {
		logger.Warn("settings will not be saved", zap.Error(err))
	}
	settings, err := loadSettings(cmd, opts, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var source timesource.Source = timesource.NewSystem()
	if opts.ntpServer != "" {
		source = timesource.NewNTP(opts.ntpServer, opts.ntpInterval, logger.Named("ntp"))
	}

	recorder := metrics.NewRecorder()
	if opts.metricsAddr != "" {
		server, err := metrics.NewServer(opts.metricsAddr, recorder)
		if err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
		go func() {
			if err := server.Run(ctx); err != nil {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		logger.Info("serving metrics", zap.String("addr", opts.metricsAddr))
	}

	fyneApp := app.NewWithID("com.clockface.app")
	activeIcon := resources.MustLogo(resources.LogoActive)
	pausedIcon := resources.MustLogo(resources.LogoPaused)
	fyneApp.SetIcon(activeIcon)

	clock := clockwork.New(source, settings.ClockSettings(), nil, clockwork.Config{
		FrameScheduler:    frames.NewFrameScheduler(),
		IntervalScheduler: frames.NewIntervalScheduler(time.Second, nil),
		Recorder:          recorder,
	})

	alerter := audio.NewAlerter(fyneApp, os.Stderr, func() bool {
		return clock.Settings().SoundEnabled
	}, logger.Named("audio"))

	var (
		prefsWindow   *preferences.Window
		clockWindow   *face.Window
		trayManager   *tray.Manager
		applySettings func(preferences.Settings)
	)
	controls := panel.New(clock, alerter, panel.Hooks{
		ApplySettings: func(updated model.ClockSettings) {
			applySettings(preferences.FromClockSettings(updated))
		},
		AlarmsChanged: func() {
			if trayManager != nil {
				trayManager.SetStatus(clock.Status())
			}
		},
	}, logger.Named("panel"))
	clockWindow = face.New(fyneApp, face.Config{Theme: settings.Theme, Title: appName}, controls.Content())
	clockWindow.Window().Canvas().SetOnTypedRune(controls.HandleRune)
	clock.SetSink(clockWindow)

	applySettings = func(updated preferences.Settings) {
		clock.UpdateSettings(updated.ClockSettings())
		clockWindow.UpdateConfig(face.Config{Theme: updated.Theme, Title: appName})
		if prefsWindow != nil {
			prefsWindow.UpdateSettings(updated)
		}
	}
	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		applySettings(updated)
		if opts.configPath == "" {
			return
		}
		if err := storage.SaveSettings(opts.configPath, updated); err != nil {
			logger.Warn("save settings", zap.String("path", opts.configPath), zap.Error(err))
		}
	})

	toggle := func(change func(*model.ClockSettings)) {
		current := clock.Settings()
		change(&current)
		applySettings(preferences.FromClockSettings(current))
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, appName, tray.Callbacks{
			OnShow:        clockWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnToggle24Hour: func() {
				toggle(func(settings *model.ClockSettings) { settings.Use24Hour = !settings.Use24Hour })
			},
			OnToggleSeconds: func() {
				toggle(func(settings *model.ClockSettings) { settings.ShowSeconds = !settings.ShowSeconds })
			},
			OnToggleSmooth: func() {
				toggle(func(settings *model.ClockSettings) { settings.SmoothHands = !settings.SmoothHands })
			},
			OnTogglePause: func() {
				if clock.Paused() {
					clock.Resume()
					desktopApp.SetSystemTrayIcon(activeIcon)
				} else {
					clock.Pause()
					desktopApp.SetSystemTrayIcon(pausedIcon)
				}
				trayManager.SetPaused(clock.Paused())
			},
			OnQuit: fyneApp.Quit,
		})
		trayManager.SetSettings(clock.Settings())
		trayManager.SetStatus(clock.Status())
		desktopApp.SetSystemTrayIcon(activeIcon)
		clockWindow.Window().SetCloseIntercept(clockWindow.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		clockWindow.Window().SetMaster()
	}

	events := clock.Subscribe(16)
	go func() {
		for event := range events {
			handleEvent(event, alerter, trayManager, clock, logger)
		}
	}()

	guard.OnActivate(func() {
		fyne.Do(clockWindow.Show)
	})

	fyneApp.Lifecycle().SetOnStarted(clock.Start)
	clockWindow.Show()
	fyneApp.Run()

	clock.Stop()
	return nil
}

func handleEvent(event clockwork.Event, alerter *audio.Alerter, trayManager *tray.Manager, clock *clockwork.Clock, logger *zap.Logger) {
	switch event.Type {
	case clockwork.EventAlarmFired:
		logger.Info("alarm fired", zap.String("id", event.Alarm.ID), zap.String("time", event.Alarm.TimeOfDay))
		fyne.Do(func() {
			alerter.Alarm(event.Alarm)
		})
	case clockwork.EventTimerExpired:
		logger.Info("timer expired")
		fyne.Do(alerter.TimerExpired)
	case clockwork.EventSettingsChanged, clockwork.EventPaused, clockwork.EventResumed:
		logger.Debug("clock updated", zap.String("event", string(event.Type)))
		if trayManager == nil {
			return
		}
		status := clock.Status()
		fyne.Do(func() {
			trayManager.SetSettings(event.Settings)
			trayManager.SetStatus(status)
		})
	}
}

func loadSettings(cmd *cobra.Command, opts *options, logger *zap.Logger) (preferences.Settings, error) {
	flags := cmd.Flags()
	settings := preferences.DefaultSettings()
	if opts.configPath != "" {
		loaded, err := storage.LoadSettings(opts.configPath)
		switch {
		case err == nil:
			settings = loaded
		case flags.Changed("config"):
			return settings, fmt.Errorf("load settings: %w", err)
		default:
			logger.Warn("ignoring unreadable settings file", zap.String("path", opts.configPath), zap.Error(err))
		}
	}

	if flags.Changed("24h") {
		settings.Use24Hour = opts.use24Hour
	}
	if flags.Changed("no-seconds") {
		settings.ShowSeconds = !opts.hideSeconds
	}
	if flags.Changed("no-date") {
		settings.ShowDate = !opts.hideDate
	}
	if flags.Changed("tick") {
		settings.SmoothHands = !opts.tick
	}
	if flags.Changed("offset") {
		settings.TimezoneOffsetHours = opts.offsetHours
	}
	if flags.Changed("mute") {
		settings.SoundEnabled = !opts.mute
	}
	if flags.Changed("party") && opts.party {
		settings.Theme = model.ThemeParty
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid flags: %w", err)
	}
	return settings, nil
}

// resolveConfigPath falls back to the per-user settings file when no path
// was given.
func resolveConfigPath(path string, defaultPath func(appName string) (string, error)) (string, error) {
	if path != "" {
		return path, nil
	}
	resolved, err := defaultPath(appName)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return resolved, nil
}
