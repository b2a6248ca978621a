// Package main implements the meetsync CLI for planning meetings across timezones.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/meetsync/pkg/config"
	"github.com/codeGROOVE-dev/meetsync/pkg/histogram"
	"github.com/codeGROOVE-dev/meetsync/pkg/invite"
	"github.com/codeGROOVE-dev/meetsync/pkg/meeting"
	"github.com/codeGROOVE-dev/meetsync/pkg/session"
	"github.com/codeGROOVE-dev/meetsync/pkg/suitability"
	"github.com/codeGROOVE-dev/meetsync/pkg/tzconvert"
)

var (
	configPath = flag.String("config", "", "Config file (or set MEETSYNC_CONFIG)")
	zonesSpec  = flag.String("zones", "", "Comma-separated zones, e.g. \"*Berlin=Europe/Berlin,Asia/Tokyo\" (* marks your zone)")
	ambientTZ  = flag.String("tz", "", "Timezone for -date, -at and the day strip (or set MEETSYNC_TZ)")
	dateFlag   = flag.String("date", "", "Meeting date, YYYY-MM-DD")
	atFlag     = flag.String("at", "", "Meeting time, HH:MM (24-hour, snapped to 15 minutes)")
	optimal    = flag.Bool("optimal", false, "Jump to the optimal meeting time of the day")
	use24Hour  = flag.Bool("24h", false, "Use 24-hour time")
	watch      = flag.Bool("watch", false, "Follow the clock and redraw every minute until interrupted")
	icsPath    = flag.String("ics", "", "Write the selected meeting to an .ics file")
	summary    = flag.String("summary", "Meeting", "Event summary for -ics")
	duration   = flag.Duration("duration", 30*time.Minute, "Event duration for -ics")
	noColor    = flag.Bool("no-color", false, "Disable colored output")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("meetsync CLI v1.0.0")
		return
	}

	if flag.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Configure logging
	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if *noColor {
		color.NoColor = true
	}

	if err := run(logger); err != nil {
		logger.Error("meetsync failed", "error", err)
		fmt.Fprintf(os.Stderr, "meetsync: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	if *zonesSpec != "" {
		zones, err := config.ParseZones(*zonesSpec)
		if err != nil {
			return err
		}
		cfg.Zones = zones
	}

	// Ambient timezone: flag, then environment, then config, then host.
	tzName := *ambientTZ
	if tzName == "" {
		tzName = os.Getenv(config.EnvTimezone)
	}
	if tzName == "" {
		tzName = cfg.Timezone
	}
	loc := time.Local
	if tzName != "" {
		if loc, err = tzconvert.Load(tzName); err != nil {
			return err
		}
	}

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	sess, err := session.New(
		session.WithZones(cfg.Zones),
		session.WithLocation(loc),
		session.WithCatalog(cat),
		session.With24Hour(cfg.Is24Hour || *use24Hour),
		session.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Debug("session created",
		"zones", len(sess.Zones()),
		"enabled", len(sess.Enabled()),
		"ambient", loc.String(),
		"24h", sess.Is24Hour())

	if err := applyTimeFlags(sess); err != nil {
		return err
	}

	if *watch && sess.Mode() == session.Pinned {
		return errors.New("-watch follows the clock and cannot be combined with -date, -at or -optimal")
	}

	if err := printReport(sess); err != nil {
		return err
	}

	if *icsPath != "" {
		if err := writeInvite(sess, logger); err != nil {
			return err
		}
	}

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("following clock", "interval", time.Minute)
		sess.Run(ctx, func(session.Snapshot) {
			fmt.Print("\033[H\033[2J")
			if err := printReport(sess); err != nil {
				logger.Error("refresh failed", "error", err)
			}
		})
	}

	logger.Debug("location cache", "stats", tzconvert.CacheStats())
	return nil
}

func loadConfig(logger *slog.Logger) (*config.Config, error) {
	path := *configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	if path != "" {
		logger.Debug("loading config", "path", path)
		return config.Load(path, false)
	}

	defaultPath, err := config.DefaultPath()
	if err != nil {
		logger.Debug("no default config location", "error", err)
		return &config.Config{}, nil
	}
	logger.Debug("loading optional config", "path", defaultPath)
	return config.Load(defaultPath, true)
}

// applyTimeFlags pins the session according to -date, -at and -optimal.
func applyTimeFlags(sess *session.Session) error {
	if *dateFlag != "" {
		day, err := time.ParseInLocation("2006-01-02", *dateFlag, sess.Location())
		if err != nil {
			return fmt.Errorf("invalid -date %q: %w", *dateFlag, err)
		}
		cur := sess.Selected()
		sess.SetTime(time.Date(day.Year(), day.Month(), day.Day(), cur.Hour(), cur.Minute(), 0, 0, sess.Location()))
	}

	if *atFlag != "" {
		at, err := time.Parse("15:04", *atFlag)
		if err != nil {
			return fmt.Errorf("invalid -at %q: %w", *atFlag, err)
		}
		minute := at.Hour()*60 + at.Minute()
		snapped := session.SliderMinute(minute)
		if snapped != minute {
			slog.Info("-at snapped to slider step", "requested", *atFlag, "minute", snapped)
		}
		if err := sess.SetMinuteOfDay(snapped); err != nil {
			return err
		}
	}

	if *optimal {
		if _, err := sess.JumpToOptimal(); err != nil {
			return err
		}
	}
	return nil
}

func printReport(sess *session.Session) error {
	snap := sess.Snapshot()
	is24 := snap.Is24Hour

	result, err := sess.Score()
	if err != nil {
		return err
	}
	samples, err := sess.Sweep()
	if err != nil {
		return err
	}

	// Header
	fmt.Printf("\n🕒 Meeting Time: %s (%s)\n",
		tzconvert.FormatMinute(tzconvert.MinuteOfDay(snap.Selected), is24), sess.Location())
	fmt.Printf("📅 %s", snap.Selected.Format("Monday, January 2, 2006"))
	if snap.Mode == session.Pinned {
		fmt.Print("  📌 pinned")
	}
	fmt.Println()
	fmt.Println(strings.Repeat("─", 50))

	printZones(sess, snap)
	printScore(result.Percentage, result.Rating(), result.Counts, len(result.Zones))

	fmt.Println()
	fmt.Print(histogram.Generate(&histogram.Strip{
		Samples:  samples,
		Label:    sess.Location().String(),
		Optimal:  meeting.Best(samples),
		Selected: tzconvert.MinuteOfDay(snap.Selected),
		Is24Hour: is24,
	}))
	return nil
}

func printZones(sess *session.Session, snap session.Snapshot) {
	cat := sess.Catalog()
	dim := color.New(color.FgHiBlack)

	for _, z := range snap.Zones {
		local, err := tzconvert.LocalTime(snap.Selected, z.Timezone)
		if err != nil {
			fmt.Printf("   %-16s %v\n", z.Name, err)
			continue
		}
		offset, _ := tzconvert.OffsetString(snap.Selected, z.Timezone)

		marker := "  "
		if z.IsMyTimezone {
			marker = color.New(color.FgYellow).Sprint("★") + " "
		}

		line := fmt.Sprintf("%s%-16s %8s  %-11s %-5s %-9s",
			marker,
			z.Name,
			tzconvert.FormatMinute(tzconvert.MinuteOfDay(local), snap.Is24Hour),
			local.Format("Mon, Jan 2"),
			cat.Abbr(z.Timezone),
			offset)

		if !z.Enabled {
			fmt.Println(dim.Sprint(line + "  (hidden)"))
			continue
		}
		tier := suitability.Classify(local.Hour())
		fmt.Println(line + "  " + histogram.TierColor(tier).Sprint(tier.Label()))
	}
}

func printScore(percentage int, rating suitability.Rating, counts map[suitability.Tier]int, zones int) {
	fmt.Println()
	if zones == 0 {
		fmt.Println("No timezones selected. Enable some timezones to score a meeting time.")
		return
	}

	plural := "s"
	if zones == 1 {
		plural = ""
	}
	fmt.Printf("📈 Meeting Suitability: %d%%  %s %s  (%d zone%s)\n",
		percentage, rating.Severity.Icon(), histogram.RatingColor(rating).Sprint(rating.Label), zones, plural)

	parts := make([]string, 0, 4)
	for _, tier := range suitability.AllTiers() {
		parts = append(parts, histogram.TierColor(tier).Sprintf("%s %d", tier.Short(), counts[tier]))
	}
	fmt.Println("   " + strings.Join(parts, " · "))
}

func writeInvite(sess *session.Session, logger *slog.Logger) error {
	snap := sess.Snapshot()
	f, err := os.Create(*icsPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *icsPath, err)
	}

	err = invite.Encode(f, &invite.Invite{
		Start:    snap.Selected,
		Summary:  *summary,
		Zones:    snap.Zones,
		Duration: *duration,
		Is24Hour: snap.Is24Hour,
	}, time.Now())
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing %s: %w", *icsPath, closeErr)
	}
	if err != nil {
		return err
	}

	logger.Info("invite written", "path", *icsPath, "start", snap.Selected)
	fmt.Printf("\n📨 Invite written to %s\n", *icsPath)
	return nil
}
