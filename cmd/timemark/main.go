// Package main provides the CLI entry point for timemark.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/timemark/pkg/adapters/filesink"
	"github.com/user/timemark/pkg/adapters/filesource"
	"github.com/user/timemark/pkg/adapters/ggrenderer"
	"github.com/user/timemark/pkg/adapters/logger"
	"github.com/user/timemark/pkg/adapters/nullsink"
	"github.com/user/timemark/pkg/adapters/osfilesystem"
	"github.com/user/timemark/pkg/composer"
	"github.com/user/timemark/pkg/config"
	"github.com/user/timemark/pkg/pipeline"
	"github.com/user/timemark/pkg/ports"
	"github.com/user/timemark/pkg/session"
	"github.com/user/timemark/pkg/stages/infocluster"
	"github.com/user/timemark/pkg/stages/redact"
	"github.com/user/timemark/pkg/stages/watermark"
	"github.com/user/timemark/pkg/timemark"
)

var version = "dev"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp assembles the CLI application with its subcommands.
func newApp() *cli.App {
	return &cli.App{
		Name:    "timemark",
		Usage:   l10n.T("Stamp photos with a styled time, date and address overlay"),
		Version: version,
		Commands: []*cli.Command{
			stampCommand(),
			weekdaysCommand(),
			versionCommand(),
		},
	}
}

// stampCommand defines the stamp subcommand.
func stampCommand() *cli.Command {
	return &cli.Command{
		Name:  "stamp",
		Usage: l10n.T("Stamp a photo with the time, date and address overlay"),
		Flags: []cli.Flag{
			// Input/Output
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: l10n.T("Input photo path (JPEG or PNG)")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output photo path")},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML config file path")},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "auto", Usage: l10n.T("Output format (jpeg, png or auto)")},
			&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Value: 92, Usage: l10n.T("JPEG quality (1-100)")},
			&cli.IntFlag{Name: "max-dimension", Usage: l10n.T("Longest side cap in pixels (0 = keep photos as shot)")},

			// Overlay fields
			&cli.StringFlag{Name: "time", Usage: l10n.T("Clock text shown large, usually HH:MM")},
			&cli.StringFlag{Name: "date", Usage: l10n.T("ISO date YYYY-MM-DD (default: today)")},
			&cli.StringFlag{Name: "weekday", Usage: l10n.T("Weekday label (see the weekdays command)")},
			&cli.StringFlag{Name: "address1", Usage: l10n.T("Upper address line")},
			&cli.StringFlag{Name: "address2", Usage: l10n.T("Lower address line")},

			// Redaction
			&cli.StringSliceFlag{Name: "redact", Aliases: []string{"r"}, Usage: l10n.T("Redaction stroke as x,y or x,y,r (repeatable)")},
			&cli.IntFlag{Name: "brush-radius", Usage: l10n.T("Stroke radius in pixels when a stroke gives none")},

			// Branding
			&cli.StringFlag{Name: "brand-lead", Usage: l10n.T("Accent half of the brand word")},
			&cli.StringFlag{Name: "brand-tail", Usage: l10n.T("Plain half of the brand word")},
			&cli.StringFlag{Name: "brand-subtitle", Usage: l10n.T("Tagline centered under the brand")},

			// Style
			&cli.StringFlag{Name: "accent-color", Usage: l10n.T("Accent color (hex, e.g., #f2b644)")},
			&cli.StringFlag{Name: "text-color", Usage: l10n.T("Text color (hex)")},
			&cli.StringFlag{Name: "subtitle-color", Usage: l10n.T("Subtitle color (hex)")},
			&cli.StringFlag{Name: "font", Usage: l10n.T("Font file overriding the bundled faces")},

			// Debug
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output")},
			&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output")},

			// Logging
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: runStamp,
	}
}

// weekdaysCommand defines the weekdays subcommand.
func weekdaysCommand() *cli.Command {
	return &cli.Command{
		Name:  "weekdays",
		Usage: l10n.T("List the weekday labels the overlay accepts"),
		Action: func(c *cli.Context) error {
			for _, w := range pipeline.Weekdays() {
				fmt.Println(w)
			}
			return nil
		},
	}
}

// versionCommand defines the version subcommand.
func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("timemark version %s", version))
			return nil
		},
	}
}

// runStamp executes the stamp command.
func runStamp(c *cli.Context) error {
	// Load the config file and apply CLI overrides
	fileCfg := config.Defaults()
	if c.IsSet("config") {
		var err error
		fileCfg, err = config.LoadFromFile(c.String("config"))
		if err != nil {
			return fmt.Errorf("load config %s: %w", c.String("config"), err)
		}
	}
	cfg := buildConfig(c, fileCfg)

	// Unknown weekdays are rejected here; the overlay itself falls back
	// silently, which would hide a typo.
	if cfg.Weekday != "" && !pipeline.IsWeekday(cfg.Weekday) {
		return errors.New(l10n.F("Unknown weekday %q, valid labels: %s", cfg.Weekday, strings.Join(pipeline.Weekdays(), ", ")))
	}

	// Resolve paths
	inputPath := fileCfg.InputPath
	if c.IsSet("input") {
		inputPath = c.String("input")
	}
	outputPath := fileCfg.OutputPath
	if c.IsSet("output") {
		outputPath = c.String("output")
	}
	if inputPath == "" {
		return errors.New(l10n.T("Input photo path is required (-i or the config file)"))
	}
	if outputPath == "" {
		return errors.New(l10n.T("Output photo path is required (-o or the config file)"))
	}

	// Parse redaction strokes
	strokes, err := parseStrokes(c.StringSlice("redact"), cfg.BrushRadius)
	if err != nil {
		return err
	}

	// Resolve the output format
	formatName := fileCfg.Format
	if c.IsSet("format") {
		formatName = c.String("format")
	}
	format, err := resolveFormat(formatName, outputPath)
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down...")
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	// Create debug sink
	var sink ports.DebugSink
	debug := fileCfg.Debug || c.Bool("debug")
	debugDir := fileCfg.DebugDir
	if c.IsSet("debug-dir") {
		debugDir = c.String("debug-dir")
	}
	if debug {
		if err := fs.MkdirAll(debugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(debugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	log.Info("Stamping %s...", inputPath)

	// Acquire the source photo
	source := filesource.New(inputPath, fs)
	data, err := source.Acquire(ctx)
	if err != nil {
		log.Error("Failed to read input: %s", err)
		return err
	}

	// Load it into a fresh session. Fields go in before the photo so an
	// empty date picks up today's.
	sess := session.New(renderer, log, cfg.ToSessionConfig())
	sess.SetFields(cfg.OverlayFields())
	if err := sess.LoadImage(data); err != nil {
		log.Error("Failed to decode photo: %s", err)
		return err
	}

	// Paint redaction strokes
	for _, s := range strokes {
		if err := sess.Paint(s.x, s.y, s.radius); err != nil {
			return err
		}
	}

	// Create stages
	redactStage := redact.NewStage(renderer, log)
	watermarkStage := watermark.NewStage(log)
	clusterStage := infocluster.NewStage(log)

	// Create the composer
	comp := composer.New(
		redactStage,
		watermarkStage,
		clusterStage,
		renderer,
		sink,
		log,
	)

	// Compose the overlay
	if _, err := comp.Redraw(ctx, sess, cfg.ToComposerConfig()); err != nil {
		return err
	}

	// Encode and write the output
	out, err := sess.ExportEncoded(format, cfg.Quality)
	if err != nil {
		log.Error("Failed to encode output: %s", err)
		return err
	}
	if err := fs.WriteFile(outputPath, out); err != nil {
		log.Error("Failed to write output: %s", err)
		return err
	}

	log.Info("Output saved to %s", outputPath)
	return nil
}

// buildConfig creates a timemark.Config from the config file values and
// CLI overrides.
func buildConfig(c *cli.Context, fileCfg config.Config) timemark.Config {
	builder := timemark.NewConfigBuilder().
		WithMaxDimension(fileCfg.MaxDimension).
		WithQuality(fileCfg.Quality).
		WithTime(fileCfg.Time).
		WithDate(fileCfg.Date).
		WithWeekday(fileCfg.Weekday).
		WithBrandSubtitle(fileCfg.BrandSubtitle).
		WithFontPath(fileCfg.Theme.FontPath).
		WithBrushRadius(fileCfg.BrushRadius)

	// Apply field overrides
	if c.IsSet("max-dimension") {
		builder.WithMaxDimension(c.Int("max-dimension"))
	}
	if c.IsSet("quality") {
		builder.WithQuality(c.Int("quality"))
	}
	if c.IsSet("time") {
		builder.WithTime(c.String("time"))
	}
	if c.IsSet("date") {
		builder.WithDate(c.String("date"))
	}
	if c.IsSet("weekday") {
		builder.WithWeekday(c.String("weekday"))
	}

	// Paired values merge line by line
	line1, line2 := fileCfg.AddressLine1, fileCfg.AddressLine2
	if c.IsSet("address1") {
		line1 = c.String("address1")
	}
	if c.IsSet("address2") {
		line2 = c.String("address2")
	}
	builder.WithAddress(line1, line2)

	lead, tail := fileCfg.BrandLead, fileCfg.BrandTail
	if c.IsSet("brand-lead") {
		lead = c.String("brand-lead")
	}
	if c.IsSet("brand-tail") {
		tail = c.String("brand-tail")
	}
	builder.WithBrand(lead, tail)

	if c.IsSet("brand-subtitle") {
		builder.WithBrandSubtitle(c.String("brand-subtitle"))
	}

	// Apply style overrides
	if c.IsSet("accent-color") {
		builder.WithAccentColor(config.ParseColor(c.String("accent-color")))
	} else if fileCfg.Theme.AccentColor != "" {
		builder.WithAccentColor(config.ParseColor(fileCfg.Theme.AccentColor))
	}
	if c.IsSet("text-color") {
		builder.WithTextColor(config.ParseColor(c.String("text-color")))
	} else if fileCfg.Theme.TextColor != "" {
		builder.WithTextColor(config.ParseColor(fileCfg.Theme.TextColor))
	}
	if c.IsSet("subtitle-color") {
		builder.WithSubtitleColor(config.ParseColor(c.String("subtitle-color")))
	} else if fileCfg.Theme.SubtitleColor != "" {
		builder.WithSubtitleColor(config.ParseColor(fileCfg.Theme.SubtitleColor))
	}
	if c.IsSet("font") {
		builder.WithFontPath(c.String("font"))
	}
	if c.IsSet("brush-radius") {
		builder.WithBrushRadius(c.Int("brush-radius"))
	}

	return builder.Build()
}

// stroke is one parsed redaction stroke.
type stroke struct {
	x, y, radius int
}

// parseStrokes parses --redact values of the form "x,y" or "x,y,r".
// Strokes without a radius use the configured brush radius.
func parseStrokes(specs []string, brushRadius int) ([]stroke, error) {
	strokes := make([]stroke, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ",")
		if len(parts) != 2 && len(parts) != 3 {
			return nil, errors.New(l10n.F("Invalid redact stroke %q, expected x,y or x,y,r", spec))
		}
		nums := make([]int, len(parts))
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, errors.New(l10n.F("Invalid redact stroke %q, expected x,y or x,y,r", spec))
			}
			nums[i] = n
		}
		s := stroke{x: nums[0], y: nums[1], radius: brushRadius}
		if len(nums) == 3 {
			s.radius = nums[2]
		}
		strokes = append(strokes, s)
	}
	return strokes, nil
}

// resolveFormat maps the format option to a concrete encoder format.
// "auto" follows the output extension, defaulting to JPEG.
func resolveFormat(name, outputPath string) (ports.ImageFormat, error) {
	format, err := ports.ParseFormat(name)
	if err != nil {
		return 0, err
	}
	if format != ports.FormatAuto {
		return format, nil
	}
	if strings.ToLower(filepath.Ext(outputPath)) == ".png" {
		return ports.FormatPNG, nil
	}
	return ports.FormatJPEG, nil
}
