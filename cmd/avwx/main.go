package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/flightwx/avwx"
	"github.com/flightwx/avwx/internal/fetch"
)

var cli struct {
	Station string `arg:"" optional:"" help:"ICAO station identifier (e.g. KJFK, EGLL)."`
	Metar   bool   `help:"Show only the METAR."`
	Taf     bool   `help:"Show only the TAF."`
	NoRaw   bool   `name:"no-raw" help:"Hide the raw report text."`
	NoColor bool   `name:"no-color" help:"Disable color output."`
	Verbose bool   `short:"v" help:"Enable debug logging."`
}

var (
	rawColor     = color.New(color.FgYellow)
	sectionColor = color.New(color.FgBlue, color.Bold)
	problemColor = color.New(color.FgRed)
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("avwx"),
		kong.Description("Decode METAR and TAF reports into plain language."))

	if cli.NoColor {
		color.NoColor = true
	}
	if cli.Metar && cli.Taf {
		kctx.Fatalf("--metar and --taf are mutually exclusive")
	}

	logger := newLogger(cli.Verbose)
	defer logger.Sync()

	// Piped raw text takes priority over a station argument.
	if raw, ok := readFromStdin(); ok {
		kctx.FatalIfErrorf(decodeRaw(raw))
		return
	}

	if cli.Station == "" {
		kctx.Fatalf("no station code provided and no report piped on stdin")
	}
	station := strings.ToUpper(strings.TrimSpace(cli.Station))
	if len(station) != 4 {
		kctx.Fatalf("invalid station code %q: must be 4 characters", cli.Station)
	}

	client := fetch.NewClient(logger)
	ctx := context.Background()

	if !cli.Taf {
		metar, err := client.METAR(ctx, station)
		kctx.FatalIfErrorf(err)
		printMETAR(metar)
	}

	if !cli.Metar {
		if !cli.Taf {
			fmt.Println()
		}
		taf, err := client.TAF(ctx, station)
		kctx.FatalIfErrorf(err)
		printTAF(taf)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// readFromStdin reads one raw report line if data is piped in.
func readFromStdin() (string, bool) {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return "", false
	}

	scanner := bufio.NewScanner(os.Stdin)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	raw := strings.TrimSpace(strings.Join(lines, " "))
	return raw, raw != ""
}

// decodeRaw decodes piped text, using the leading TAF keyword to pick the
// report type.
func decodeRaw(raw string) error {
	if strings.HasPrefix(raw, "TAF") {
		taf, err := avwx.DecodeTAF(raw)
		if err != nil {
			return err
		}
		printTAF(taf)
		return nil
	}

	metar, err := avwx.DecodeMETAR(raw)
	if err != nil {
		return err
	}
	printMETAR(metar)
	return nil
}

func printMETAR(m *avwx.METAR) {
	sectionColor.Println("METAR")
	if !cli.NoRaw {
		rawColor.Println(m.Raw)
		fmt.Println()
	}
	fmt.Print(avwx.FormatMETAR(m))
	if m.ReceiptTime != nil {
		fmt.Printf("Received: %s %s\n",
			m.ReceiptTime.Format("2006-01-02 15:04 UTC"),
			avwx.ReceiptAgeString(*m.ReceiptTime))
	}
	printProblems(m.Problems)
}

func printTAF(t *avwx.TAF) {
	sectionColor.Println("TAF")
	if !cli.NoRaw {
		rawColor.Println(t.Raw)
		fmt.Println()
	}
	fmt.Print(avwx.FormatTAF(t))
	printProblems(t.Problems)
}

func printProblems(problems []avwx.FieldError) {
	for _, p := range problems {
		problemColor.Fprintf(os.Stderr, "warning: %s\n", p.Error())
	}
}
