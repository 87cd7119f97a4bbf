package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/gradebook/internal/chart"
	"github.com/JonMunkholm/gradebook/internal/core"
	"github.com/JonMunkholm/gradebook/internal/report"
)

// Command-line handlers

var errInputRequired = errors.New("-input is required")

// errorText renders a command failure for stderr. Errors with a known
// code get the user message and suggested action on a second line.
func errorText(err error) string {
	if !core.IsUserFacing(err) {
		return "error: " + err.Error()
	}
	return fmt.Sprintf("error: %v\n%s", err, core.FormatUserError(err))
}

// inputFlags are shared by every subcommand.
type inputFlags struct {
	input   string
	buckets string
	lenient bool
	filters map[string]*string
}

func (f *inputFlags) register(flags *flag.FlagSet) {
	flags.StringVar(&f.input, "input", "", "Score sheet CSV file")
	flags.StringVar(&f.buckets, "buckets", "", "Comma-separated score ranges, e.g. 0-49,50-100 (default 0-20,...,81-100)")
	flags.BoolVar(&f.lenient, "lenient", false, "Skip short rows and rows without a faculty instead of failing")

	f.filters = make(map[string]*string)
	for _, key := range []string{core.FilterGender, core.FilterFaculty, core.FilterLunch, core.FilterTestPrep} {
		f.filters[key] = flags.String(key, "", "Only include students whose "+key+" matches")
	}
}

func (f *inputFlags) ranges() ([]core.Range, error) {
	if f.buckets == "" {
		return core.DefaultBuckets(), nil
	}
	return core.ParseRanges(strings.Split(f.buckets, ","))
}

// dataset loads the input file and applies the filter flags.
func (f *inputFlags) dataset() (core.Dataset, error) {
	if f.input == "" {
		return core.Dataset{}, errInputRequired
	}

	file, err := os.Open(f.input)
	if err != nil {
		return core.Dataset{}, err
	}
	defer file.Close()

	snap, err := core.LoadSnapshot(filepath.Base(f.input), file, core.MapOptions{Lenient: f.lenient})
	if err != nil {
		return core.Dataset{}, err
	}
	for _, rowErr := range snap.Skipped {
		slog.Warn("row skipped", "file", snap.Name, "line", rowErr.Line, "error", rowErr.Error())
	}

	ds, err := snap.Students()
	if err != nil {
		return core.Dataset{}, fmt.Errorf("%s: %w", snap.Name, err)
	}

	criteria, err := core.ParseCriteria(func(key string) string {
		if v, ok := f.filters[key]; ok {
			return *v
		}
		return ""
	})
	if err != nil {
		return core.Dataset{}, err
	}
	return criteria.Apply(ds), nil
}

func histogramCmd(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("histogram", flag.ContinueOnError)
	var in inputFlags
	var width int
	var field string
	in.register(flags)
	flags.IntVar(&width, "width", 40, "Width of the longest bar in characters")
	flags.StringVar(&field, "field", "", "Only print this score field (charms, potions, dark_arts)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	ranges, err := in.ranges()
	if err != nil {
		return err
	}
	ds, err := in.dataset()
	if err != nil {
		return err
	}

	fields := core.ScoreFields()
	if field != "" {
		f, err := core.LookupField(field)
		if err != nil {
			return err
		}
		fields = []core.Field{f}
	}

	for i, f := range fields {
		if i > 0 {
			fmt.Fprintln(out)
		}
		h, err := chart.Build(ds, f, ranges)
		if err != nil {
			return err
		}
		if err := chart.RenderText(out, h, width); err != nil {
			return err
		}
	}
	return nil
}

func averagesCmd(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("averages", flag.ContinueOnError)
	var in inputFlags
	in.register(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	ds, err := in.dataset()
	if err != nil {
		return err
	}

	for _, avg := range core.Averages(ds) {
		if !avg.OK {
			fmt.Fprintf(out, "%-16s n/a\n", avg.Field.Label)
			continue
		}
		fmt.Fprintf(out, "%-16s %.2f\n", avg.Field.Label, avg.Mean)
	}
	return nil
}

func reportCmd(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("report", flag.ContinueOnError)
	var in inputFlags
	var output string
	in.register(flags)
	flags.StringVar(&output, "out", "report.xlsx", "XLSX output file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	ranges, err := in.ranges()
	if err != nil {
		return err
	}
	ds, err := in.dataset()
	if err != nil {
		return err
	}

	if err := report.SaveAs(output, ds, ranges); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s (%d students)\n", output, ds.Len())
	return nil
}
