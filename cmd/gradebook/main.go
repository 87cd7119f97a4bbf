// Command gradebook reads a student score CSV and prints pass-rate
// histograms and averages, or exports them as an XLSX report.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/gradebook/internal/logging"
)

const usage = `usage: gradebook <command> [flags]

commands:
  histogram  print a text histogram per score field
  averages   print the mean of each score field
  report     write an XLSX workbook with records, summary and charts

run "gradebook <command> -h" for flags`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	// stdout carries command output only
	slog.SetDefault(logging.New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")))

	var err error
	switch os.Args[1] {
	case "histogram":
		err = histogramCmd(os.Args[2:], os.Stdout)
	case "averages":
		err = averagesCmd(os.Args[2:], os.Stdout)
	case "report":
		err = reportCmd(os.Args[2:], os.Stdout)
	case "-h", "--help", "help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}
