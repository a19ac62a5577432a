// Command stockfin runs the full financial analysis pipeline for one
// stock code and writes text reports under the configured report
// directory.
//
// Usage:
//
//	stockfin [flags] CODE
//
// Flags:
//
//	--start YYYYMMDD  analysis start date (default 20200101)
//	--end YYYYMMDD    analysis end date (default today)
//	--serial          run financial categories serially
//	--config PATH     config file path (default: STOCKFIN_CONFIG, then
//	                  stockfin.toml beside the binary)
//	--quiet           suppress log output
//	--version         print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lishuzheng01/stockfin/internal/app"
	"github.com/lishuzheng01/stockfin/internal/common"
)

const dateLayout = "20060102"

func main() {
	var (
		startFlag   = flag.String("start", "20200101", "analysis start date (YYYYMMDD)")
		endFlag     = flag.String("end", "", "analysis end date (YYYYMMDD, default today)")
		serialFlag  = flag.Bool("serial", false, "run financial categories serially")
		configFlag  = flag.String("config", "", "config file path")
		quietFlag   = flag.Bool("quiet", false, "suppress log output")
		versionFlag = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] CODE\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *versionFlag {
		fmt.Println("stockfin " + common.FullVersion())
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	code := flag.Arg(0)

	start, err := time.Parse(dateLayout, *startFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --start date %q: %v\n", *startFlag, err)
		os.Exit(1)
	}
	end := time.Now()
	if *endFlag != "" {
		if end, err = time.Parse(dateLayout, *endFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --end date %q: %v\n", *endFlag, err)
			os.Exit(1)
		}
	}
	if end.Before(start) {
		fmt.Fprintf(os.Stderr, "End date %s is before start date %s\n", end.Format(dateLayout), start.Format(dateLayout))
		os.Exit(1)
	}

	a, err := app.NewApp(*configFlag, *quietFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	workflow := app.NewWorkflow(a)
	state, err := workflow.Run(ctx, code, app.WorkflowOptions{
		Start:  start,
		End:    end,
		Serial: *serialFlag,
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("code", code).Msg("Analysis run failed")
		os.Exit(1)
	}

	if !*quietFlag {
		fmt.Printf("Reports written to %s\n", a.Storage.ReportDir(code))
		if len(state.Errors) > 0 {
			fmt.Printf("Completed with %d category error(s); see the full report for details.\n", len(state.Errors))
		}
	}
}
