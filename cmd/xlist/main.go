// Command xlist runs a script of list operations against an array list
// or a linked list and prints one result line per operation.
//
//	echo -e "add 1\ninsert 0 5\ntoArray" | xlist -kind linked
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/benz9527/xlist/lib/xlog"
)

var (
	kind       = flag.String("kind", kindArray, "List kind, array or linked.")
	capacity   = flag.Int64("capacity", 0, "Initial capacity, 0 means the default one.")
	scriptPath = flag.String("script", "", "Path to the script file, stdin if empty.")
	logLevel   = flag.String("log-level", "", "Log level, DEBUG, INFO, WARN or ERROR. Falls back to XLOG_LVL.")
	logEncoder = flag.String("log-encoder", "json", "Log encoder, json or text.")
	metrics    = flag.Bool("metrics", false, "Export per-command counters to stderr on exit.")
)

const metricsInterval = time.Minute

func main() {
	flag.Parse()
	os.Exit(runMain(os.Stdin, os.Stdout, os.Stderr))
}

func runMain(stdin io.Reader, stdout, stderr io.Writer) int {
	enc, err := xlog.ParseLogEncoder(*logEncoder)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "xlist: %s\n", err)
		return 2
	}
	opts := []xlog.XLoggerOption{
		xlog.WithXLoggerWriter(stderr),
		xlog.WithXLoggerEncoder(enc),
	}
	if *logLevel != "" {
		opts = append(opts, xlog.WithXLoggerLevel(xlog.ParseLogLevel(*logLevel)))
	}
	logger := xlog.NewXLogger(opts...)
	defer func() {
		_ = logger.Sync()
	}()

	l, err := newList(*kind, *capacity)
	if err != nil {
		logger.ErrorStack(err, "unable to create list")
		_, _ = fmt.Fprintf(stderr, "xlist: %s\n", err)
		return 2
	}

	in := stdin
	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			logger.Error(err, "unable to open script", zap.String("path", *scriptPath))
			_, _ = fmt.Fprintf(stderr, "xlist: %s\n", err)
			return 2
		}
		defer func() {
			_ = f.Close()
		}()
		in = f
	}

	ctx := context.Background()
	var stats *sessionStats
	if *metrics {
		mp, err := newConsoleMeterProvider(stderr, metricsInterval)
		if err != nil {
			logger.Error(err, "unable to create meter provider")
			_, _ = fmt.Fprintf(stderr, "xlist: %s\n", err)
			return 2
		}
		defer func() {
			if err := mp.Shutdown(ctx); err != nil {
				logger.Error(err, "unable to flush metrics")
			}
		}()
		if stats, err = newSessionStats(mp); err != nil {
			logger.Error(err, "unable to create session stats")
			_, _ = fmt.Fprintf(stderr, "xlist: %s\n", err)
			return 2
		}
	}

	logger.Info("xlist started", zap.String("kind", *kind), zap.Int64("capacity", *capacity))
	s := &session{ctx: ctx, list: l, out: stdout, logger: logger, stats: stats}
	if err := s.run(in); err != nil {
		return 1
	}
	return 0
}
