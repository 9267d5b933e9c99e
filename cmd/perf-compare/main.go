package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ciricc/perf-compare/internal/app"
)

func main() {
	cfgPath := flag.String("config", "perf-compare.yaml", "optional YAML config (inputs, labels, log level)")
	flag.Parse()

	application, err := app.New(*cfgPath)
	if err != nil {
		fatalf("init: %v", err)
	}

	if err := application.Run(context.Background(), os.Stdout); err != nil {
		fatalf("compare: %v", err)
	}
}

func fatalf(format string, a ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
