package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/termstructure/cmd/dfcurve/internal/query"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "discount", "df":
		return query.Run(args[1:], stdin, stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dfcurve <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  discount  Discount factors and zero rates from a curve config")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `dfcurve <command> -h` for command-specific help.")
}
