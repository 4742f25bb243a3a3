// Command goregex is a small harness over the coregex library: compile one
// pattern, test it against each line read from stdin or passed as
// arguments, and report found/not-found per line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/jackr276/regex-libc"
)

func main() {
	verbose := flag.Bool("v", false, "enable verbose compile/match diagnostics")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: goregex [-v] PATTERN [LINE ...]")
		os.Exit(2)
	}
	pattern := args[0]
	lines := args[1:]

	cfg := coregex.DefaultConfig()
	cfg.Verbose = *verbose

	re, err := coregex.CompileWithConfig(pattern, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goregex: %v\n", err)
		os.Exit(1)
	}

	if len(lines) > 0 {
		runLines(re, lines)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		reportLine(re, scanner.Text())
	}
}

func runLines(re *coregex.Regex, lines []string) {
	for _, line := range lines {
		reportLine(re, line)
	}
}

func reportLine(re *coregex.Regex, line string) {
	result, err := re.Test(line, 0)
	switch {
	case err != nil:
		fmt.Printf("%s: error: %v\n", line, err)
	case result.Found:
		fmt.Printf("%s: found [%d,%d) %q\n", line, result.Start, result.End, line[result.Start:result.End])
	default:
		fmt.Printf("%s: not-found\n", line)
	}
}
