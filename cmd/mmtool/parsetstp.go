package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/tstp"
	"github.com/hashicorp/go-hclog"
)

// parseTSTPMain is the Go counterpart of original_source/apps/tstp.cpp's
// parse_tstp_main: read lines from stdin, parse each as a TSTP line, and
// report what was parsed.
func parseTSTPMain(args []string, log hclog.Logger) int {
	g := tstp.BuildGrammar()

	scanner := bufio.NewScanner(os.Stdin)
	status := ExitSuccess
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := tstp.Parse(g, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mmtool: parse-tstp: %s\n", err)
			status = ExitCommandError
			continue
		}
		fmt.Printf("%s(%s, %s): %s\n", entry.Kind, entry.Name, entry.Role, entry.Formula)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "mmtool: parse-tstp: reading stdin: %s\n", err)
		return ExitCommandError
	}
	return status
}
