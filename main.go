// Package main is the entry point for the ssmetrics CLI tool, which scores
// mahjong scoresheets and reports per-player statistics over time.
package main

import "github.com/pable/scoresheet-metrics/cmd"

func main() {
	cmd.Execute()
}
