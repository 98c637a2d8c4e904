// Package main is the entry point for the mutscore CLI.
package main

import "mutscore.dev/pkg/mutscore/cmd"

func main() {
	cmd.Execute()
}
