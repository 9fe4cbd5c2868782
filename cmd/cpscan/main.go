// Package main is the entry point for the cpscan CLI.
package main

import "github.com/wwan174/classpath-scanner/internal/cli"

func main() {
	cli.Execute()
}
