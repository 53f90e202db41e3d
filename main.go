// Package main is the entry point for the gotcha application
package main

import (
	"github.com/edudebug/gotcha/cmd"
)

func main() {
	cmd.Execute()
}
