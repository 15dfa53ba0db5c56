/*
Package main is the entry point of the АлёГараж command line client.
*/
package main

import (
	"fmt"
	"os"

	"alegarazh/cmd/alegarazh/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
