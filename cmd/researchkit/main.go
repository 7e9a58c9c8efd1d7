package main

import (
	"fmt"
	"os"
	"researchkit/cmd/researchkit/commands"
	"researchkit/lib/util/serviceutil"
)

func main() {
	err := commands.ExecuteContext(serviceutil.SignalContext())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
