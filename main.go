package main

import (
	"os"

	"github.com/saad2128/jsonl-task-processor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
