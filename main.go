package main

import (
	"os"

	"github.com/vzahanych/activity-recommender/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
