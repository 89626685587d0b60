package main

import (
	"fmt"

	"github.com/zeu5/rl-sorting/benchmarks"
)

// main entry point: train, sort or serve
func main() {
	rootCommand := benchmarks.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
