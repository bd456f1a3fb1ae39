package main

import "github.com/oshokin/stopwatch/cmd/stopwatch-panel/cmd"

func main() {
	cmd.Execute()
}
