package main

import "github.com/oshokin/stopwatch/cmd/stopwatch-server/cmd"

func main() {
	cmd.Execute()
}
