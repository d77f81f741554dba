package main

import "github.com/glpipe/glpipe/cmd/glpipe/cli"

func main() {
	cli.Execute()
}
