package main

import "github.com/cardiolab/hra-cli/internal/cli"

func main() {
	cli.Execute()
}
