package main

import "worklens/internal/cli"

func main() {
	cli.Execute()
}
