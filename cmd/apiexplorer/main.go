package main

import "apiexplorer/internal/cli"

func main() {
	cli.Execute()
}
