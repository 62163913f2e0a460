package main

import "registry-config/internal/cli"

func main() {
	cli.Execute()
}
