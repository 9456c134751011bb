package main

import "github.com/scalatools/casegen/internal/cli"

func main() {
	cli.Execute()
}
