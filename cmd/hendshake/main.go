package main

import "github.com/sobirin-dev/hendshake/internal/cli"

func main() {
	cli.Execute()
}
