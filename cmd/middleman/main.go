package main

import "github.com/dorucioclea/middleman-nft/internal/cli"

func main() {
	cli.Execute()
}
