package main

import "github.com/theirongolddev/mchallenge/cmd"

func main() {
	cmd.Execute()
}
