package main

import "github.com/kriti1799/Resume-Builder/cmd"

func main() {
	cmd.Execute()
}
