package main

import "github.com/UniversalLevi/InstagramAutomation/pkg/cli"

func main() {
	cli.Execute()
}
