//go:build cli
// +build cli

package main

import (
	_ "tillpoint/custom"

	"tillpoint/cmd"
	"tillpoint/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
