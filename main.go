// @title Adaptive Quiz API
// @version 1.0
// @description Adaptive quiz activity module: instance lifecycle, recent activity and host hooks.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"adaptivequiz/cmd"
	"fmt"
	"os"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
