package main

import (
	"github.com/postpad/postpad/cmd"

	_ "github.com/postpad/postpad/internal/platform/robot"
)

func main() {
	cmd.Execute()
}
