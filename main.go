package main

import (
	"github.com/mj1618/computer-use/cmd"

	_ "github.com/mj1618/computer-use/internal/platform/darwin"
	_ "github.com/mj1618/computer-use/internal/platform/linux"
)

func main() {
	cmd.Execute()
}
