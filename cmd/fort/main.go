package main

import (
	"github.com/gmcclure382/DragaliaAPI/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
