package main

import (
	"github.com/jvmrepo/jvmrepo/src/cmd"
)

func main() {
	cmd.Execute()
}
