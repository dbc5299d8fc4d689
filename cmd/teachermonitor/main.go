// filepath: cmd/teachermonitor/main.go
package main

import (
	"teachermonitor/internal/cli"
)

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
