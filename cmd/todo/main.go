// Command todo is a personal task tracker.
package main

import "github.com/mesh-intelligence/todo/internal/cli"

func main() {
	cli.Execute()
}
