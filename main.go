package main

import "github.com/plexstream/plexstream/internal/cmd"

func main() {
	cmd.Execute()
}
