package main

import "github.com/matthieukhl/salesclean/internal/cmd"

func main() {
	cmd.Execute()
}
