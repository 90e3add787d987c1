package main

import "github.com/wangtaito/workout-project/internal/cli"

func main() {
	cli.Execute()
}
