package main

import "github.com/utcq/soel/cmd"

func main() {
	cmd.Exec()
}
