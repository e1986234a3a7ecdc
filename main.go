package main

import "github.com/inovacc/fuelog/cmd"

func main() {
	cmd.Execute()
}
