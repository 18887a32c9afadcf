package main

import "train-search-server/cmd"

func main() {
	cmd.Execute()
}
