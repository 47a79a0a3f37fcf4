package main

import "github.com/streambinder/tracksmith/cmd"

func main() {
	cmd.Execute()
}
