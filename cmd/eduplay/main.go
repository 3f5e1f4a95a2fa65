package main

import "github.com/vytor/eduplay/cmd/eduplay/root"

func main() {
	root.Execute()
}
