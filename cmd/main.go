package main

import cmd "github.com/Lemon199080/komikweb/cmd/komik"

func main() {
	cmd.Execute()
}
