package main

import "github.com/MeKo-Tech/lingua/cmd/lingua/cmd"

func main() {
	cmd.Execute()
}
