package main

import "skill-market.com/skill-market/cmd"

func main() {
	cmd.Execute()
}
