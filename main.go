package main

import "github.com/Gavin-Dsouza/gymApp/cmd/gym"

func main() {
	gym.Execute()
}
