package main

import (
	"log"
	"os"
)

func main() {
	log.Fatal("allowed in main")
	os.Exit(0)
	func() {
		panic("closures inside main are part of main")
	}()
}

func init() {
	panic("forbidden in init") // want "panic is forbidden outside main"
	os.Exit(1)                 // want "os.Exit is forbidden outside main"
}

func run() {
	log.Fatalln("forbidden in helpers") // want "log.Fatalln is forbidden outside main"
}
