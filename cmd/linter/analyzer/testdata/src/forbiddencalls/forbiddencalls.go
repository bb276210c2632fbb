package forbiddencalls

import (
	"log"
	"os"
)

func Store() {
	panic("storage corrupted") // want "panic is forbidden outside main"
}

func Load() {
	log.Fatal("cannot load")            // want "log.Fatal is forbidden outside main"
	log.Fatalf("cannot load %d", 1)     // want "log.Fatalf is forbidden outside main"
	os.Exit(1)                          // want "os.Exit is forbidden outside main"
	log.Println("logging is fine")
}

// main outside package main gets no exemption.
func main() {
	os.Exit(0) // want "os.Exit is forbidden outside main"
}
