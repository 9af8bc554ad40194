package main

import (
	"log"

	"github.com/strideware/fitmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
