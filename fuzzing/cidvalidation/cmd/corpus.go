package main

import (
	"crypto/rand"
	"log"

	"github.com/quicforge/quic-cid/fuzzing/cidvalidation"
	"github.com/quicforge/quic-cid/fuzzing/internal/helper"
)

func getRandomData(l int) []byte {
	b := make([]byte, l)
	rand.Read(b)
	return b
}

func main() {
	for i := 0; i < 30; i++ {
		data := getRandomData(cidvalidation.PrefixLen + 8)
		if err := helper.WriteCorpusFile("corpus", data); err != nil {
			log.Fatal(err)
		}
	}
	// seeds with a zeroed configuration prefix, leaving key and bit
	// selection to the fuzzer
	for i := 0; i < 10; i++ {
		if err := helper.WriteCorpusFileWithPrefix("corpus", getRandomData(8), cidvalidation.PrefixLen); err != nil {
			log.Fatal(err)
		}
	}
}
