package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/giuliop/kzgsrs"
	"github.com/giuliop/kzgsrs/ceremony"
	"github.com/giuliop/kzgsrs/curve"
	"github.com/giuliop/kzgsrs/utils"
)

const (
	// The number of tau powers computed in the Dusk Trusted Setup is 2^21
	fileK = 21

	// Hash size at the beginning of the response file
	hashSize = 64
)

// run the audit
func main() {
	k := uint32(fileK)
	if len(os.Args) > 1 {
		n, err := strconv.ParseUint(os.Args[1], 10, 32)
		if err != nil {
			log.Fatalf("invalid degree %q: %v", os.Args[1], err)
		}
		k = uint32(n)
	}

	_, err := os.Stat("response")
	if err != nil {
		log.Fatalf("Error checking existance of response: %v\n"+
			"Refer to doc.go for instructions on how to download the file.", err)
	}
	file, err := os.Open("response")
	if err != nil {
		log.Fatal("Error opening response:", err)
	}
	defer file.Close()

	c := curve.BLS12381()
	srs, err := kzgsrs.ReadPartial(c, file, ceremony.PerpetualPowersOfTau{K: fileK}, k)
	if err != nil {
		log.Fatalf("error importing response: %v", err)
	}

	// The response file stores zcash encoded points, the same bytes gnark-crypto
	// writes for compressed points: re-encoding what was decoded must give back
	// the file content
	g1Bytes := make([]byte, len(srs.G)*c.G1Size())
	if _, err := file.ReadAt(g1Bytes, hashSize); err != nil {
		log.Fatalf("error reading G1 points: %v", err)
	}
	for i := range srs.G {
		if !bytes.Equal(c.EncodeG1(&srs.G[i]), g1Bytes[i*c.G1Size():(i+1)*c.G1Size()]) {
			log.Fatalf("G1[%d] does not match the response file", i)
		}
	}
	g2Bytes := make([]byte, 2*c.G2Size())
	if _, err := file.ReadAt(g2Bytes, ceremony.PerpetualG2Offset(c.G1Size(), fileK)); err != nil {
		log.Fatalf("error reading G2 points: %v", err)
	}
	if !bytes.Equal(append(c.EncodeG2(&srs.G2), c.EncodeG2(&srs.SG2)...), g2Bytes) {
		log.Fatalf("G2 points do not match the response file")
	}

	output := fmt.Sprintf("bls12_381_%d.srs", k)
	if err := utils.WriteFileAtomic(output, srs.Write); err != nil {
		log.Fatalf("error writing %s: %v", output, err)
	}
	fmt.Printf("Audit successful, srs of degree %d written to %s\n", k, output)
}
