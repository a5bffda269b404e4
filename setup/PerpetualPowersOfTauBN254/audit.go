package main

import (
	"fmt"
	"log"
	"os"

	gp "github.com/mdehoog/gnark-ptau"

	"github.com/giuliop/kzgsrs"
	"github.com/giuliop/kzgsrs/ceremony"
	"github.com/giuliop/kzgsrs/curve"
	"github.com/giuliop/kzgsrs/utils"
)

const (
	filename = "powersOfTau28_hez_final_18.ptau"
	output   = "bn254_18.srs"
)

func main() {
	// Open the .ptau file
	_, err := os.Stat(filename)
	if err != nil {
		log.Fatalf("Error checking existance of %s: %v\n"+
			"Refer to doc.go for instructions on how to download the file.",
			filename, err)
	}
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("error opening %s: %v", filename, err)
	}
	defer file.Close()

	srs, err := kzgsrs.Read(curve.BN254(), file, ceremony.SnarkJS{})
	if err != nil {
		log.Fatalf("error importing %s: %v", filename, err)
	}

	// read the file again with gnark-ptau and check the points match
	if _, err := file.Seek(0, 0); err != nil {
		log.Fatalf("error rewinding %s: %v", filename, err)
	}
	reference, err := gp.ToSRS(file)
	if err != nil {
		log.Fatalf("error converting to SRS: %v", err)
	}
	for i := range srs.G {
		if !srs.G[i].Equal(&reference.Pk.G1[i]) {
			log.Fatalf("G1[%d] does not match: %v | %v", i, srs.G[i], reference.Pk.G1[i])
		}
	}
	if !srs.G2.Equal(&reference.Vk.G2[0]) || !srs.SG2.Equal(&reference.Vk.G2[1]) {
		log.Fatalf("G2 points do not match")
	}

	if err := utils.WriteFileAtomic(output, srs.Write); err != nil {
		log.Fatalf("error writing %s: %v", output, err)
	}
	fmt.Printf("Audit successful, srs of degree %d written to %s\n", srs.K, output)
}
