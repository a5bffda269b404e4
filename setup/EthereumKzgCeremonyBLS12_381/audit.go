package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"math/bits"
	"os"
	"strings"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/giuliop/kzgsrs"
	"github.com/giuliop/kzgsrs/curve"
	"github.com/giuliop/kzgsrs/utils"
)

// Define a struct to match the JSON structure of transcript.json
type Transcript struct {
	NumG1Powers int `json:"numG1Powers"`
	NumG2Powers int `json:"numG2Powers"`
	PowersOfTau struct {
		G1Powers []string `json:"G1Powers"`
		G2Powers []string `json:"G2Powers"`
	} `json:"powersOfTau"`
}

type TranscriptFile struct {
	Transcripts []Transcript `json:"transcripts"`
}

// the largest transcript of the ceremony
const numG1Powers = 32768

// run the audit
func main() {
	// Open the transcript.json file
	_, err := os.Stat("transcript.json")
	if err != nil {
		log.Fatalf("Error checking existance of transcript.json: %v\n"+
			"Refer to doc.go for instructions on how to download the file.", err)
	}
	file, err := os.Open("transcript.json")
	if err != nil {
		log.Fatal("Error opening transcript.json:", err)
	}
	defer file.Close()

	// Decode the JSON file into the struct
	var transcriptFile TranscriptFile
	decoder := json.NewDecoder(file)
	err = decoder.Decode(&transcriptFile)
	if err != nil {
		log.Fatalf("Error decoding JSON: %v\nMaybe you downloaded the html page "+
			"instead of the file?\n", err)
	}

	var tsc Transcript
	for _, transcript := range transcriptFile.Transcripts {
		if transcript.NumG1Powers == numG1Powers {
			tsc = transcript
			break
		}
	}
	if tsc.NumG1Powers == 0 {
		log.Fatal("Desired transcript not found")
	}
	if len(tsc.PowersOfTau.G1Powers) != numG1Powers || len(tsc.PowersOfTau.G2Powers) < 2 {
		log.Fatalf("transcript has %d G1 and %d G2 powers", len(tsc.PowersOfTau.G1Powers),
			len(tsc.PowersOfTau.G2Powers))
	}

	c := curve.BLS12381()
	g1 := make([]bls12381.G1Affine, numG1Powers)
	for i, power := range tsc.PowersOfTau.G1Powers {
		if g1[i], err = decodeHex(power, c.DecodeG1); err != nil {
			log.Fatalf("error decoding G1Power %d: %v", i, err)
		}
	}
	var g2 [2]bls12381.G2Affine
	for i, power := range tsc.PowersOfTau.G2Powers[:2] {
		if g2[i], err = decodeHex(power, c.DecodeG2); err != nil {
			log.Fatalf("error decoding G2Power %d: %v", i, err)
		}
	}

	k := uint32(bits.TrailingZeros(numG1Powers))
	srs, err := kzgsrs.New(c, k, g1, g2[0], g2[1])
	if err != nil {
		log.Fatalf("error importing transcript: %v", err)
	}

	output := fmt.Sprintf("bls12_381_%d.srs", k)
	if err := utils.WriteFileAtomic(output, srs.Write); err != nil {
		log.Fatalf("error writing %s: %v", output, err)
	}
	fmt.Printf("Audit successful, srs of degree %d written to %s\n", k, output)
}

// decodeHex removes the "0x" prefix and decodes the compressed point
func decodeHex[T any](s string, decode func([]byte) (T, error)) (T, error) {
	var p T
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return p, fmt.Errorf("error decoding hex string: %v", err)
	}
	return decode(b)
}
