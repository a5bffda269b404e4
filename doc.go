/*
Package kzgsrs imports, validates, converts and re-serializes the structured
reference strings of KZG polynomial commitments.

An Srs holds 2^K powers s^i·G1 of a secret s in monomial form, the same
powers in Lagrange form over the size 2^K multiplicative domain, and the pair
(G2, s·G2). It is built from the output of a powers-of-tau ceremony:

	f, err := os.Open("response")
	if err != nil {
		log.Fatal(err)
	}
	srs, err := kzgsrs.ReadPartial(curve.BN254(), f,
		ceremony.PerpetualPowersOfTau{K: 28}, 20)

Every Srs returned by Read, ReadPartial or New has passed a randomized
pairing check that all the G1 powers share the ratio between G2 and s·G2. An
Srs can then be downsized and written in the native layout, compressed or
raw, which Read accepts back.

The setup package hands an Srs to gnark's PLONK backend.
*/
package kzgsrs
