/*
package main imports the trusted parameters for the bls12_381 curve
as described in the doc.go file in the setup package (parent folder).

The Dusk response file uses the perpetual powers-of-tau layout with zcash
encoded points. The first 2^k powers are imported, validated, compared byte by
byte with the response file and written in the native layout to
bls12_381_<k>.srs.

To run the audit you need to:

1) download the original response file from https://github.com/dusk-network/trusted-setup/tree/main/contributions/0015

2) Place the `response` file in this directory

3) Run the audit.go main program with `go run . [k]`, k defaults to 21
*/
package main
