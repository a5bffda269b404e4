/*
package main imports the trusted parameters for the bls12_381 curve
as described in the doc.go file in the setup package (parent folder).

The transcript with 32768 powers in G1 is decoded, validated and written in
the native layout to bls12_381_15.srs.

To run the audit you need to:

1) download the original source file `transcript.json` from either of:
https://ceremony.ethereum.org/#/record
https://github.com/ethereum/kzg-ceremony/blob/main/transcript.json

2) Place the `transcript.json` file in this directory

3) Run the audit.go main program with `go run .`
*/
package main
