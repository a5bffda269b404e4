/*
package main imports the trusted parameters for the bn254 curve
as described in the doc.go file in the setup package (parent folder).

The parameters are read from the snarkjs export of the perpetual powers-of-tau
ceremony, validated, checked against the independent gnark-ptau reader and
written in the native layout to bn254_18.srs, which kzgsrs.Read loads with
ceremony.Native.

To run the audit you need to:

1) download the original source file `powersOfTau28_hez_final_18.ptau' from
the snarkjs github page: https://github.com/iden3/snarkjs
(direct file link:
https://storage.googleapis.com/zkevm/ptau/powersOfTau28_hez_final_18.ptau)

2) Place the file in this directory

3) Run the audit.go main program with `go run .`
*/
package main
