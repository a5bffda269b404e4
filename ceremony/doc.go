/*
Package ceremony decodes the files produced by powers-of-tau ceremonies.

Three layouts are supported, all decoded by computing offsets from the file
header or from the caller supplied degree, never by scanning:

Native, the canonical layout written by this module:

	k        u32 little endian
	g        2^k G1 points, compressed
	lagrange 2^k G1 points, compressed
	g2, s·g2 two G2 points, compressed

NativeRaw is the same layout with uncompressed points.

PerpetualPowersOfTau, the response file of the perpetual powers-of-tau
ceremony (BN254) and of the zcash/Dusk ceremony (BLS12-381):

	hash     64 bytes
	τ^i·G1   2·2^k - 1 compressed G1 points, perpetual flags
	τ^i·G2   2^k compressed G2 points, perpetual flags
	...

The file does not store k, the caller supplies it.

SnarkJS, the .ptau file produced by snarkjs:

	"ptau", version u32, sections u32
	section 1: type u32, size u64, header (n8 u32, q, power u32, ceremonyPower u32)
	section 2: type u32, size u64, 2·2^power - 1 G1 points, Montgomery form
	section 3: type u32, size u64, 2^power G2 points, Montgomery form
	...

The Read functions seek to the computed offset before decoding; the Decode
functions decode in place from the current position of the stream so they
also work on partial buffers fetched from a ceremony server.
*/
package ceremony
