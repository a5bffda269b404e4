package setup

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	kzg_bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	kzg_bn254 "github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/gnark-crypto/kzg"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"

	"github.com/giuliop/kzgsrs"
)

// CompiledCircuit is a compiled circuit with its proving and verifying keys
type CompiledCircuit struct {
	Ccs   constraint.ConstraintSystem
	Pk    plonk.ProvingKey
	Vk    plonk.VerifyingKey
	Curve ecc.ID
}

// VerifiedProof is a proof and its witness, generated after verifying the proof
type VerifiedProof struct {
	Proof   plonk.Proof
	Witness witness.Witness
}

// KZGBN254 returns srs as a gnark-crypto kzg SRS.
func KZGBN254(srs *kzgsrs.BN254) (*kzg_bn254.SRS, error) {
	pk, vk := kzgBytes(srs)
	var res kzg_bn254.SRS
	if _, err := res.Pk.ReadFrom(bytes.NewReader(pk)); err != nil {
		return nil, fmt.Errorf("error reading proving key: %v", err)
	}
	if _, err := res.Vk.ReadFrom(bytes.NewReader(vk)); err != nil {
		return nil, fmt.Errorf("error reading verifying key: %v", err)
	}
	return &res, nil
}

// KZGBLS12381 returns srs as a gnark-crypto kzg SRS.
func KZGBLS12381(srs *kzgsrs.BLS12381) (*kzg_bls12381.SRS, error) {
	pk, vk := kzgBytes(srs)
	var res kzg_bls12381.SRS
	if _, err := res.Pk.ReadFrom(bytes.NewReader(pk)); err != nil {
		return nil, fmt.Errorf("error reading proving key: %v", err)
	}
	if _, err := res.Vk.ReadFrom(bytes.NewReader(vk)); err != nil {
		return nil, fmt.Errorf("error reading verifying key: %v", err)
	}
	return &res, nil
}

// KZG returns srs as a gnark-crypto kzg SRS of its curve.
func KZG[G1, G2 any](srs *kzgsrs.Srs[G1, G2]) (kzg.SRS, error) {
	var (
		res kzg.SRS
		err error
	)
	switch s := any(srs).(type) {
	case *kzgsrs.BN254:
		res, err = KZGBN254(s)
	case *kzgsrs.BLS12381:
		res, err = KZGBLS12381(s)
	default:
		return nil, fmt.Errorf("unsupported curve: %v", srs.Curve())
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// kzgBytes serializes srs the way gnark-crypto reads kzg keys: the proving
// key is the length of the G1 array as a 4-byte big-endian integer followed by
// the compressed powers, the verifying key is [G₂, [s]G₂] followed by G₁.
func kzgBytes[G1, G2 any](srs *kzgsrs.Srs[G1, G2]) (pk, vk []byte) {
	c := srs.Curve()

	pk = make([]byte, 4, 4+len(srs.G)*c.G1Size())
	binary.BigEndian.PutUint32(pk, uint32(len(srs.G)))
	for i := range srs.G {
		pk = append(pk, c.EncodeG1(&srs.G[i])...)
	}

	vk = append(vk, c.EncodeG2(&srs.G2)...)
	vk = append(vk, c.EncodeG2(&srs.SG2)...)
	vk = append(vk, c.EncodeG1(&srs.G[0])...)
	return pk, vk
}

// Run sets up a plonk system with srs, which must hold enough powers for the
// constraint system.
func Run[G1, G2 any](ccs constraint.ConstraintSystem, srs *kzgsrs.Srs[G1, G2]) (
	plonk.ProvingKey, plonk.VerifyingKey, error) {

	numGates := uint64(ccs.GetNbConstraints() + ccs.GetNbPublicVariables())
	numGates = ecc.NextPowerOfTwo(numGates)
	if uint64(len(srs.G)) < numGates+3 {
		return nil, nil, fmt.Errorf("%w: the circuit needs %d powers, the srs "+
			"of degree %d has %d", kzgsrs.ErrDegreeTooLarge, numGates+3, srs.K, len(srs.G))
	}

	kzgSRS, err := KZG(srs)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating SRS:  %v", err)
	}
	return plonk.Setup(ccs, kzgSRS)
}

// Compile generates a CompiledCircuit from a circuit definiton on the curve of
// srs, setting up plonk with it.
func Compile[G1, G2 any](circuit frontend.Circuit, srs *kzgsrs.Srs[G1, G2]) (
	*CompiledCircuit, error) {
	curve := srs.Curve().ID()
	ccs, err := frontend.Compile(curve.ScalarField(), scs.NewBuilder, circuit)
	if err != nil {
		return nil, fmt.Errorf("error compiling circuit: %v", err)
	}
	provingKey, verifyingKey, err := Run(ccs, srs)
	if err != nil {
		return nil, fmt.Errorf("error setting up Plonk: %w", err)
	}
	return &CompiledCircuit{ccs, provingKey, verifyingKey, curve}, nil
}

// Verify generates a proof from a circuit assignment and verifies it
// using gnark
func (cc *CompiledCircuit) Verify(assignment frontend.Circuit,
) (*VerifiedProof, error) {
	witness, err := frontend.NewWitness(assignment, cc.Curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("error creating witness: %v", err)
	}
	publicInputs, err := witness.Public()
	if err != nil {
		return nil, fmt.Errorf("error creating public inputs: %v", err)
	}
	proof, err := plonk.Prove(cc.Ccs, cc.Pk, witness)
	if err != nil {
		return nil, fmt.Errorf("error creating Plonk proof: %v", err)
	}
	err = plonk.Verify(proof, cc.Vk, publicInputs)
	if err != nil {
		return nil, fmt.Errorf("error verifying Plonk proof: %v", err)
	}
	return &VerifiedProof{proof, witness}, nil
}
