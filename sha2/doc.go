// Package sha2 implements the SHA-256 and SHA-512 hash functions defined in
// FIPS 180-4 with a single engine generic over the word width.
//
// An Engine moves through three states:
//
//	Ready -> Accumulating -> Finalized
//
// Init is the only way back to Ready. Update and Finalize on a finalized
// engine fail with ErrFinalized instead of producing a wrong digest.
//
//	e := sha2.New256()
//	_ = e.Update([]byte("ab"))
//	_ = e.Update([]byte("c"))
//	d, err := e.Finalize()
//	// d.Hex() == "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
//
// Engines also satisfy hash.Hash; Sum finalizes a copy and leaves the
// engine accumulating. For one-shot use see Sum256, Sum512 and Sum.
package sha2
