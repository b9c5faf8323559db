package krypto

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gobeaver/hashkit/hexenc"
	"github.com/gobeaver/hashkit/hmac"
	"github.com/gobeaver/hashkit/sha2"
)

// HashSHA256 returns the lowercase hex SHA-256 digest of data.
func HashSHA256(data string) string {
	sum := sha2.Sum256([]byte(data))
	return hexenc.Encode(sum[:])
}

// HashSHA512 returns the lowercase hex SHA-512 digest of data.
func HashSHA512(data string) string {
	sum := sha2.Sum512([]byte(data))
	return hexenc.Encode(sum[:])
}

// VerifySHA256 reports whether hash is the SHA-256 digest of data.
func VerifySHA256(data, hash string) bool {
	return hmac.EqualHex(HashSHA256(data), hash)
}

// VerifySHA512 reports whether hash is the SHA-512 digest of data.
func VerifySHA512(data, hash string) bool {
	return hmac.EqualHex(HashSHA512(data), hash)
}

// GenerateHMAC returns the hex HMAC-SHA-256 of message under secret.
func GenerateHMAC(message, secret string) string {
	return hmac.Hex256(secret, message)
}

// GenerateHMAC512 returns the hex HMAC-SHA-512 of message under secret.
func GenerateHMAC512(message, secret string) string {
	return hmac.Hex512(secret, message)
}

// VerifyHMAC checks an HMAC-SHA-256 signature in constant time.
func VerifyHMAC(message, secret, signature string) bool {
	return hmac.EqualHex(GenerateHMAC(message, secret), signature)
}

// VerifyHMAC512 checks an HMAC-SHA-512 signature in constant time.
func VerifyHMAC512(message, secret, signature string) bool {
	return hmac.EqualHex(GenerateHMAC512(message, secret), signature)
}

// HashAll digests every input with its own engine, running at most workers
// at a time (unbounded when workers <= 0). Results keep the input order.
// It stops scheduling new inputs once ctx is done.
func HashAll(ctx context.Context, alg sha2.Algorithm, inputs [][]byte, workers int) ([]sha2.Digest, error) {
	if !alg.Valid() {
		return nil, fmt.Errorf("%w: %v", sha2.ErrUnknownAlgorithm, alg)
	}

	out := make([]sha2.Digest, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, in := range inputs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := sha2.Sum(alg, in)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
