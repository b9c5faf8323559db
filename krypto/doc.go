// Package krypto provides application-level helpers built on hashkit's
// SHA-2 and HMAC primitives: digest and signature helpers, HS256 access and
// refresh tokens, HOTP/TOTP codes, PKCE challenges, random tokens and
// parallel batch hashing.
//
// # Hashing
//
//	hash := krypto.HashSHA256("sensitive data")
//	ok := krypto.VerifySHA256("sensitive data", hash)
//
// # HMAC
//
//	sig := krypto.GenerateHMAC("important message", "shared-secret")
//	ok := krypto.VerifyHMAC("important message", "shared-secret", sig)
//
// Verification compares in constant time.
//
// # Tokens
//
// Access and refresh tokens are HS256 JWTs. The secret is always passed
// explicitly; an empty secret is rejected with ErrMissingSecret.
//
//	token, err := krypto.NewHs256AccessToken(secret, krypto.UserClaims{
//	    First: "Ada",
//	    RegisteredClaims: jwt.RegisteredClaims{
//	        Subject:   "user-1",
//	        ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
//	    },
//	})
//	claims, err := krypto.ParseHs256AccessToken(secret, token)
//
// # One-Time Passwords
//
// GenerateHOTP and GenerateTOTP follow RFC 4226 and RFC 6238 with
// HMAC-SHA-256 or HMAC-SHA-512:
//
//	code, err := krypto.GenerateTOTP(secret, time.Now(), krypto.TOTPOptions{})
//	ok := krypto.ValidateTOTP(secret, code, time.Now(), krypto.TOTPOptions{Skew: 1})
//
// # Batch Hashing
//
// HashAll spreads inputs over a bounded set of goroutines, one engine per
// input:
//
//	digests, err := krypto.HashAll(ctx, sha2.SHA256, inputs, runtime.NumCPU())
package krypto
