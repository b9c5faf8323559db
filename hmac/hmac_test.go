package hmac

import (
	stdhmac "crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobeaver/hashkit/sha2"
)

func repeat(b byte, n int) []byte {
	return []byte(strings.Repeat(string([]byte{b}), n))
}

// RFC 4231 test cases 1-4, 6 and 7 (case 5 covers truncated output).
func TestRFC4231(t *testing.T) {
	seq := make([]byte, 25)
	for i := range seq {
		seq[i] = byte(i + 1)
	}

	tests := []struct {
		name    string
		key     []byte
		data    []byte
		want256 string
		want512 string
	}{
		{
			name:    "case 1",
			key:     repeat(0x0b, 20),
			data:    []byte("Hi There"),
			want256: "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
			want512: "87aa7cdea5ef619d4ff0b4241a1d6cb02379f4e2ce4ec2787ad0b30545e17cdedaa833b7d6b8a702038b274eaea3f4e4be9d914eeb61f1702e696c203a126854",
		},
		{
			name:    "case 2 short key",
			key:     []byte("Jefe"),
			data:    []byte("what do ya want for nothing?"),
			want256: "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
			want512: "164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea2505549758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737",
		},
		{
			name:    "case 3",
			key:     repeat(0xaa, 20),
			data:    repeat(0xdd, 50),
			want256: "773ea91e36800e46854db8ebd09181a72959098b3ef8c122d9635514ced565fe",
			want512: "fa73b0089d56a284efb0f0756c890be9b1b5dbdd8ee81a3655f83e33b2279d39bf3e848279a722c806b485a47e67c807b946a337bee8942674278859e13292fb",
		},
		{
			name:    "case 4",
			key:     seq,
			data:    repeat(0xcd, 50),
			want256: "82558a389a443c0ea4cc819899f2083a85f0faa3e578f8077a2e3ff46729665b",
			want512: "b0ba465637458c6990e5a8c5f61d4af7e576d97ff94b872de76f8050361ee3dba91ca5c11aa25eb4d679275cc5788063a5f19741120c4f2de2adebeb10a298dd",
		},
		{
			name:    "case 6 key larger than block",
			key:     repeat(0xaa, 131),
			data:    []byte("Test Using Larger Than Block-Size Key - Hash Key First"),
			want256: "60e431591ee0b67f0d8a26aacbf5b77f8e0bc6213728c5140546040f0ee37f54",
			want512: "80b24263c7c1a3ebb71493c1dd7be8b49b46d1f41b4aeec1121b013783f8f3526b56d037e05f2598bd0fd2215d6a1e5295e64f73f63f0aec8b915a985d786598",
		},
		{
			name:    "case 7 key and data larger than block",
			key:     repeat(0xaa, 131),
			data:    []byte("This is a test using a larger than block-size key and a larger than block-size data. The key needs to be hashed before being used by the HMAC algorithm."),
			want256: "9b09ffa71b942fcb27635fbcd5b0e944bfdc63644f0713938a7f51535c3a35e2",
			want512: "e37b6a775dc87dbaa4dfa9f96e5e3ffddebd71f8867289865df5a32d20cdc944b6022cac3c4982b10d5eeb55c3e4de15134676fb6de0446065c97440fa8c6a58",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got256, err := Hex(sha2.SHA256, tt.key, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want256, got256)

			got512, err := Hex(sha2.SHA512, tt.key, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want512, got512)
		})
	}
}

func TestHexShorthands(t *testing.T) {
	msg := "The quick brown fox jumps over the lazy dog"

	got256 := Hex256("key", msg)
	assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", got256)
	assert.Len(t, got256, 64)

	got512 := Hex512("key", msg)
	assert.Equal(t, "b42af09057bac1e2d41708e48a902e09b5ff7f12ab428a4fe86653c73dd248fb82f948a549f7b791a5b41915ee4d1ec3935357e4e2317250d0372afa2ebeeb3a", got512)
	assert.Len(t, got512, 128)
}

// Keys one short of, equal to and one past the block size straddle the
// hash-then-pad rule.
func TestKeyLengthBoundary(t *testing.T) {
	key := func(n int) []byte {
		k := make([]byte, n)
		for i := range k {
			k[i] = byte(i*7 + 1)
		}
		return k
	}

	tests := []struct {
		keyLen  int
		want256 string
		want512 string
	}{
		{
			keyLen:  63,
			want256: "f17dad1eca7c842deade32979b0c215f58523ee5c75a4880ee00ad2ca438f771",
			want512: "42b9575249f1f8a775daf888bd78235d28e5b41ffc64e0234df828701613b17f678c4ae20289b92cef6084ffe19471ec1534326353862424a7c74cf27c279aa7",
		},
		{
			keyLen:  64,
			want256: "e99e380e874773777f82cf60ebcacc3eec4414e192260c8ed2803a4fcdb1a3b1",
			want512: "94113e1e3b184186266ecf57b6325f76dd6f330c64cfd44a5e3da2164c230c532f390d147e82739f5ff484a02e9885d397e2375a1f4d0aa9046db549ebae4c60",
		},
		{
			keyLen:  65,
			want256: "e5e301744da754353056a142ebdbf7501813d7e55a36e1a082d4bead910471c0",
			want512: "f52403f8bec1c14673f8694c1ba69ab879462669194d65496ef28d3b3040e1205eabc15518048bebdd32f7a3fe2ebf1386a5c987078b34e52e4068e8bc2d6bcc",
		},
		{
			keyLen:  127,
			want256: "9a4c0d953e7feee51e37b039f0348348af8a5dbb0b84276c7e264d8e99bd36ab",
			want512: "f5ff74b9e361dc25313d5eb5a66c44374b3841f7bd855146811be0ca070c75da7e2a67ed90f7130ee13ef504e620756b51ced4efa05df54cada6f50d6ec61c15",
		},
		{
			keyLen:  128,
			want256: "733d68f7d1611749c6abb9c323a4b6bcf94fd51d214e30b07d35bd63bfc8d3ac",
			want512: "1a5fd3ce22dd12102c4692ab97ba514d6537585e211a346a6a2b7985eb61a5924a2188223cf622e8a97242ec2a84e758d128287e6238390262721d5638ed69c8",
		},
		{
			keyLen:  129,
			want256: "8238cef00203f15c677599ae53fbd1100e2fbc0a19f3e7676e921d855b4c63f4",
			want512: "d63ed91c18133cb8a9699c34c525214b77e1272ae200a08c1298de0b585c974abadc00702e53c9562b547dfc1c0c738239539865dca2a4d9f86eb48d6d3e3a8a",
		},
	}

	for _, tt := range tests {
		k := key(tt.keyLen)

		got256, err := Hex(sha2.SHA256, k, []byte("boundary"))
		require.NoError(t, err)
		assert.Equal(t, tt.want256, got256, "sha256 key length %d", tt.keyLen)

		got512, err := Hex(sha2.SHA512, k, []byte("boundary"))
		require.NoError(t, err)
		assert.Equal(t, tt.want512, got512, "sha512 key length %d", tt.keyLen)
	}
}

func TestNormalizeKey(t *testing.T) {
	for _, alg := range []sha2.Algorithm{sha2.SHA256, sha2.SHA512} {
		bs := alg.BlockSize()

		short := NormalizeKey(alg, []byte("abc"))
		require.Len(t, short, bs)
		assert.Equal(t, []byte("abc"), short[:3])
		assert.Equal(t, make([]byte, bs-3), short[3:])

		exact := repeat(0x11, bs)
		assert.Equal(t, exact, NormalizeKey(alg, exact))

		long := repeat(0x11, bs+1)
		digest, err := sha2.Sum(alg, long)
		require.NoError(t, err)
		got := NormalizeKey(alg, long)
		require.Len(t, got, bs)
		assert.Equal(t, []byte(digest), got[:alg.Size()])
		assert.Equal(t, make([]byte, bs-alg.Size()), got[alg.Size():])
	}

	assert.Nil(t, NormalizeKey(sha2.Algorithm(0), []byte("k")))
}

func TestMatchesStandardLibrary(t *testing.T) {
	msg := []byte("message authentication")

	for n := 0; n <= 200; n += 7 {
		key := repeat(byte(n), n)

		want256 := stdhmac.New(sha256.New, key)
		want256.Write(msg)
		got256, err := Sum(sha2.SHA256, key, msg)
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(want256.Sum(nil)), got256.Hex(), "sha256 key length %d", n)

		want512 := stdhmac.New(sha512.New, key)
		want512.Write(msg)
		got512, err := Sum(sha2.SHA512, key, msg)
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(want512.Sum(nil)), got512.Hex(), "sha512 key length %d", n)
	}
}

func TestStreamingMAC(t *testing.T) {
	key := []byte("stream-key")
	m, err := New(sha2.SHA256, key)
	require.NoError(t, err)
	assert.Equal(t, sha2.Size256, m.Size())
	assert.Equal(t, sha2.BlockSize256, m.BlockSize())
	assert.Equal(t, sha2.SHA256, m.Algorithm())

	_, _ = m.Write([]byte("hello "))
	first := m.Sum(nil)
	_, _ = m.Write([]byte("world"))
	second := m.Sum(nil)

	want, err := Sum(sha2.SHA256, key, []byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, []byte(want), second)

	want, err = Sum(sha2.SHA256, key, []byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, []byte(want), first)

	m.Reset()
	_, _ = m.Write([]byte("hello world"))
	assert.Equal(t, second, m.Sum(nil))
}

func TestVerifyAndEqual(t *testing.T) {
	key, msg := []byte("k"), []byte("m")
	tag, err := Sum(sha2.SHA512, key, msg)
	require.NoError(t, err)

	assert.True(t, Verify(sha2.SHA512, key, msg, tag))
	assert.False(t, Verify(sha2.SHA512, key, []byte("x"), tag))
	assert.False(t, Verify(sha2.SHA256, key, msg, tag))
	assert.False(t, Verify(sha2.Algorithm(0), key, msg, tag))

	assert.True(t, EqualHex(tag.Hex(), tag.Hex()))
	assert.False(t, EqualHex(tag.Hex(), strings.ToUpper(tag.Hex())))
	assert.False(t, Equal(tag, tag[:10]))
}

func TestUnknownAlgorithm(t *testing.T) {
	_, err := New(sha2.Algorithm(0), []byte("k"))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	_, err = Hex(sha2.Algorithm(3), nil, nil)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.ErrorIs(t, err, sha2.ErrUnknownAlgorithm)

	_, err = Sum(sha2.Algorithm(7), []byte("k"), []byte("m"))
	assert.ErrorIs(t, err, sha2.ErrUnknownAlgorithm)
}

func TestDeterministic(t *testing.T) {
	assert.Equal(t, Hex256("secret", "payload"), Hex256("secret", "payload"))
	assert.NotEqual(t, Hex256("secret", "payload"), Hex256("secret2", "payload"))
}
