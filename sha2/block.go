package sha2

// SHA-2 block step, shared by both word widths.

func rotr[W Word](x W, n, width uint) W {
	return x>>n | x<<(width-n)
}

func ch[W Word](x, y, z W) W {
	return (x & y) ^ (^x & z)
}

func maj[W Word](x, y, z W) W {
	return (x & y) ^ (x & z) ^ (y & z)
}

// bigSigma is Σ: three rotations.
func bigSigma[W Word](x W, r rotations, width uint) W {
	return rotr(x, r[0], width) ^ rotr(x, r[1], width) ^ rotr(x, r[2], width)
}

// smallSigma is σ: two rotations and a shift.
func smallSigma[W Word](x W, r rotations, width uint) W {
	return rotr(x, r[0], width) ^ rotr(x, r[1], width) ^ (x >> r[2])
}

// block applies the compression function to one block. Word arithmetic
// wraps modulo 2^width.
func (e *Engine[W]) block(b []byte) {
	blockGeneric(e.p, &e.h, e.w[:e.p.rounds], b)
}

func blockGeneric[W Word](p *params[W], dig *[8]W, w []W, data []byte) {
	width := uint(p.wordSize * 8)

	for i := 0; i < 16; i++ {
		w[i] = p.load(data[i*p.wordSize:])
	}
	for i := 16; i < p.rounds; i++ {
		w[i] = smallSigma(w[i-2], p.sigma1, width) + w[i-7] + smallSigma(w[i-15], p.sigma0, width) + w[i-16]
	}

	a, b, c, d, e, f, g, h := dig[0], dig[1], dig[2], dig[3], dig[4], dig[5], dig[6], dig[7]

	for i := 0; i < p.rounds; i++ {
		t1 := h + bigSigma(e, p.sum1, width) + ch(e, f, g) + p.k[i] + w[i]
		t2 := bigSigma(a, p.sum0, width) + maj(a, b, c)
		h = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	dig[0] += a
	dig[1] += b
	dig[2] += c
	dig[3] += d
	dig[4] += e
	dig[5] += f
	dig[6] += g
	dig[7] += h
}
