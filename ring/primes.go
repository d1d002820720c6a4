// SPDX-License-Identifier: MIT

package ring

import "math/big"

// millerRabinRounds is the number of random bases used after the
// Baillie-PSW test built into big.Int.ProbablyPrime.
const millerRabinRounds = 20

// IsPrime reports whether n is (probably) prime.
func IsPrime(n *big.Int) bool {
	return n.Sign() > 0 && n.ProbablyPrime(millerRabinRounds)
}

// NextPrime returns the smallest prime strictly greater than n.
func NextPrime(n *big.Int) *big.Int {
	c := new(big.Int).Add(n, big.NewInt(1))
	if c.Cmp(big.NewInt(2)) <= 0 {
		return big.NewInt(2)
	}
	if c.Bit(0) == 0 {
		c.Add(c, big.NewInt(1))
	}
	two := big.NewInt(2)
	for !IsPrime(c) {
		c.Add(c, two)
	}

	return c
}
