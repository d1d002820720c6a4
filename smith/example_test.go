// SPDX-License-Identifier: MIT

package smith_test

import (
	"context"
	"fmt"
	"os"

	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/modrank"
	"github.com/katalvlaran/exactla/smith"
)

// ExampleCompute derives the Smith form of diag(2, 4, 6). The valence 2304
// = 2⁸·3² names the only primes that can divide an invariant.
func ExampleCompute() {
	a := matrixio.FromRows([][]int64{{2, 0, 0}, {0, 4, 0}, {0, 0, 6}})
	res, err := smith.Compute(context.Background(), modrank.NewMemorySource(a))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("valence", res.Valence, "rank", res.Rank)
	_ = matrixio.WriteCompressedSmith(os.Stdout, res.Compressed())
	// Output:
	// valence 2304 rank 3
	// ([2,2] [12,1])
}
