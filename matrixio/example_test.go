// SPDX-License-Identifier: MIT

package matrixio_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/exactla/matrixio"
)

// ExampleRead converts a dense matrix into the sparse triplet format.
func ExampleRead() {
	t, err := matrixio.Read(strings.NewReader("2 3\n1 0 2\n0 -3 0\n"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = matrixio.WriteSMS(os.Stdout, t)
	// Output:
	// 2 3 M
	// 1 1 1
	// 1 3 2
	// 2 2 -3
	// 0 0 0
}
