// SPDX-License-Identifier: MIT

package modrank

import (
	"context"

	"github.com/katalvlaran/exactla/matrixio"
)

// Source provides the integer matrix to every rank computation.
type Source interface {
	// Load returns the matrix. The result is treated as read-only.
	Load(ctx context.Context) (*matrixio.Triplets, error)
	Name() string
}

// FileSource re-reads a matrix file on every Load, so concurrent tasks hold
// independent copies.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (*matrixio.Triplets, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return matrixio.ReadFile(s.Path)
}

func (s FileSource) Name() string { return s.Path }

// MemorySource shares one immutable matrix between all tasks.
type MemorySource struct {
	t *matrixio.Triplets
}

// NewMemorySource wraps t. The caller must not modify t afterwards.
func NewMemorySource(t *matrixio.Triplets) *MemorySource {
	return &MemorySource{t: t}
}

func (s *MemorySource) Load(ctx context.Context) (*matrixio.Triplets, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.t, nil
}

func (s *MemorySource) Name() string { return "memory" }
