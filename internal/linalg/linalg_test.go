package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatMulIdentity(t *testing.T) {
	A := []float64{1, 2, 3, 4} // 2x2 column-major: [[1,3],[2,4]]
	I := Eye(2)
	C := Mat(2, 2)
	MatMul("NN", 2, 2, 2, 1.0, A, I, 0.0, C)
	assert.Equal(t, A, C)
}

func TestMatInvRoundTrip(t *testing.T) {
	A := []float64{4, 2, 7, 6} // [[4,7],[2,6]] col-major
	orig := append([]float64(nil), A...)
	require.NoError(t, MatInv(A, 2))
	C := Mat(2, 2)
	MatMul("NN", 2, 2, 2, 1.0, orig, A, 0.0, C)
	assert.InDelta(t, 1.0, C[0], 1e-9)
	assert.InDelta(t, 0.0, C[1], 1e-9)
	assert.InDelta(t, 0.0, C[2], 1e-9)
	assert.InDelta(t, 1.0, C[3], 1e-9)
}

func TestMatInvSingularErrors(t *testing.T) {
	A := []float64{1, 1, 1, 1}
	assert.Error(t, MatInv(A, 2))
}

func TestSolveLinearSystem(t *testing.T) {
	A := []float64{2, 0, 0, 3} // diag(2,3)
	Y := []float64{4, 9}
	X := Mat(2, 1)
	require.NoError(t, Solve("N", A, Y, 2, 1, X))
	assert.InDelta(t, 2.0, X[0], 1e-9)
	assert.InDelta(t, 3.0, X[1], 1e-9)
}

func TestFilterSkipsUnestimatedStates(t *testing.T) {
	n, m := 10, 1
	x := make([]float64, n)
	x[1] = 5.0
	P := Eye(n) // state 9 unestimated: x==0, so it is outside the first 9 carried slots
	H := make([]float64, n*m)
	H[1] = 1
	H[9] = 1
	v := []float64{1.0}
	R := []float64{0.1}
	require.NoError(t, Filter(x, P, H, v, R, n, m))
	assert.Equal(t, 0.0, x[9], "untouched state must remain exactly zero")
	assert.NotEqual(t, 5.0, x[1], "estimated state must be updated")
}

func TestLSQExactFit(t *testing.T) {
	// y = 2*a (single parameter, three noise-free measurements)
	A := []float64{1, 1, 1}
	y := []float64{2, 2, 2}
	x := Mat(1, 1)
	Q := Mat(1, 1)
	require.NoError(t, LSQ(A, y, 1, 3, x, Q))
	assert.InDelta(t, 2.0, x[0], 1e-9)
}
