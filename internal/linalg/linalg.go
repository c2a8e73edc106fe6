// Package linalg provides the dense column-major linear-algebra
// primitives the PPP engine needs: matrix multiply, LU decomposition,
// inversion, least squares, and the compressed-state Kalman gain
// update.
//
// No third-party matrix library appears anywhere in the retrieved
// example pack, so this stays a direct, from-scratch port (see
// DESIGN.md for the per-dependency justification).
package linalg

import "math"

// Mat allocates an n*m column-major matrix (Fortran order).
func Mat(n, m int) []float64 {
	if n <= 0 || m <= 0 {
		return nil
	}
	return make([]float64, n*m)
}

func iMat(n, m int) []int {
	if n <= 0 || m <= 0 {
		return nil
	}
	return make([]int, n*m)
}

// Zeros allocates a zero matrix.
func Zeros(n, m int) []float64 { return Mat(n, m) }

// Eye allocates an n x n identity matrix.
func Eye(n int) []float64 {
	p := Zeros(n, n)
	for i := 0; i < n; i++ {
		p[i+i*n] = 1.0
	}
	return p
}

// Dot is the inner product of two length-n vectors.
func Dot(a, b []float64, n int) float64 {
	c := 0.0
	for i := 0; i < n; i++ {
		c += a[i] * b[i]
	}
	return c
}

// Norm is the Euclidean norm of a length-n vector.
func Norm(a []float64, n int) float64 { return math.Sqrt(Dot(a, a, n)) }

// Cross3 computes the cross product of two 3-vectors: c = a x b.
func Cross3(a, b, c []float64) {
	c[0] = a[1]*b[2] - a[2]*b[1]
	c[1] = a[2]*b[0] - a[0]*b[2]
	c[2] = a[0]*b[1] - a[1]*b[0]
}

// NormV3 normalizes the 3-vector a into b; returns false if a is the
// zero vector.
func NormV3(a, b []float64) bool {
	r := Norm(a, 3)
	if r <= 0.0 {
		return false
	}
	b[0], b[1], b[2] = a[0]/r, a[1]/r, a[2]/r
	return true
}

// MatCpy copies B into A (both n*m column-major).
func MatCpy(A, B []float64, n, m int) { copy(A, B) }

// MatMul computes C = alpha*op(A)*op(B) + beta*C, where tr selects
// transposition of A and B independently ("N" or "T" per operand): A
// is (n x m) or (m x n) if transposed, B is (m x k) or (k x m).
func MatMul(tr string, n, k, m int, alpha float64, A, B []float64, beta float64, C []float64) {
	var f int
	switch {
	case tr[0] == 'N' && tr[1] == 'N':
		f = 1
	case tr[0] == 'N' && tr[1] != 'N':
		f = 2
	case tr[0] != 'N' && tr[1] == 'N':
		f = 3
	default:
		f = 4
	}
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			d := 0.0
			switch f {
			case 1:
				for x := 0; x < m; x++ {
					d += A[i+x*n] * B[x+j*m]
				}
			case 2:
				for x := 0; x < m; x++ {
					d += A[i+x*n] * B[j+x*k]
				}
			case 3:
				for x := 0; x < m; x++ {
					d += A[x+i*m] * B[x+j*m]
				}
			case 4:
				for x := 0; x < m; x++ {
					d += A[x+i*m] * B[j+x*k]
				}
			}
			if beta == 0.0 {
				C[i+j*n] = alpha * d
			} else {
				C[i+j*n] = alpha*d + beta*C[i+j*n]
			}
		}
	}
}

// LUDcmp factors A in place via Crout's method with partial pivoting.
// indx receives the row-permutation, d the sign of the permutation.
// Returns an error if A is singular.
func LUDcmp(A []float64, n int, indx []int, d *float64) error {
	vv := Mat(n, 1)
	*d = 1.0
	for i := 0; i < n; i++ {
		big := 0.0
		for j := 0; j < n; j++ {
			if tmp := math.Abs(A[i+j*n]); tmp > big {
				big = tmp
			}
		}
		if big <= 0.0 {
			return errSingular
		}
		vv[i] = 1.0 / big
	}
	var imax int
	for j := 0; j < n; j++ {
		for i := 0; i < j; i++ {
			s := A[i+j*n]
			for k := 0; k < i; k++ {
				s -= A[i+k*n] * A[k+j*n]
			}
			A[i+j*n] = s
		}
		big := 0.0
		for i := j; i < n; i++ {
			s := A[i+j*n]
			for k := 0; k < j; k++ {
				s -= A[i+k*n] * A[k+j*n]
			}
			A[i+j*n] = s
			if tmp := vv[i] * math.Abs(s); tmp >= big {
				big = tmp
				imax = i
			}
		}
		if j != imax {
			for k := 0; k < n; k++ {
				A[imax+k*n], A[j+k*n] = A[j+k*n], A[imax+k*n]
			}
			*d = -(*d)
			vv[imax] = vv[j]
		}
		indx[j] = imax
		if A[j+j*n] == 0.0 {
			return errSingular
		}
		if j != n-1 {
			tmp := 1.0 / A[j+j*n]
			for i := j + 1; i < n; i++ {
				A[i+j*n] *= tmp
			}
		}
	}
	return nil
}

// LUBksb solves Ax=b in place given the LU factors from LUDcmp.
func LUBksb(A []float64, n int, indx []int, b []float64) {
	ii := -1
	for i := 0; i < n; i++ {
		ip := indx[i]
		s := b[ip]
		b[ip] = b[i]
		if ii >= 0 {
			for j := ii; j < i; j++ {
				s -= A[i+j*n] * b[j]
			}
		} else if s != 0.0 {
			ii = i
		}
		b[i] = s
	}
	for i := n - 1; i >= 0; i-- {
		s := b[i]
		for j := i + 1; j < n; j++ {
			s -= A[i+j*n] * b[j]
		}
		b[i] = s / A[i+i*n]
	}
}

// MatInv inverts A (n x n) in place.
func MatInv(A []float64, n int) error {
	var d float64
	indx := iMat(n, 1)
	B := Mat(n, n)
	MatCpy(B, A, n, n)
	if err := LUDcmp(B, n, indx, &d); err != nil {
		return err
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			A[i+j*n] = 0.0
		}
		A[j+j*n] = 1.0
		LUBksb(B, n, indx, A[j*n:])
	}
	return nil
}

// Solve solves op(A)*X = Y for X, where tr selects transposition of A.
func Solve(tr string, A, Y []float64, n, m int, X []float64) error {
	B := Mat(n, n)
	MatCpy(B, A, n, n)
	if err := MatInv(B, n); err != nil {
		return err
	}
	tmp := "NN"
	if tr[0] != 'N' {
		tmp = "TN"
	}
	MatMul(tmp, n, m, n, 1.0, B, Y, 0.0, X)
	return nil
}

// LSQ solves the normal equation x = (A*A')^-1 * A*y for an unweighted
// least-squares fit: A is the transposed design matrix (n x m, n
// parameters, m>=n measurements), y the measurements, Q the output
// parameter covariance.
func LSQ(A, y []float64, n, m int, x, Q []float64) error {
	if m < n {
		return errUnderdetermined
	}
	Ay := Mat(n, 1)
	MatMul("NN", n, 1, m, 1.0, A, y, 0.0, Ay)
	MatMul("NT", n, n, m, 1.0, A, A, 0.0, Q)
	if err := MatInv(Q, n); err != nil {
		return err
	}
	MatMul("NN", n, 1, n, 1.0, Q, Ay, 0.0, x)
	return nil
}

func filterDense(x, P, H, v, R []float64, n, m int, xp, Pp []float64) error {
	F := Mat(n, m)
	Q := Mat(m, m)
	K := Mat(n, m)
	I := Eye(n)
	MatCpy(Q, R, m, m)
	MatCpy(xp, x, n, 1)
	MatMul("NN", n, m, n, 1.0, P, H, 0.0, F)
	MatMul("TN", m, m, n, 1.0, H, F, 1.0, Q)
	if err := MatInv(Q, m); err != nil {
		return err
	}
	MatMul("NN", n, m, m, 1.0, F, Q, 0.0, K)
	MatMul("NN", n, 1, m, 1.0, K, v, 1.0, xp)
	MatMul("NT", n, n, m, -1.0, K, H, 1.0, I)
	MatMul("NN", n, n, n, 1.0, I, P, 0.0, Pp)
	return nil
}

// Filter applies the Kalman gain update K=P*H*(H'*P*H+R)^-1,
// xp=x+K*v, Pp=(I-K*H')*P, restricted to the subset of states with
// i<9 (the position/velocity/acceleration slots, always carried) or
// x[i]!=0 and P[i,i]>0 — the PPP engine's compressed-state convention,
// where unestimated states beyond the first 9 are left untouched
// rather than wastefully carried through the dense solve.
func Filter(x, P, H, v, R []float64, n, m int) error {
	ix := iMat(n, 1)
	k := 0
	for i := 0; i < n; i++ {
		if i < 9 || (x[i] != 0.0 && P[i+i*n] > 0.0) {
			ix[k] = i
			k++
		}
	}
	if k == 0 {
		return nil
	}
	x_ := Mat(k, 1)
	xp_ := Mat(k, 1)
	P_ := Mat(k, k)
	Pp_ := Mat(k, k)
	H_ := Mat(k, m)
	for i := 0; i < k; i++ {
		x_[i] = x[ix[i]]
		for j := 0; j < k; j++ {
			P_[i+j*k] = P[ix[i]+ix[j]*n]
		}
		for j := 0; j < m; j++ {
			H_[i+j*k] = H[ix[i]+j*n]
		}
	}
	if err := filterDense(x_, P_, H_, v, R, k, m, xp_, Pp_); err != nil {
		return err
	}
	for i := 0; i < k; i++ {
		x[ix[i]] = xp_[i]
		for j := 0; j < k; j++ {
			P[ix[i]+ix[j]*n] = Pp_[i+j*k]
		}
	}
	return nil
}

// Smoother combines forward and backward filter solutions by
// fixed-interval smoothing: xs=Qs*(Qf^-1*xf+Qb^-1*xb), Qs=(Qf^-1+Qb^-1)^-1.
func Smoother(xf, Qf, xb, Qb []float64, n int, xs, Qs []float64) error {
	invQf := Mat(n, n)
	invQb := Mat(n, n)
	xx := Mat(n, 1)
	MatCpy(invQf, Qf, n, n)
	MatCpy(invQb, Qb, n, n)
	if err := MatInv(invQf, n); err != nil {
		return err
	}
	if err := MatInv(invQb, n); err != nil {
		return err
	}
	for i := 0; i < n*n; i++ {
		Qs[i] = invQf[i] + invQb[i]
	}
	if err := MatInv(Qs, n); err != nil {
		return err
	}
	MatMul("NN", n, 1, n, 1.0, invQf, xf, 0.0, xx)
	MatMul("NN", n, 1, n, 1.0, invQb, xb, 1.0, xx)
	MatMul("NN", n, 1, n, 1.0, Qs, xx, 0.0, xs)
	return nil
}
