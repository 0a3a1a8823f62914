package engine

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

func Min[T number](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T number](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func Clamp[T number](v, lo, hi T) T {
	return Min(Max(v, lo), hi)
}
