package util

import (
	"os"
	"sort"

	"github.com/jsphweid/voicelead/constants"
	"golang.org/x/exp/constraints"
)

func EnsureOutputDir() error {
	return os.MkdirAll(constants.GetOutDir(), 0777)
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func GetKeysSorted[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Abs[A constraints.Signed | constraints.Float](num A) A {
	if num < 0 {
		return -num
	}
	return num
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

// Mod is always non-negative, unlike %.
func Mod[A constraints.Integer](num A, m A) A {
	res := num % m
	if res < 0 {
		res += m
	}
	return res
}

func Clamp[A constraints.Ordered](num, lo, hi A) A {
	return Max(lo, Min(num, hi))
}
