package simbal

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func avg[T Number](list []T) float64 {
	if len(list) == 0 {
		return 0
	}

	var sum T
	sum = 0
	for _, val := range list {
		sum += val
	}
	return float64(sum) / float64(len(list))
}

// first occurrence wins ties, so scans over processor loads stay deterministic
func findMinIndex[T Number](list []T) int {
	if len(list) == 0 {
		return -1
	}

	minIndex := 0
	minValue := list[0]

	for i, value := range list {
		if value < minValue {
			minIndex = i
			minValue = value
		}
	}

	return minIndex
}

func findMaxIndex[T Number](list []T) int {
	if len(list) == 0 {
		return -1
	}

	maxIndex := 0
	maxValue := list[0]

	for i, value := range list {
		if value > maxValue {
			maxIndex = i
			maxValue = value
		}
	}

	return maxIndex
}
