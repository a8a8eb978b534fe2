package series

import "github.com/salespipe/forecast-engine/internal/models"

// MergeSort sorts a copy of points with a guaranteed O(n log n) stable merge
// sort. The stdlib stable sort is fine for typical inputs; bulk imports go
// through this path so a pathological comparator distribution cannot
// degenerate the sort (see Prepare).
func MergeSort(points []models.DataPoint, less func(a, b models.DataPoint) bool) []models.DataPoint {
	src := make([]models.DataPoint, len(points))
	copy(src, points)
	if len(src) < 2 {
		return src
	}
	buf := make([]models.DataPoint, len(src))
	mergeSort(src, buf, less)
	return src
}

func mergeSort(data, buf []models.DataPoint, less func(a, b models.DataPoint) bool) {
	n := len(data)
	if n < 2 {
		return
	}
	mid := n / 2
	mergeSort(data[:mid], buf[:mid], less)
	mergeSort(data[mid:], buf[mid:], less)
	merge(data, buf, mid, less)
}

// merge combines two sorted halves of data through buf. Ties take the left
// element first, which keeps the sort stable.
func merge(data, buf []models.DataPoint, mid int, less func(a, b models.DataPoint) bool) {
	copy(buf, data)
	i, j := 0, mid
	for k := 0; k < len(data); k++ {
		switch {
		case i >= mid:
			data[k] = buf[j]
			j++
		case j >= len(buf):
			data[k] = buf[i]
			i++
		case less(buf[j], buf[i]):
			data[k] = buf[j]
			j++
		default:
			data[k] = buf[i]
			i++
		}
	}
}
