package stats

// Level maps the share of completed core plans to a heat level 0..4.
// Boundaries belong to the higher bucket. No core plans means level 0.
func Level(completedCore, totalCore int) int {
	switch {
	case totalCore <= 0:
		return 0
	case completedCore >= totalCore:
		return 4
	case completedCore*4 >= totalCore*3:
		return 3
	case completedCore*2 >= totalCore:
		return 2
	case completedCore > 0:
		return 1
	default:
		return 0
	}
}
