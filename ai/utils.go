package ai

import "gridsnake/game/types"

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// manhattanDistance is the number of moves between two points. The grid has
// walls, so there is no wrap-around.
func manhattanDistance(p1, p2 types.Point) int {
	return abs(p2.X-p1.X) + abs(p2.Y-p1.Y)
}
