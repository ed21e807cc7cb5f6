package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/maze-runner/maze"
	"github.com/lixenwraith/maze-runner/parameter"
)

func main() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n=== MAZE GENERATOR ===")

		rows := getInt(reader, fmt.Sprintf("Rows (default %d): ", parameter.MazeRows), parameter.MazeRows)
		cols := getInt(reader, fmt.Sprintf("Cols (default %d): ", parameter.MazeCols), parameter.MazeCols)
		seed := getInt(reader, fmt.Sprintf("Seed (default %d): ", parameter.MazeSeed), parameter.MazeSeed)

		fmt.Print("Goal: [c]orner, c[e]nter or x,y (default corner): ")
		goalStr, _ := reader.ReadString('\n')

		cfg := maze.Config{
			Rows:      rows,
			Cols:      cols,
			Seed:      uint64(max(seed, 0)),
			Placement: maze.GoalCorner,
		}
		if err := applyGoal(&cfg, strings.ToLower(strings.TrimSpace(goalStr))); err != nil {
			fmt.Printf("Invalid goal: %v\n", err)
			continue
		}

		fmt.Println("\nGenerating...")
		startT := time.Now()
		res, err := maze.Generate(cfg)
		dur := time.Since(startT)

		if err != nil {
			fmt.Printf("Failed: %v\n", err)
		} else {
			fmt.Printf("Done in %v\n", dur)
			fmt.Printf("Grid: %dx%d, %d open cells, goal %v\n", res.Grid.Cols(), res.Grid.Rows(), res.Grid.OpenCount(), res.Goal)
			// Path includes both endpoints
			fmt.Printf("Shortest path: %d moves\n\n", len(res.Solution)-1)

			maze.Draw(os.Stdout, res.Grid, maze.DrawOptions{
				Start:  &res.Start,
				Goal:   &res.Goal,
				Path:   res.Solution,
				Spaced: true,
			})
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

func applyGoal(cfg *maze.Config, s string) error {
	switch s {
	case "", "c", "corner":
		cfg.Placement = maze.GoalCorner
		return nil
	case "e", "center", "centre":
		cfg.Placement = maze.GoalCenter
		return nil
	}

	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return fmt.Errorf("expected corner, center or x,y, got %q", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return fmt.Errorf("invalid cell %q", s)
	}
	cfg.Goal = &maze.Point{X: x, Y: y}
	return nil
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
