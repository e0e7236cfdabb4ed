// Command planner finds an optimal plan for a SAS⁺ task using the
// requested admissible heuristic and prints it: one action name per line,
// followed by a final "Plan cost: N" line ("Plan cost: -1" if no plan
// exists).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"sasplanner/plan"
	"sasplanner/sas"
)

func main() {
	var input, heuristicName string
	flag.StringVar(&input, "input", "", "path to a SAS⁺ task file")
	flag.StringVar(&input, "i", "", "path to a SAS⁺ task file (shorthand)")
	flag.StringVar(&heuristicName, "heuristic", "", "heuristic to search with: hmax or lmcut")
	flag.Parse()

	if input == "" {
		color.Red("planner: --input/-i is required")
		os.Exit(1)
	}

	heuristic := plan.HeuristicName(heuristicName)
	if heuristic != plan.HMax && heuristic != plan.LMCut {
		color.Red("planner: --heuristic must be %q or %q", plan.HMax, plan.LMCut)
		os.Exit(1)
	}

	task, err := sas.ParseFile(input)
	if err != nil {
		color.Red("planner: %v", err)
		os.Exit(1)
	}

	solution, err := plan.Solve(task, heuristic)
	if err != nil {
		color.Red("planner: %v", err)
		os.Exit(1)
	}

	if err := plan.Validate(task, solution); err != nil {
		color.Red("planner: %v", err)
		os.Exit(1)
	}

	for _, action := range solution.Actions {
		fmt.Println(action)
	}
	fmt.Printf("Plan cost: %d\n", solution.Cost)
}
