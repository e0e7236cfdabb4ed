// Command lmcut prints the h^LM-cut heuristic value of a SAS⁺ task's
// initial state.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/fatih/color"

	"sasplanner/plan"
	"sasplanner/sas"
)

func main() {
	var input string
	flag.StringVar(&input, "input", "", "path to a SAS⁺ task file")
	flag.StringVar(&input, "i", "", "path to a SAS⁺ task file (shorthand)")
	flag.Parse()

	if input == "" {
		color.Red("lmcut: --input/-i is required")
		os.Exit(1)
	}

	task, err := sas.ParseFile(input)
	if err != nil {
		color.Red("lmcut: %v", err)
		os.Exit(1)
	}

	value, err := plan.Value(task, plan.LMCut)
	if err != nil {
		color.Red("lmcut: %v", err)
		os.Exit(1)
	}

	fmt.Println(formatValue(value))
}

func formatValue(v int) string {
	if v == math.MaxInt {
		return "inf"
	}
	return fmt.Sprintf("%d", v)
}
