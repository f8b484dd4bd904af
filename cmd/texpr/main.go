// cmd/texpr is an interactive REPL over the scientific and integer
// evaluators, grounded on the teacher's internal/repl read-eval-print
// loop shape (bufio.Scanner over stdin, a ">>> " prompt, an "exit" to
// quit) adapted from a bytecode VM's single Run() call to one
// texpr.Solve/IntSolve call per line.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"texpr"
)

func main() {
	fmt.Println("texpr REPL | type 'exit' to quit, ':int' to switch to the integer domain, ':sci' to switch back")
	scanner := bufio.NewScanner(os.Stdin)

	ctx := texpr.NewContext()
	integerMode := false

	for {
		if integerMode {
			fmt.Print("int>>> ")
		} else {
			fmt.Print(">>> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit":
			return
		case ":int":
			integerMode = true
			continue
		case ":sci":
			integerMode = false
			continue
		}

		if integerMode {
			v, err := texpr.IntSolveIn(ctx, line)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(v)
			continue
		}

		v, err := texpr.SolveIn(ctx, line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(formatResult(v))
	}
}

func formatResult(v complex128) string {
	if imag(v) == 0 {
		return fmt.Sprintf("%g", real(v))
	}
	if imag(v) > 0 {
		return fmt.Sprintf("%g+%gi", real(v), imag(v))
	}
	return fmt.Sprintf("%g%gi", real(v), imag(v))
}
