package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/hello2himel/equilibrium-statistic/internal/equilibrium"
)

// parseDataset parses a comma-separated list of numbers. Empty fields are
// skipped, so trailing commas are harmless.
func parseDataset(input string) ([]float64, error) {
	var data []float64
	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: enter numbers separated by commas", field)
		}
		data = append(data, v)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("enter at least one number")
	}
	return data, nil
}

// acquireInteractive prompts for the dataset, the convergence criterion,
// and the chart preference, re-prompting on invalid input.
func acquireInteractive() ([]float64, equilibrium.Criterion, bool, error) {
	cyan := color.New(color.FgCyan).SprintFunc()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cyan("> "),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, equilibrium.Criterion{}, false, fmt.Errorf("failed to create readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	data, err := promptDataset(rl)
	if err != nil {
		return nil, equilibrium.Criterion{}, false, err
	}
	criterion, err := promptCriterion(rl, cfg.Epsilon)
	if err != nil {
		return nil, equilibrium.Criterion{}, false, err
	}
	showGraph, err := promptGraph(rl, cfg.Graph)
	if err != nil {
		return nil, equilibrium.Criterion{}, false, err
	}
	return data, criterion, showGraph, nil
}

func promptDataset(rl *readline.Instance) ([]float64, error) {
	for {
		line, err := prompt(rl, "Enter numbers separated by commas: ")
		if err != nil {
			return nil, err
		}
		data, err := parseDataset(line)
		if err != nil {
			printPromptError(err)
			continue
		}
		return data, nil
	}
}

func promptCriterion(rl *readline.Instance, defaultEpsilon float64) (equilibrium.Criterion, error) {
	msg := fmt.Sprintf("Convergence threshold (default %g, '*' for stagnation-only): ", defaultEpsilon)
	for {
		line, err := prompt(rl, msg)
		if err != nil {
			return equilibrium.Criterion{}, err
		}
		switch {
		case line == "":
			return equilibrium.Criterion{Epsilon: defaultEpsilon}, nil
		case line == "*":
			return equilibrium.Criterion{StagnationOnly: true}, nil
		default:
			eps, err := strconv.ParseFloat(line, 64)
			if err != nil {
				printPromptError(fmt.Errorf("enter a positive number or '*' for stagnation-only mode"))
				continue
			}
			if eps <= 0 {
				printPromptError(fmt.Errorf("epsilon must be positive"))
				continue
			}
			return equilibrium.Criterion{Epsilon: eps}, nil
		}
	}
}

func promptGraph(rl *readline.Instance, def bool) (bool, error) {
	hint := "Y/n"
	if !def {
		hint = "y/N"
	}
	for {
		line, err := prompt(rl, fmt.Sprintf("Show convergence chart? (%s): ", hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes", "1", "true":
			return true, nil
		case "n", "no", "0", "false":
			return false, nil
		default:
			printPromptError(fmt.Errorf("enter 'y' or 'n'"))
		}
	}
}

// prompt reads one trimmed line. Ctrl+C and Ctrl+D both abort the whole
// acquisition rather than looping forever.
func prompt(rl *readline.Instance, message string) (string, error) {
	rl.SetPrompt(message)
	line, err := rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", fmt.Errorf("input aborted")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func printPromptError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Printf("%s %v\n", red("Invalid input:"), err)
}
