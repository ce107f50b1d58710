package compiler

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/mclaunch/pkg/errors"
	"github.com/arthur-debert/mclaunch/pkg/rules"
	"github.com/arthur-debert/mclaunch/pkg/types"
)

var placeholder = regexp.MustCompile(`\$\{([^}]*)\}`)

// Input holds the templates and computed values of one compilation
type Input struct {
	RuntimeJVM    []types.Argument
	ExtensionJVM  []types.Argument
	RuntimeGame   []types.Argument
	ExtensionGame []types.Argument

	// MinRAM and MaxRAM are passed verbatim, e.g. "2G"
	MinRAM string
	MaxRAM string

	MainClass string
	Env       rules.Env
}

// Expand evaluates rules and appends the computed flags, leaving placeholders in place
func Expand(in Input) Arguments {
	var args Arguments

	args.JVM = rules.ExpandAll(in.RuntimeJVM, in.Env)
	args.JVM = append(args.JVM, rules.ExpandAll(in.ExtensionJVM, in.Env)...)
	if in.MaxRAM != "" {
		args.JVM = append(args.JVM, "-Xmx"+in.MaxRAM)
	}
	if in.MinRAM != "" {
		args.JVM = append(args.JVM, "-Xms"+in.MinRAM)
	}

	args.MainClass = in.MainClass

	args.Game = rules.ExpandAll(in.RuntimeGame, in.Env)
	args.Game = append(args.Game, rules.ExpandAll(in.ExtensionGame, in.Env)...)
	return args
}

// Compile expands and substitutes in a single step
func Compile(in Input, vars Variables) (Arguments, error) {
	if strings.TrimSpace(in.MainClass) == "" {
		return Arguments{}, errors.New(errors.ErrInvalidInput, "no main class to launch")
	}
	return Substitute(Expand(in), vars)
}

// Substitute replaces every placeholder and drops tokens left empty
func Substitute(args Arguments, vars Variables) (Arguments, error) {
	jvm, err := substituteAll(args.JVM, vars)
	if err != nil {
		return Arguments{}, err
	}
	main, err := substituteToken(args.MainClass, vars)
	if err != nil {
		return Arguments{}, err
	}
	game, err := substituteAll(args.Game, vars)
	if err != nil {
		return Arguments{}, err
	}
	return Arguments{JVM: jvm, MainClass: strings.TrimSpace(main), Game: game}, nil
}

func substituteAll(tokens []string, vars Variables) ([]string, error) {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		s, err := substituteToken(tok, vars)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func substituteToken(tok string, vars Variables) (string, error) {
	if !strings.Contains(tok, "${") {
		return tok, nil
	}
	for _, m := range placeholder.FindAllStringSubmatch(tok, -1) {
		if _, ok := vars[m[1]]; !ok {
			return "", errors.Newf(errors.ErrUnresolvedPlaceholder, "unknown placeholder %s", m[0]).
				WithDetail("token", tok).
				WithDetail("name", m[1])
		}
	}
	out := placeholder.ReplaceAllStringFunc(tok, func(m string) string {
		return vars[m[2:len(m)-1]]
	})
	if unterminated(tok) {
		return "", errors.Newf(errors.ErrUnresolvedPlaceholder, "unterminated placeholder in %q", tok).
			WithDetail("token", tok)
	}
	return out, nil
}

// unterminated reports a "${" in the template that no complete placeholder consumes
func unterminated(tok string) bool {
	return strings.Contains(placeholder.ReplaceAllString(tok, ""), "${")
}

// Validate fails when any template token references an unknown placeholder
func Validate(templates []string, vars Variables) error {
	for _, tok := range templates {
		if _, err := substituteToken(tok, vars); err != nil {
			return err
		}
	}
	return nil
}
