// Package shell identifies the shells intellicomp can integrate with.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Shell string

const (
	Bash Shell = "bash"
	Fish Shell = "fish"
	Zsh  Shell = "zsh"
	Csh  Shell = "csh"
)

// All lists every shell in the order they are offered to users.
var All = []Shell{Bash, Fish, Zsh, Csh}

var known = map[Shell]bool{
	Bash: true,
	Fish: true,
	Zsh:  true,
	Csh:  true,
}

// Names returns the shell names for help text.
func Names() []string {
	names := make([]string, len(All))
	for i, sh := range All {
		names[i] = string(sh)
	}
	return names
}

// Detect returns the current shell, checking env variables in order.
func Detect() (Shell, error) {
	// Fish sets $FISH_VERSION, zsh sets $ZSH_VERSION, bash sets $BASH_VERSION
	if os.Getenv("FISH_VERSION") != "" {
		return Fish, nil
	}
	if os.Getenv("ZSH_VERSION") != "" {
		return Zsh, nil
	}
	if os.Getenv("BASH_VERSION") != "" {
		return Bash, nil
	}

	// Fallback: parse $SHELL
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return "", fmt.Errorf("could not detect current shell: $SHELL is not set")
	}
	return Parse(filepath.Base(shellPath))
}

// Parse validates and returns a Shell from a user-provided string.
func Parse(s string) (Shell, error) {
	sh := Shell(strings.ToLower(s))
	if sh == "tcsh" {
		sh = Csh
	}
	if !known[sh] {
		return "", fmt.Errorf("shell %q is not supported (supported: %s)", s, strings.Join(Names(), ", "))
	}
	return sh, nil
}

func (s Shell) String() string {
	return string(s)
}

// Set implements pflag.Value so a Shell can be bound to a flag directly.
func (s *Shell) Set(value string) error {
	sh, err := Parse(value)
	if err != nil {
		return err
	}
	*s = sh
	return nil
}

// Type implements pflag.Value.
func (s *Shell) Type() string {
	return "shell"
}
