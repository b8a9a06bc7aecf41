package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// promptLine reads one line of input for label.
func promptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptValid re-prompts until check accepts the value. The check mirrors the
// rule the service will apply, so an accepted value is not rejected later.
func promptValid(label string, check func(string) error) (string, error) {
	for {
		raw, err := promptLine(label)
		if err != nil {
			return "", err
		}
		if err := check(raw); err != nil {
			fmt.Printf("  %s\n", err)
			continue
		}
		return raw, nil
	}
}

// promptCredentials asks for a username and a hidden password.
func promptCredentials() (string, string, error) {
	username, err := promptLine("Username")
	if err != nil {
		return "", "", err
	}
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}
	return username, string(pw), nil
}
