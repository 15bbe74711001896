package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/stemsi/quiz-app/internal/service"
	"golang.org/x/term"
)

func main() {
	fmt.Println("=== Hash Admin Password ===")

	password, err := prompt("Enter Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading password")
		os.Exit(1)
	}
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "Error: Password must be at least 8 characters")
		os.Exit(1)
	}

	confirm, err := prompt("Repeat Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading password")
		os.Exit(1)
	}
	if confirm != password {
		fmt.Fprintln(os.Stderr, "Error: Passwords do not match")
		os.Exit(1)
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nSet this in the environment:")
	fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hash)
}

// prompt reads a line from the terminal without echoing it.
func prompt(label string) (string, error) {
	fmt.Print(label)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return string(b), err
}
