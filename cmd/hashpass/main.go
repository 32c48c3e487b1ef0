// Command hashpass prints the bcrypt hash of a passcode. Handy when swapping
// the built-in demo passcodes for deployment-specific ones.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: hashpass <passcode>")
		os.Exit(1)
	}

	passcode := os.Args[1]

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), 12)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Passcode: %s\n", passcode)
	fmt.Printf("Hash: %s\n", string(hash))
}
