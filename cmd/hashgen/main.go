// Command hashgen prints the bcrypt hash of each password given on the
// command line. Useful for seeding test users directly in the database.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hashgen [-cost N] password [password...]")
		os.Exit(2)
	}

	for _, password := range flag.Args() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error hashing %q: %v\n", password, err)
			os.Exit(1)
		}
		fmt.Printf("%s\n", hash)
	}
}
