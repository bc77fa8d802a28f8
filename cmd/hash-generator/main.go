// Package main implements a small utility that prints bcrypt hashes for the
// passwords given on the command line, for seeding user records by hand.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt work factor")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-cost n] password...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := printHashes(os.Stdout, *cost, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printHashes writes one "password<TAB>hash" line per password.
func printHashes(w io.Writer, cost int, passwords []string) error {
	hasher, err := auth.NewBcryptHasher(cost)
	if err != nil {
		return err
	}

	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hashing %q: %w", password, err)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", password, hash); err != nil {
			return err
		}
	}
	return nil
}
