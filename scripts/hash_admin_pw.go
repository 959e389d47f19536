// scripts/hash_admin_pw.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Prints a bcrypt hash for ADMIN_PW_HASH. Usage: go run scripts/hash_admin_pw.go <password>
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	fmt.Println("ADMIN_PW_HASH=" + string(hashed))
}
