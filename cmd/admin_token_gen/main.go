// Command admin_token_gen mints a bearer token for a payment account.
// The server trusts any token signed with JWT_SECRET; ownership is
// decided by the admin gate, not by the token.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	account := flag.String("account", "", "payment account id (token subject)")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	if *account == "" {
		log.Fatal("-account is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   *account,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
		Issuer:    "skyledger",
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Println(token)
}
