// Command admin-token mints a bearer token for the admin mindscape endpoint,
// signed with ADMIN_JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"portfolio-backend/infrastructure/config"
	"portfolio-backend/pkg/auth"
)

func main() {
	subject := flag.String("subject", "owner", "token subject")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Security.AdminJWTSecret == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_JWT_SECRET is not set; the admin endpoint is open and needs no token.")
		os.Exit(1)
	}

	generator, err := auth.NewJWTGenerator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.Security.AdminJWTSecret,
		Issuer:        cfg.Security.AdminJWTIssuer,
	}, *expiry)
	if err != nil {
		log.Fatalf("Failed to create token generator: %v", err)
	}

	token, err := generator.GenerateToken(*subject, []string{auth.RoleAdmin})
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Token for %q expires %s\n", *subject, time.Now().Add(*expiry).Format(time.RFC3339))
	fmt.Println(token)
}
