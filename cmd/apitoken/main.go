// Package main mints a bearer token for a service client of the directory API.
//
//	apitoken -subject maps-frontend [-hours 720]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/geo-directory/backend/config"
	"github.com/geo-directory/backend/internal/auth"
)

func main() {
	subject := flag.String("subject", "", "client name stored in the token subject")
	hours := flag.Int("hours", 0, "token lifetime in hours (default JWT_EXPIRE_HOURS)")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "apitoken: -subject is required")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "apitoken:", err)
		os.Exit(1)
	}
	if !cfg.Auth.JWTEnabled() {
		fmt.Fprintln(os.Stderr, "apitoken: JWT_SECRET is not set")
		os.Exit(1)
	}
	expire := cfg.Auth.JWTExpireHours
	if *hours > 0 {
		expire = *hours
	}
	token, err := auth.NewJWTService(cfg.Auth.JWTSecret, expire).Generate(*subject)
	if err != nil {
		fmt.Fprintln(os.Stderr, "apitoken:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
