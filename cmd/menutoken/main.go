// Command menutoken signs a staff token for the live menu API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"livemenu-backend/config"
	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/utils"
)

func main() {
	email := flag.String("email", "", "staff email")
	role := flag.String("role", domain.RoleBudtender, "admin or budtender")
	expiry := flag.Duration("expiry", 12*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	if !(&domain.Identity{Role: *role}).IsPrivileged() {
		fmt.Fprintf(os.Stderr, "unknown staff role %q\n", *role)
		os.Exit(2)
	}

	token, err := utils.GenerateJWT(utils.GenerateUUID(), *email, *role, *expiry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
