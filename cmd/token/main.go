// Command token issues an access token for local development against JWT_SECRET_KEY.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/config"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "dev-user", "user_id claim")
	companyID := flag.String("company", "", "company_id claim (required)")
	role := flag.String("role", "owner", "role claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *companyID == "" {
		log.Fatal("-company is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret).GenerateAccessToken(*userID, *companyID, *role, *ttl)
	if err != nil {
		log.Fatal("Failed to sign token: ", err)
	}

	fmt.Println(token)
	fmt.Printf("expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
