package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/auth"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/urfave/cli/v3"
)

// TokenCommand mints a bearer token for /content/{contentType}/{slug}.
func TokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Mint a bearer token signed with the API secret",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "secret",
				Usage:    "HS256 secret shared with the API",
				Sources:  cli.EnvVars("VIP_JWT_SECRET"),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "subject",
				Usage: "Token subject",
				Value: "catalogctl",
			},
			&cli.StringFlag{
				Name:  "tier",
				Usage: "Subscription tier: free or vip",
				Value: string(domain.TierVip),
			},
			&cli.DurationFlag{
				Name:  "expires",
				Usage: "Token lifetime",
				Value: 24 * time.Hour,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			token, err := mintToken(c.String("secret"), c.String("subject"), c.String("tier"), c.Duration("expires"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, token)
			return err
		},
	}
}

func mintToken(secret, subject, tier string, expires time.Duration) (string, error) {
	t := domain.Tier(strings.ToLower(strings.TrimSpace(tier)))
	if t != domain.TierFree && t != domain.TierVip {
		return "", fmt.Errorf("unknown tier %q", tier)
	}
	if expires <= 0 {
		return "", fmt.Errorf("token lifetime must be positive, got %s", expires)
	}
	return auth.NewJWTManager(secret, expires).GenerateToken(subject, t)
}
