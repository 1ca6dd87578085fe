package cmd

import (
	"errors"
	"time"

	"github.com/ismaelescalante7/challenge-leverbox/utils"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenScope   string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for API clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap()
		if err != nil {
			return err
		}
		if cfg.Auth.Secret == "" {
			return errors.New("JWT_SECRET is not set")
		}

		ttl := tokenTTL
		if ttl == 0 {
			ttl = cfg.Auth.TokenTTL
		}

		tok, err := utils.GenerateJWT([]byte(cfg.Auth.Secret), tokenSubject, tokenScope, ttl)
		if err != nil {
			return err
		}
		printf(cmd, "%s\n", tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "token subject")
	tokenCmd.Flags().StringVar(&tokenScope, "scope", utils.ScopeRead, "read or write")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default: TOKEN_TTL)")
	rootCmd.AddCommand(tokenCmd)
}
