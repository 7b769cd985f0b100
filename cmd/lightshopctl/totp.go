// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lightshop/internal/auth"
)

var totpSecretCmd = &cobra.Command{
	Use:   "totp-secret",
	Short: "Generate a secret for ADMIN_TOTP_SECRET",
	Long: `Generates a random TOTP secret. Put it in ADMIN_TOTP_SECRET and scan
the provisioning URL (or GET /api/admin/totp.png) with an authenticator
app to enable the second factor on the admin panel.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, url, err := auth.GenerateSecret()
		if err != nil {
			return err
		}
		fmt.Printf("ADMIN_TOTP_SECRET=%s\n", secret)
		fmt.Printf("Provisioning URL: %s\n", url)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(totpSecretCmd)
}
