// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command lightshopctl manages the catalog of a running storefront API
// from the terminal and handles admin gate chores.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lightshop/internal/catalog"
	"lightshop/internal/models"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lightshopctl",
	Short: "lightshopctl - catalog and admin tooling for the lighting store",
	Long: `lightshopctl talks to the storefront API with the admin token.

Settings come from flags, LIGHTSHOP_* environment variables or a YAML
config file (api, token).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().String("api", "http://localhost:8080", "storefront API base URL")
	rootCmd.PersistentFlags().String("token", "", "admin API token (X-Admin-Token)")
	viper.BindPFlag("api", rootCmd.PersistentFlags().Lookup("api"))
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
}

// initConfig layers the config file and LIGHTSHOP_* variables under the
// flags. ADMIN_TOKEN is accepted as well so the server's .env works as is.
func initConfig() error {
	viper.SetEnvPrefix("lightshop")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("token", "LIGHTSHOP_TOKEN", "ADMIN_TOKEN")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// newManager builds an API client from the resolved settings.
func newManager(opts ...catalog.Option) (*catalog.Manager, error) {
	api := viper.GetString("api")
	if api == "" {
		return nil, fmt.Errorf("API base URL is required (--api or LIGHTSHOP_API)")
	}
	return catalog.NewManager(api, viper.GetString("token"), opts...), nil
}

// confirmDelete asks on stdin before a product is deleted.
func confirmDelete(p *models.Product) bool {
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("#%d", p.ID)
	}
	fmt.Printf("Удалить товар %q? [y/N]: ", name)
	var answer string
	fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes" || answer == "д" || answer == "да"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
