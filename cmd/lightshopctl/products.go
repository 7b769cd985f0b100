// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lightshop/internal/catalog"
	"lightshop/internal/models"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage catalog products",
	Long:  "List, create, delete, import and export catalog products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		products, err := m.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tGLOW")
		for _, p := range products {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Category.Label(), p.Price, p.GlowColor)
		}
		return w.Flush()
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		category, _ := flags.GetString("category")
		price, _ := flags.GetInt64("price")
		image, _ := flags.GetString("image")
		glow, _ := flags.GetString("glow")
		description, _ := flags.GetString("description")

		draft := models.ProductDraft{
			Name:        args[0],
			Category:    models.Category(category),
			Price:       price,
			ImageURL:    image,
			GlowColor:   models.GlowColor(glow),
			Description: description,
		}
		draft.Normalize()

		m, err := newManager()
		if err != nil {
			return err
		}
		id, err := m.Create(cmd.Context(), draft)
		if err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		fmt.Printf("Product created (ID: %d)\n", id)
		return nil
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product ID %q", args[0])
		}

		var opts []catalog.Option
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			opts = append(opts, catalog.WithConfirm(confirmDelete))
		}
		m, err := newManager(opts...)
		if err != nil {
			return err
		}
		// Load first so the prompt can show the product name.
		if _, err := m.Load(cmd.Context()); err != nil {
			return fmt.Errorf("load products: %w", err)
		}

		deleted, err := m.Delete(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		if !deleted {
			fmt.Println("Cancelled")
			return nil
		}
		fmt.Printf("Product %d deleted\n", id)
		return nil
	},
}

var productsExportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export the catalog to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		products, err := m.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		if err := catalog.WriteXLSX(f, products); err != nil {
			return err
		}
		fmt.Printf("Exported %d products to %s\n", len(products), args[0])
		return nil
	},
}

var productsImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Create products from a spreadsheet",
	Long: `Creates one product per data row of the first sheet. The header row
must name at least the name and price columns. Rows that fail are
reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		rows, err := catalog.ParseXLSX(f)
		if err != nil {
			return fmt.Errorf("read spreadsheet: %w", err)
		}

		m, err := newManager()
		if err != nil {
			return err
		}
		created, failed := 0, 0
		for _, row := range rows {
			if row.Err != nil {
				fmt.Fprintf(os.Stderr, "row %d: %v\n", row.Row, row.Err)
				failed++
				continue
			}
			id, err := m.Create(cmd.Context(), row.Draft)
			if err != nil {
				fmt.Fprintf(os.Stderr, "row %d: %v\n", row.Row, err)
				failed++
				continue
			}
			fmt.Printf("row %d: created product %d\n", row.Row, id)
			created++
		}
		fmt.Printf("Imported %d products, %d rows skipped\n", created, failed)
		return nil
	},
}

func init() {
	productsCreateCmd.Flags().String("category", string(models.CategoryInterior), "interior, exterior, landscape or decorative")
	productsCreateCmd.Flags().Int64("price", 0, "price in rubles")
	productsCreateCmd.Flags().String("image", "", "image URL")
	productsCreateCmd.Flags().String("glow", string(models.GlowBlue), "blue, white, warm or rgb")
	productsCreateCmd.Flags().String("description", "", "description (Markdown)")
	productsCreateCmd.MarkFlagRequired("image")

	productsDeleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	productsCmd.AddCommand(productsListCmd, productsCreateCmd, productsDeleteCmd, productsExportCmd, productsImportCmd)
	rootCmd.AddCommand(productsCmd)
}
