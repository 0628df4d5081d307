/*
Copyright © 2026 Marta Di Muro

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allergiapp/langpack/internal/store"
	"github.com/allergiapp/langpack/internal/validator"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Manage downloaded language packs",
	Long:  `List, verify and delete the locally stored language packs.`,
}

var languagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List downloaded language packs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(viper.GetString("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		ctx := context.Background()
		codes, err := db.ListCodes(ctx)
		if err != nil {
			return fmt.Errorf("failed to list language packs: %w", err)
		}

		if len(codes) == 0 {
			fmt.Println("No language packs downloaded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LANG\tALLERGENS\tWARNINGS\tDOWNLOADED")
		for _, code := range codes {
			data, err := db.Get(ctx, code)
			if err != nil {
				return err
			}
			if data == nil {
				continue
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
				code, len(data.Allergens), len(data.Warnings),
				data.DownloadedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var languagesDeleteCmd = &cobra.Command{
	Use:   "delete <lang>",
	Short: "Delete a downloaded language pack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]

		db, err := store.New(viper.GetString("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		ctx := context.Background()
		data, err := db.Get(ctx, code)
		if err != nil {
			return err
		}
		if data == nil {
			return fmt.Errorf("no language pack for %s", code)
		}

		if err := db.Delete(ctx, code); err != nil {
			return fmt.Errorf("failed to delete language pack: %w", err)
		}

		fmt.Printf("Deleted language pack %s\n", code)
		return nil
	},
}

var languagesVerifyCmd = &cobra.Command{
	Use:   "verify <lang>",
	Short: "Verify a language pack is in its claimed language",
	Long: `Run language detection over every entry of a stored language pack and
report entries that do not look like the target language. Entries kept in
English as a quality fallback during the download show up here as expected
mismatches.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]

		db, err := store.New(viper.GetString("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		data, err := db.Get(context.Background(), code)
		if err != nil {
			return err
		}
		if data == nil {
			return fmt.Errorf("no language pack for %s", code)
		}

		report := validator.New().VerifyBundle(data, code)

		fmt.Printf("Checked %d entries, skipped %d (too short or ambiguous)\n",
			report.Checked, report.Skipped)

		if len(report.Mismatched) == 0 {
			fmt.Println("All checked entries match the target language.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FIELD\tDETECTED")
		for _, m := range report.Mismatched {
			fmt.Fprintf(w, "%s\t%s\n", m.Field, m.Detected)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
	languagesCmd.AddCommand(languagesListCmd)
	languagesCmd.AddCommand(languagesDeleteCmd)
	languagesCmd.AddCommand(languagesVerifyCmd)
}
