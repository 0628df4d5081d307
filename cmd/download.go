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
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allergiapp/langpack/internal"
	"github.com/allergiapp/langpack/internal/catalog"
	"github.com/allergiapp/langpack/internal/download"
	"github.com/allergiapp/langpack/internal/notify"
	"github.com/allergiapp/langpack/internal/store"
	"github.com/allergiapp/langpack/internal/telemetry"
)

var (
	downloadService     string
	downloadEmail       string
	downloadCredentials string
	downloadDelayMS     int
	downloadNoAnalytics bool
)

var downloadCmd = &cobra.Command{
	Use:   "download <lang>",
	Short: "Download a language pack",
	Long: `Translate the full allergen catalog and card texts into the target
language and store the result as a language pack.

Available services:
  - mymemory  MyMemory (free, no credentials required)
  - google    Google Cloud Translation (requires credentials)

The download runs one request at a time with a pause between requests to
respect the provider's rate limits. Press Ctrl-C to cancel.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]

		db, err := store.New(viper.GetString("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		svc, err := buildService(downloadService, downloadEmail, downloadCredentials)
		if err != nil {
			return err
		}

		var sink telemetry.Sink = telemetry.NopSink{}
		if !downloadNoAnalytics {
			sink = telemetry.NewStoreSink(db)
		}

		session := download.NewSession(download.SessionConfig{
			Service:  svc,
			Catalog:  catalog.Default(),
			Delay:    time.Duration(downloadDelayMS) * time.Millisecond,
			Sink:     sink,
			Consent:  telemetry.Consent{Granted: !downloadNoAnalytics},
			Notifier: notify.Stderr{},
			OnProgress: func(p internal.DownloadProgress) {
				fmt.Fprintf(os.Stderr, "\r%-13s %3d/%-3d %3d%%", p.Phase, p.Current, p.Total, p.Percentage)
			},
		})
		defer session.Close()

		// Ctrl-C cancels at the next checkpoint instead of killing the
		// process mid-write.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			session.Cancel()
		}()

		session.Start(context.Background(), code, func(code string, data *internal.DownloadedLanguageData) error {
			return db.Set(context.Background(), code, data)
		})
		fmt.Fprintln(os.Stderr)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&downloadService, "service", "mymemory", "Translation service (mymemory, google)")
	downloadCmd.Flags().StringVar(&downloadEmail, "mymemory-email", "", "MyMemory email (for higher limits)")
	downloadCmd.Flags().StringVar(&downloadCredentials, "credentials", "", "Path to Google Cloud credentials")
	downloadCmd.Flags().IntVar(&downloadDelayMS, "delay-ms", 300, "Pause between translation requests in milliseconds")
	downloadCmd.Flags().BoolVar(&downloadNoAnalytics, "no-analytics", false, "Do not record download telemetry")
}
