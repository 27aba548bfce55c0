package main

import (
	"fmt"

	"github.com/jonathan/resume-structurer/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the parser over REST.

Storage routes (/resumes) are enabled when DATABASE_URL or database_url in
the config file is set; without it they answer 503.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, then 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := appConfig.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(cmd.Context(), server.Config{
		Port:             port,
		DatabaseURL:      appConfig.DatabaseURL,
		MaxUploadBytes:   appConfig.MaxUploadBytes,
		BatchConcurrency: appConfig.BatchConcurrency,
		MaxBulletChars:   appConfig.MaxBulletChars,
		Clean:            appConfig.CleanInput,
		NormalizeSkills:  appConfig.NormalizeSkills,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
