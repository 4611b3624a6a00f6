package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var cacheServerURL string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the result cache",
}

// The cache lives in the serving process; clearing goes through its API.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the result cache of a running server",
	RunE: func(_ *cobra.Command, _ []string) error {
		req, err := http.NewRequest(http.MethodDelete, cacheServerURL+"/cache", nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to reach server: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("cache clear failed: %s", resp.Status)
		}
		fmt.Println("Cache cleared")
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().StringVar(&cacheServerURL, "server", "http://localhost:8080", "Base URL of the running profiler server")
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
