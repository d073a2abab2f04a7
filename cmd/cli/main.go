package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finances-cli",
		Short: "My Finances CLI tool",
		Long:  `A command line interface for interacting with the My Finances API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the My Finances API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(ledgerCmd(), backupCmd(), statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reconcile",
		Short: "Verify every payment method balance against its transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return reconcile()
		},
	})

	return cmd
}

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Backup operations",
	}

	var outFile string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full ledger to a backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportBackup(outFile)
		},
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "finances-backup.json", "Output file")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the ledger with the contents of a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importBackup(args[0])
		},
	}

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Statistics operations",
	}

	var year, month int
	monthlyCmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show income, expense and balance for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchJSON(fmt.Sprintf("/api/v1/stats/monthly?year=%d&month=%d", year, month))
		},
	}
	now := time.Now()
	monthlyCmd.Flags().IntVar(&year, "year", now.Year(), "Year")
	monthlyCmd.Flags().IntVar(&month, "month", int(now.Month()), "Month (1-12)")

	var yearlyYear int
	yearlyCmd := &cobra.Command{
		Use:   "yearly",
		Short: "Show twelve month buckets for one year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchJSON(fmt.Sprintf("/api/v1/stats/yearly?year=%d", yearlyYear))
		},
	}
	yearlyCmd.Flags().IntVar(&yearlyYear, "year", now.Year(), "Year")

	cmd.AddCommand(monthlyCmd, yearlyCmd)
	return cmd
}

func reconcile() error {
	body, err := get("/api/v1/ledger/reconciliation")
	if err != nil {
		return err
	}

	var report struct {
		Discrepancies int `json:"discrepancies"`
		Methods       []struct {
			Name       string `json:"name"`
			IsCard     bool   `json:"is_card"`
			Difference string `json:"difference"`
			Consistent bool   `json:"consistent"`
		} `json:"methods"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	for _, m := range report.Methods {
		status := "OK"
		if !m.Consistent {
			status = fmt.Sprintf("DRIFT %s", m.Difference)
		}
		fmt.Printf("%-10s %-30s %s\n", methodLabel(m.IsCard), m.Name, status)
	}

	if report.Discrepancies > 0 {
		return fmt.Errorf("%d payment method(s) out of balance", report.Discrepancies)
	}

	fmt.Println("ledger consistent")
	return nil
}

func methodLabel(isCard bool) string {
	if isCard {
		return "card"
	}
	return "account"
}

func exportBackup(outFile string) error {
	body, err := get("/api/v1/backup/export")
	if err != nil {
		return err
	}

	if err := os.WriteFile(outFile, body, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	fmt.Printf("backup written to %s\n", outFile)
	return nil
}

func importBackup(file string) error {
	payload, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/backup/import", "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("import failed (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Transactions int `json:"transactions"`
		BankAccounts int `json:"bank_accounts"`
		CreditCards  int `json:"credit_cards"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("restored %d transactions, %d accounts, %d cards\n",
		result.Transactions, result.BankAccounts, result.CreditCards)
	return nil
}

func fetchJSON(path string) error {
	body, err := get(path)
	if err != nil {
		return err
	}

	printJSON(json.RawMessage(body))
	return nil
}

func get(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
