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
		Use:   "gocaja-cli",
		Short: "GoCaja CLI tool",
		Long:  `A command line interface for interacting with the GoCaja API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoCaja API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Movement commands
	movementsCmd := &cobra.Command{
		Use:   "movements",
		Short: "Movement feed operations",
	}

	var dateFrom, dateTo, bankAccountID string
	listMovementsCmd := &cobra.Command{
		Use:   "list",
		Short: "List the merged movement feed for a date window",
		Run: func(cmd *cobra.Command, args []string) {
			listMovements(dateFrom, dateTo, bankAccountID)
		},
	}
	listMovementsCmd.Flags().StringVar(&dateFrom, "from", "", "Start date (YYYY-MM-DD)")
	listMovementsCmd.Flags().StringVar(&dateTo, "to", "", "End date (YYYY-MM-DD)")
	listMovementsCmd.Flags().StringVar(&bankAccountID, "bank-account", "", "Filter by bank account ID")

	movementsCmd.AddCommand(listMovementsCmd)
	rootCmd.AddCommand(movementsCmd)

	// Closing commands
	closingCmd := &cobra.Command{
		Use:   "closing",
		Short: "Daily closing operations",
	}

	statusCmd := &cobra.Command{
		Use:   "status [date]",
		Short: "Show the closing snapshot for a day",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			closingStatus(args[0])
		},
	}

	var closedBy string
	closeCmd := &cobra.Command{
		Use:   "close [date]",
		Short: "Seal the closing for a day",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			closeDay(args[0], closedBy)
		},
	}
	closeCmd.Flags().StringVar(&closedBy, "by", "", "Who is sealing the day")
	closeCmd.MarkFlagRequired("by")

	closingCmd.AddCommand(statusCmd, closeCmd)
	rootCmd.AddCommand(closingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listMovements(from, to, bankAccountID string) {
	url := baseURL + "/api/v1/movements"
	sep := "?"
	if from != "" {
		url += sep + "date_from=" + from
		sep = "&"
	}
	if to != "" {
		url += sep + "date_to=" + to
		sep = "&"
	}
	if bankAccountID != "" {
		url += sep + "bank_account_id=" + bankAccountID
	}

	result := getJSON(url)

	if movements, ok := result["movements"].([]any); ok {
		fmt.Printf("Movements: %d\n", len(movements))
		for _, m := range movements {
			entry, ok := m.(map[string]any)
			if !ok {
				continue
			}
			fmt.Printf("  %s  %-7s  %-8s  %s\n", entry["date"], entry["kind"], entry["method"], entry["amount"])
		}
	}
	if totals, ok := result["totals"].(map[string]any); ok {
		fmt.Printf("Income  cash=%s bank=%s\n", totals["income_cash"], totals["income_bank"])
		fmt.Printf("Expense cash=%s bank=%s\n", totals["expense_cash"], totals["expense_bank"])
	}
	fmt.Printf("Net: %s\n", result["net"])
}

func closingStatus(date string) {
	result := getJSON(baseURL + "/api/v1/closings/" + date)

	fmt.Printf("Date:    %s\n", result["date"])
	fmt.Printf("Status:  %s\n", result["status"])
	fmt.Printf("Balance: %s\n", result["closing_balance"])
	if closedBy, ok := result["closed_by"].(string); ok {
		fmt.Printf("Closed by %s at %s\n", closedBy, result["closed_at"])
	}
}

func closeDay(date, closedBy string) {
	payload, _ := json.Marshal(map[string]string{"closed_by": closedBy})

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/closings/"+date+"/close", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Close FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Day %s sealed\n", date)
	fmt.Printf("Closing balance: %s\n", result["closing_balance"])
}

func getJSON(url string) map[string]any {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}
