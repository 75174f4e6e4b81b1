package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	userID  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "transfermatch-cli",
		Short: "TransferMatch CLI tool",
		Long:  `A command line interface for interacting with the TransferMatch API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the TransferMatch API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID to operate on")

	rootCmd.AddCommand(suggestCmd())
	rootCmd.AddCommand(decideCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(accountsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func suggestCmd() *cobra.Command {
	var from, to string
	var raw bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Generate transfer suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if from != "" {
				query.Set("from", from)
			}
			if to != "" {
				query.Set("to", to)
			}

			body, err := doGet("/suggestions", query)
			if err != nil {
				return err
			}

			if raw {
				var result map[string]any
				if err := json.Unmarshal(body, &result); err != nil {
					return fmt.Errorf("failed to parse response: %w", err)
				}
				printJSON(result)
				return nil
			}

			var set suggestionSet
			if err := json.Unmarshal(body, &set); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printSuggestions(&set)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&raw, "json", false, "Print the raw JSON response")

	return cmd
}

func decideCmd() *cobra.Command {
	var outgoing, incoming, pairID string
	var override bool

	cmd := &cobra.Command{
		Use:       "decide [pair|ignore|manual|unpair]",
		Short:     "Apply a pairing decision",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"pair", "ignore", "manual", "unpair"},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"kind":        args[0],
				"outgoing_id": outgoing,
			}
			if incoming != "" {
				req["incoming_id"] = incoming
			}
			if pairID != "" {
				req["pair_id"] = pairID
			}
			if override {
				req["override"] = true
			}

			body, err := doPost("/decisions", req)
			if err != nil {
				return err
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&outgoing, "outgoing", "", "Outgoing transaction ID")
	cmd.Flags().StringVar(&incoming, "incoming", "", "Incoming transaction ID")
	cmd.Flags().StringVar(&pairID, "pair-id", "", "Pair ID (manual decisions)")
	cmd.Flags().BoolVar(&override, "override", false, "Re-pair already resolved transactions")

	return cmd
}

func importCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import ledger transactions from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			var req map[string]any
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("failed to parse %s: %w", file, err)
			}

			body, err := doPost("/transactions", req)
			if err != nil {
				return err
			}

			var result []map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Printf("Imported %d transactions\n", len(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON file with a transactions array")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doGet("/accounts", nil)
			if err != nil {
				return err
			}

			var result []map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(result)
			return nil
		},
	})

	var name, institution, accountType string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doPost("/accounts", map[string]any{
				"name":        name,
				"institution": institution,
				"type":        accountType,
			})
			if err != nil {
				return err
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(result)
			return nil
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Account name")
	createCmd.Flags().StringVar(&institution, "institution", "", "Institution name")
	createCmd.Flags().StringVar(&accountType, "type", "", "Account type (checking, savings, ...)")
	_ = createCmd.MarkFlagRequired("name")
	cmd.AddCommand(createCmd)

	return cmd
}

type suggestionTxn struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type suggestionItem struct {
	Outgoing   *suggestionTxn `json:"outgoing"`
	Incoming   *suggestionTxn `json:"incoming"`
	Score      float64        `json:"score"`
	MatchType  string         `json:"match_type"`
	Confidence string         `json:"confidence"`
}

type suggestionSet struct {
	Accepted []*suggestionItem `json:"accepted"`
	Rejected []*suggestionItem `json:"rejected"`
}

func printSuggestions(set *suggestionSet) {
	fmt.Printf("Accepted: %d  Rejected: %d\n", len(set.Accepted), len(set.Rejected))

	for _, item := range set.Accepted {
		fmt.Printf("  %s -> %s  %s  score=%.1f  %s/%s\n",
			item.Outgoing.ID, item.Incoming.ID,
			truncate(item.Outgoing.Description, 30),
			item.Score, item.MatchType, item.Confidence)
	}
}

func userPath(path string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("--user is required")
	}

	return baseURL + "/api/v1/users/" + url.PathEscape(userID) + path, nil
}

func doGet(path string, query url.Values) ([]byte, error) {
	target, err := userPath(path)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(target)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return readResponse(resp)
}

func doPost(path string, payload any) ([]byte, error) {
	target, err := userPath(path)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(target, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return readResponse(resp)
}

func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}

	return s[:max-3] + "..."
}
