package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bariqpay/bariq-cli/client"
	"github.com/bariqpay/bariq-cli/pkg/clierr"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}

// terminalNavigator is the CLI's stand-in for browser navigation: when
// the dispatcher tears a session down, it tells the user where to log
// back in.
type terminalNavigator struct{}

func (terminalNavigator) Navigate(path string) {
	fmt.Fprintf(os.Stderr, "Session expired. Please log in again: bariq login (%s)\n", path)
}

// ensureSuccess converts a failed call into a structured CLI error.
// Domain rejections pass the backend's message through verbatim.
func ensureSuccess(res *client.Result, err error) error {
	if err != nil {
		return clierr.New(clierr.Internal, "request failed: "+err.Error(), err)
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = fmt.Sprintf("request rejected with status %d", res.Status)
		}
		t := clierr.Internal
		switch res.Status {
		case 400, 422:
			t = clierr.Validation
		case 401, 403:
			t = clierr.Auth
		case 404:
			t = clierr.NotFound
		}
		return clierr.New(t, msg, nil)
	}
	return nil
}

// output checks the result and pretty-prints its data payload.
func output(cmd *cobra.Command, res *client.Result, err error) error {
	if e := ensureSuccess(res, err); e != nil {
		return e
	}
	printJSON(cmd, res.Data)
	return nil
}

// printJSON writes raw JSON with indentation, or nothing for an empty payload.
func printJSON(cmd *cobra.Command, raw json.RawMessage) {
	if len(raw) == 0 {
		cmd.Println("OK")
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		cmd.Println(string(raw))
		return
	}
	cmd.Println(buf.String())
}

// outputList renders a list payload as a table of the chosen columns,
// or as raw JSON when --json is set or the shape is unexpected.
func outputList(cmd *cobra.Command, res *client.Result, err error, key string, columns []string) error {
	if e := ensureSuccess(res, err); e != nil {
		return e
	}
	if js, _ := cmd.Flags().GetBool("json"); js {
		printJSON(cmd, res.Data)
		return nil
	}

	var wrapper map[string]json.RawMessage
	if uerr := json.Unmarshal(res.Data, &wrapper); uerr != nil {
		printJSON(cmd, res.Data)
		return nil
	}
	var rows []map[string]any
	if uerr := json.Unmarshal(wrapper[key], &rows); uerr != nil {
		printJSON(cmd, res.Data)
		return nil
	}
	if len(rows) == 0 {
		cmd.Println("No results.")
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader(columns)
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatCell(row[col])
		}
		table.Append(cells)
	}
	table.Render()

	if res.Meta != nil && res.Meta.Total > 0 {
		cmd.Printf("Page %d (total %d)\n", res.Meta.Page, res.Meta.Total)
	}
	return nil
}

// formatCell renders one table cell from a decoded JSON value.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if len(val) > 40 {
			return val[:37] + "..."
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprintf("%v", val)
	}
}
