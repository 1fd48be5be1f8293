package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/splitstuff/splitstuff/internal/cli"
	"github.com/splitstuff/splitstuff/internal/upi"
)

var flagQRDir string

var settleCmd = &cobra.Command{
	Use:   "settle <file.json>",
	Short: "Print balances and a settle-up plan for a JSON ledger",
	Long: `Reads {"members": [...], "expenses": [...], "settlements": [...]} and prints
every member's balance and the fewest transfers that settle the group.
With --qr-dir, a UPI QR code is written for each transfer to a payee with a UPI ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettle,
}

func init() {
	settleCmd.Flags().StringVar(&flagQRDir, "qr-dir", "", "Write UPI QR codes (JPEG) into this directory")
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func runSettle(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	in, err := cli.ReadInput(f)
	if err != nil {
		return err
	}
	plan, err := cli.Compute(in)
	if err != nil {
		return err
	}

	links := cli.PayLinks(plan)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderBalances(plan))
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTransfers(plan, links))

	if flagQRDir == "" || len(links) == 0 {
		return nil
	}
	if err := os.MkdirAll(flagQRDir, 0o755); err != nil {
		return fmt.Errorf("failed to create QR directory: %w", err)
	}
	for i, tr := range plan.Transfers {
		link, ok := links[i]
		if !ok {
			continue
		}
		name := fmt.Sprintf("%02d_%s_to_%s.jpg", i+1,
			unsafeFileChars.ReplaceAllString(tr.From, "_"),
			unsafeFileChars.ReplaceAllString(tr.To, "_"))
		path := filepath.Join(flagQRDir, name)
		if err := upi.QRCode(link, path); err != nil {
			return err
		}
		fmt.Fprintf(out, "QR code: %s\n", path)
	}
	return nil
}
