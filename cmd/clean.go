package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/cardtray/internal/logger"
)

func newCleanCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove cardtray log files",
		Long: `Removes the cardtray log files from /tmp, including the update log.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(os.Stdin, cmd.OutOrStdout(), skipConfirm, logger.LogGlob)
		},
	}
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

// runClean takes the reader, writer and glob pattern as arguments for testing
func runClean(input io.Reader, out io.Writer, skipConfirm bool, pattern string) error {
	logs, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("error finding log files: %w", err)
	}

	if len(logs) == 0 {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	fmt.Fprintf(out, "Found %d log file(s):\n", len(logs))
	for _, l := range logs {
		fmt.Fprintf(out, "  - %s\n", l)
	}

	if !skipConfirm && !confirm(input, out, "Remove them?") {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	// Close our own handle first so the active log is removed cleanly
	logger.Close()
	removed, err := logger.ClearLogsMatching(pattern)
	if removed > 0 {
		fmt.Fprintf(out, "Removed %d log file(s).\n", removed)
	}
	if err != nil {
		return fmt.Errorf("error removing log files: %w", err)
	}
	return nil
}

// confirm prompts the user and returns true for "y" or "yes"
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
