package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tribunal/internal/callback"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/security"
)

var (
	callbackEvent     string
	callbackFile      string
	callbackPageID    string
	callbackIgnore    bool
	callbackAutomated bool
)

var callbackCmd = &cobra.Command{
	Use:   "callback <phase>",
	Short: "Run one callback phase against a case snapshot",
	Long: `Callback reads case details as JSON from --file (or stdin with "-")
and runs the given phase locally, printing the platform response.

Phases: about-to-start, mid-event, about-to-submit, submitted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}

		phase, err := callback.ParsePhase(args[0])
		if err != nil {
			return err
		}

		details, err := readCaseDetails(cmd.InOrStdin(), callbackFile)
		if err != nil {
			return err
		}

		resp, err := a.Dispatcher.Dispatch(cmd.Context(), callback.Callback{
			Phase:          phase,
			Event:          callback.EventType(callbackEvent),
			CaseDetails:    details,
			PageID:         callbackPageID,
			IgnoreWarnings: callbackIgnore,
			Automated:      callbackAutomated,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		if resp.Blocking() {
			return fmt.Errorf("callback blocked: %d errors, %d warnings", len(resp.Errors), len(resp.Warnings))
		}
		return nil
	},
}

func readCaseDetails(stdin io.Reader, path string) (caserecord.CaseDetails, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := security.SafeOpen(path)
		if err != nil {
			return caserecord.CaseDetails{}, fmt.Errorf("open case file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var details caserecord.CaseDetails
	if err := json.NewDecoder(r).Decode(&details); err != nil {
		return caserecord.CaseDetails{}, fmt.Errorf("decode case details: %w", err)
	}
	return details, nil
}

func init() {
	callbackCmd.Flags().StringVar(&callbackEvent, "event", string(callback.EventAdjournCase), "platform event id")
	callbackCmd.Flags().StringVarP(&callbackFile, "file", "f", "-", "case details JSON file, - for stdin")
	callbackCmd.Flags().StringVar(&callbackPageID, "page", "", "page id for mid-event callbacks")
	callbackCmd.Flags().BoolVar(&callbackIgnore, "ignore-warnings", false, "acknowledge warnings")
	callbackCmd.Flags().BoolVar(&callbackAutomated, "automated", false, "mark the callback as an automated flow")
	rootCmd.AddCommand(callbackCmd)
}
