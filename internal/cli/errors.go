package cli

import (
	"fmt"
	"os"

	scaerrors "github.com/lsrd/snowcover/internal/errors"
)

// printError prints an error to stderr with appropriate formatting.
// If the error is an SCAError, it uses the user-friendly format.
// Otherwise, it prints a simple error message.
func printError(err error) {
	if scaErr := scaerrors.AsSCAError(err); scaErr != nil {
		fmt.Fprintln(os.Stderr, scaErr.UserMessage())
		if verbose {
			// In verbose mode, also print the error code and cause
			fmt.Fprintf(os.Stderr, "\nCode: %s\n", scaErr.Code)
			if scaErr.Cause != nil {
				fmt.Fprintf(os.Stderr, "Cause: %v\n", scaErr.Cause)
			}
		}
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
