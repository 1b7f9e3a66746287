package tui

import "fmt"

// PromptContinue asks a yes/no question on the terminal, defaulting to
// yes. In non-interactive contexts the question cannot be asked and the
// default is returned; callers guarding anything riskier than a
// convenience step should check IsInteractive themselves first.
func PromptContinue(message string) bool {
	if !IsInteractive() {
		return true
	}

	fmt.Printf("%s [Y/n]: ", message)

	var response string
	fmt.Scanln(&response)

	return response == "" || response == "y" || response == "Y"
}
