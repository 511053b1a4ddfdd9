// Package input parses the viewer's command prompt.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// Commands lists the prompt commands the viewer understands.
var Commands = []PromptCommand{
	{Name: "/day", Description: "Show the day view"},
	{Name: "/week", Description: "Show the week view"},
	{Name: "/month", Description: "Show the month view"},
	{Name: "/today", Description: "Jump to today"},
	{Name: "/goto", Description: "Jump to a date (YYYY-MM-DD, tomorrow, friday...)"},
	{Name: "/days", Description: "Set the number of days in the day view"},
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// ParsePrompt splits a submitted prompt into a lower-cased command and its
// argument. Input without a leading slash is taken as a /goto argument.
func ParsePrompt(input string) (cmd, arg string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ""
	}
	if !strings.HasPrefix(input, "/") {
		return "/goto", input
	}
	cmd, arg, _ = strings.Cut(input, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}
