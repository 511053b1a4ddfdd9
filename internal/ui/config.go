package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calgrid/internal/config"
	"github.com/javiermolinar/calgrid/internal/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  calgrid config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(config.DefaultConfigPath(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	p := prompter{r: reader, w: out}

	// Ask if user wants to edit
	if !p.yesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	v := &cfg.View
	v.WeekStart = p.value("Week start", v.WeekStart)
	v.DaysShown = p.number("Days in the day view (1-10)", v.DaysShown)
	v.WeeksShown = p.number("Weeks in the month view (1-6)", v.WeeksShown)
	v.DayStart = p.value("Day start", v.DayStart)
	v.DayEnd = p.value("Day end", v.DayEnd)
	v.MinutesPerRow = p.number("Minutes per row (5, 10, 15, 30, 60)", v.MinutesPerRow)
	v.MaxColumns = p.number("Max columns per day (0 for unbounded)", v.MaxColumns)
	v.MaxRowsPerCell = p.number("Max rows per month cell", v.MaxRowsPerCell)
	v.CompressWeekend = p.yesNoDefault("Compress the weekend", v.CompressWeekend)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = p.theme(cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	v := cfg.View
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[view]")
	fmt.Fprintf(w, "  week_start        = %s\n", v.WeekStart)
	fmt.Fprintf(w, "  days_shown        = %d\n", v.DaysShown)
	fmt.Fprintf(w, "  weeks_shown       = %d\n", v.WeeksShown)
	fmt.Fprintf(w, "  day_start         = %s\n", v.DayStart)
	fmt.Fprintf(w, "  day_end           = %s\n", v.DayEnd)
	fmt.Fprintf(w, "  minutes_per_row   = %d\n", v.MinutesPerRow)
	fmt.Fprintf(w, "  max_columns       = %d\n", v.MaxColumns)
	fmt.Fprintf(w, "  max_rows_per_cell = %d\n", v.MaxRowsPerCell)
	fmt.Fprintf(w, "  compress_weekend  = %t\n", v.CompressWeekend)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path           = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme             = %s\n", cfg.UI.Theme)
}

// prompter asks questions on w and reads answers from r.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func (p prompter) readLine() string {
	input, _ := p.r.ReadString('\n')
	return strings.TrimSpace(input)
}

func (p prompter) yesNo(question string) bool {
	fmt.Fprintf(p.w, "%s [y/N]: ", question)
	input := strings.ToLower(p.readLine())
	return input == "y" || input == "yes"
}

func (p prompter) yesNoDefault(label string, current bool) bool {
	hint := "y/N"
	if current {
		hint = "Y/n"
	}
	fmt.Fprintf(p.w, "  %s [%s]: ", label, hint)
	switch strings.ToLower(p.readLine()) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return current
	}
}

func (p prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.w, "  %s: ", label)
	} else {
		fmt.Fprintf(p.w, "  %s [%s]: ", label, current)
	}
	input := p.readLine()
	if input == "" {
		return current
	}
	return input
}

func (p prompter) number(label string, current int) int {
	for {
		value := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(p.w, "  Not a number: %q\n", value)
	}
}

func (p prompter) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(p.value(label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(p.w, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
