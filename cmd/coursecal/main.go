package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coursecal/internal/app"
	"coursecal/internal/config"
	"coursecal/internal/model"
	"coursecal/internal/schedule"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "AddCourse", "Export").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "coursecal",
	Short: "Personal course scheduling tool",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Catalog:  %s\n", cfg.Catalog.Path)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:  %s\n", cfg.LogDir)
		fmt.Printf("Origin:   %s\n", cfg.Origin)
		fmt.Printf("Catalog:  %s (%s)\n", cfg.Catalog.Path, cfg.Catalog.Type)
		fmt.Printf("Store:    %s (%s)\n", cfg.Store.Path, cfg.Store.Type)
		return nil
	},
}

// cal command
var calCmd = &cobra.Command{
	Use:   "cal",
	Short: "Manage calendars",
}

var calListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calendars",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListCalendars")
		if err != nil {
			return err
		}
		defer a.Close()

		activeID := a.Service().ActiveID()
		for _, c := range a.Service().Calendars() {
			marker := " "
			if c.ID == activeID {
				marker = "*"
			}
			fmt.Printf("%s %-36s  %-12s  %-12s  %d course(s)\n",
				marker, c.ID, c.Term, c.Name, len(c.Courses))
		}
		return nil
	},
}

var calCreateCmd = &cobra.Command{
	Use:   "create [NAME]",
	Short: "Create a calendar and make it active",
	RunE: func(cmd *cobra.Command, args []string) error {
		termFlag, _ := cmd.Flags().GetString("term")

		a, err := newApp("CreateCalendar")
		if err != nil {
			return err
		}
		defer a.Close()

		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		cal, err := a.Service().CreateCalendar(name, model.Term(termFlag))
		if err != nil {
			return err
		}
		fmt.Printf("Created %q (%s)\n", cal.Name, cal.Term)
		return nil
	},
}

var calDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a calendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteCalendar")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteCalendar(args[0]); err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil
	},
}

var calRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a calendar",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RenameCalendar")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Service().RenameCalendar(args[0], args[1])
	},
}

var calDuplicateCmd = &cobra.Command{
	Use:   "duplicate ID",
	Short: "Duplicate a calendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DuplicateCalendar")
		if err != nil {
			return err
		}
		defer a.Close()

		cal, err := a.Service().DuplicateCalendar(args[0])
		if err != nil {
			return err
		}
		if cal == nil {
			fmt.Println("No such calendar.")
			return nil
		}
		fmt.Printf("Created %q (%s)\n", cal.Name, cal.Term)
		return nil
	},
}

var calSwitchCmd = &cobra.Command{
	Use:   "switch ID",
	Short: "Switch the active calendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SwitchCalendar")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Service().SwitchCalendar(args[0])
	},
}

// term command
var termCmd = &cobra.Command{
	Use:   "term [TERM]",
	Short: "Show or switch the current term",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ChangeTerm")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 0 {
			fmt.Println(a.Service().CurrentTerm())
			return nil
		}

		cal, err := a.Service().ChangeTerm(model.Term(args[0]))
		if err != nil {
			return err
		}
		fmt.Printf("Now on %s, calendar %q\n", a.Service().CurrentTerm(), cal.Name)
		return nil
	},
}

// course commands
var addCourseCmd = &cobra.Command{
	Use:   "add COURSE_ID",
	Short: "Add a course to the active calendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, _ := cmd.Flags().GetString("section")

		a, err := newApp("AddCourse")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().AddCourse(args[0], section); err != nil {
			return err
		}
		fmt.Printf("Added %s\n", args[0])
		return nil
	},
}

var removeCourseCmd = &cobra.Command{
	Use:   "remove COURSE_ID",
	Short: "Remove a course from the active calendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveCourse")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Service().RemoveCourse(args[0])
	},
}

var sectionCmd = &cobra.Command{
	Use:   "section COURSE_ID SECTION",
	Short: "Choose a section for a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetSection")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Service().SetSection(args[0], args[1])
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide COURSE_ID",
	Short: "Toggle a course's visibility",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ToggleHidden")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Service().ToggleHidden(args[0])
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all courses from the active calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ClearCourses")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Service().ClearCourses()
	},
}

// courses command (catalog browsing)
var coursesCmd = &cobra.Command{
	Use:   "courses [QUERY]",
	Short: "Search the catalog for the current term",
	RunE: func(cmd *cobra.Command, args []string) error {
		fitsOnly, _ := cmd.Flags().GetBool("fits")

		a, err := newApp("FilterCourses")
		if err != nil {
			return err
		}
		defer a.Close()

		query := strings.Join(args, " ")
		courses, err := a.Service().FilterCourses(query, fitsOnly)
		if err != nil {
			return err
		}

		if len(courses) == 0 {
			fmt.Println("No matching courses.")
			return nil
		}

		palette := a.Service().Palette()
		for _, c := range courses {
			fmt.Printf("%-10s  %-8s  %s\n", c.ID, palette.ColorFor(c.ID), c.DisplayName())
		}
		return nil
	},
}

// status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Status")
		if err != nil {
			return err
		}
		defer a.Close()

		svc := a.Service()
		cal, err := svc.Active()
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", cal.Name, cal.Term)
		for _, sel := range cal.Courses {
			indicator := " "
			if cal.IsHidden(sel.CourseID) {
				indicator = "H"
			}
			section := sel.Section
			if section == "" {
				section = "(default)"
			}
			fmt.Printf("%s %-10s  %s\n", indicator, sel.CourseID, section)
		}

		hours, err := svc.TotalHours()
		if err != nil {
			return err
		}
		units, err := svc.TotalUnits()
		if err != nil {
			return err
		}
		fmt.Printf("\n%.1f hours/week, %.0f units\n", hours, units)
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export [DIR]",
	Short: "Export the active calendar as an .ics file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Export")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Service().ExportActive()
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Println("Nothing to export.")
			return nil
		}

		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		path := filepath.Join(dir, result.Filename)
		if err := os.WriteFile(path, []byte(result.ICS), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

// share command
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print a share link for the active calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Share")
		if err != nil {
			return err
		}
		defer a.Close()

		link, ok, err := a.Service().ShareLink()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Nothing to share: the calendar has no courses.")
			return nil
		}
		fmt.Println(link)
		return nil
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import LINK_OR_TOKEN",
	Short: "Import a shared calendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assumeYes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp("Import")
		if err != nil {
			return err
		}
		defer a.Close()

		outcome, err := a.Import(args[0], assumeYes)
		if err != nil {
			return err
		}

		switch outcome.Status {
		case schedule.ImportSucceeded:
			fmt.Printf("Imported %q (%s), %d course(s)\n",
				outcome.Calendar.Name, outcome.Calendar.Term, len(outcome.Calendar.Courses))
			if len(outcome.Missing) > 0 {
				fmt.Printf("Not in the local catalog: %s\n", strings.Join(outcome.Missing, ", "))
			}
		case schedule.ImportDuplicate:
			fmt.Printf("Already imported as %q. Use 'coursecal cal switch %s' to open it.\n",
				outcome.Calendar.Name, outcome.Calendar.ID)
		case schedule.ImportInvalid:
			fmt.Println("That link is not a valid schedule.")
		case schedule.ImportNoValidCourses:
			fmt.Println("None of the shared courses exist in the local catalog.")
		case schedule.ImportTermMismatch:
			fmt.Println("Import cancelled.")
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// cal subcommands
	calCmd.AddCommand(calListCmd)
	calCmd.AddCommand(calCreateCmd)
	calCreateCmd.Flags().String("term", "", "Term for the new calendar (defaults to the current term)")
	calCmd.AddCommand(calDeleteCmd)
	calCmd.AddCommand(calRenameCmd)
	calCmd.AddCommand(calDuplicateCmd)
	calCmd.AddCommand(calSwitchCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(calCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(addCourseCmd)
	addCourseCmd.Flags().StringP("section", "s", "", "Section label to select")
	rootCmd.AddCommand(removeCourseCmd)
	rootCmd.AddCommand(sectionCmd)
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(coursesCmd)
	coursesCmd.Flags().Bool("fits", false, "Only show courses that fit the current schedule")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolP("yes", "y", false, "Switch terms without asking when the schedule is for another term")
}
