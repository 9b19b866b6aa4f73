package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/tui"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ultralabel/cli/internal/errsystem"
	"github.com/ultralabel/cli/internal/tasks"
	"github.com/ultralabel/cli/internal/util"
)

// tasksFilename resolves the task definitions file from the flag or config.
func tasksFilename(cmd *cobra.Command) string {
	filename, _ := cmd.Flags().GetString("tasks")
	if filename == "" {
		filename = viper.GetString("tasks_file")
	}
	if filename == "" {
		filename = "tasks.yaml"
	}
	viper.Set("tasks_file", filename)
	return filename
}

// templateLoader builds the template loader from the --templates-dir flag,
// defaulting to the directory of the tasks file.
func templateLoader(cmd *cobra.Command) tasks.Loader {
	dir, _ := cmd.Flags().GetString("templates-dir")
	if dir == "" {
		dir = filepath.Dir(tasksFilename(cmd))
	}
	return tasks.DirLoader(dir)
}

func loadDefinitions(cmd *cobra.Command) *tasks.DefinitionsFile {
	filename := tasksFilename(cmd)
	defs, err := tasks.LoadDefinitionsFile(filename)
	if err != nil {
		errsystem.New(errsystem.ErrLoadTaskDefinitions, err,
			errsystem.WithUserMessage("Unable to load task definitions from %s", filename)).ShowErrorAndExit()
	}
	return defs
}

// resolveTask loads the named task from the definitions file, exiting with a
// friendly error when it is missing or malformed.
func resolveTask(cmd *cobra.Command, name string) tasks.Task {
	defs := loadDefinitions(cmd)
	def, found := defs.Find(name)
	if !found {
		errsystem.New(errsystem.ErrTaskNotFound, fmt.Errorf("no task named %q", name),
			errsystem.WithTaskName(name),
			errsystem.WithUserMessage("No task named %q in %s. Run `ultralabel task list` to see the available tasks.", name, tasksFilename(cmd))).ShowErrorAndExit()
	}
	task, err := tasks.Resolve(def, tasks.WithLoader(templateLoader(cmd)))
	if err != nil {
		errsystem.New(errsystem.ErrInvalidConfiguration, err,
			errsystem.WithTaskName(name)).ShowErrorAndExit()
	}
	return task
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage task definitions",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tasks in the definitions file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		defs := loadDefinitions(cmd)
		if len(defs.Tasks) == 0 {
			tui.ShowWarning("no tasks found in %s", tasksFilename(cmd))
			return
		}
		headers := []string{tui.Title("Name"), tui.Title("Description"), tui.Title("Inputs"), tui.Title("Outputs")}
		rows := [][]string{}
		for _, def := range defs.Tasks {
			rows = append(rows, []string{
				tui.Bold(def.Name),
				tui.Text(tui.MaxWidth(def.Description, 40)),
				tui.Muted(strings.Join(def.Inputs, ", ")),
				tui.Muted(strings.Join(def.Outputs, ", ")),
			})
		}
		tui.Table(headers, rows)
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one task definition",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defs := loadDefinitions(cmd)
		def, found := defs.Find(args[0])
		if !found {
			errsystem.New(errsystem.ErrTaskNotFound, fmt.Errorf("no task named %q", args[0]),
				errsystem.WithTaskName(args[0])).ShowErrorAndExit()
		}
		buf, err := yaml.Marshal(def)
		if err != nil {
			errsystem.New(errsystem.ErrInvalidConfiguration, err).ShowErrorAndExit()
		}
		fmt.Println(string(buf))
	},
}

var taskNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new task definition",
	Long: `Create a new task definition.

Walks through the task's name, system prompt and columns, then appends the
definition to the tasks file and scaffolds a starter template next to it.

Examples:
  ultralabel task new
  ultralabel task new --tasks labeling/tasks.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		log := env.NewLogger(cmd)
		if !tui.HasTTY {
			log.Fatal("task new requires an interactive terminal")
		}
		filename := tasksFilename(cmd)
		defs := readOrCreateDefinitions(filename)

		var name, description, system, inputs, outputs string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("What should we name this task?").
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("the name is required")
						}
						if _, exists := defs.Find(strings.TrimSpace(s)); exists {
							return fmt.Errorf("a task named %q already exists", strings.TrimSpace(s))
						}
						return nil
					}).
					Value(&name),
				huh.NewInput().
					Title("How should we describe what this task does?").
					Value(&description),
				huh.NewText().
					Title("Enter the SYSTEM prompt for this task").
					Value(&system),
				huh.NewInput().
					Title("Which dataset columns does the task read? (comma separated)").
					Value(&inputs),
				huh.NewInput().
					Title("Which fields does the task produce? (comma separated)").
					Value(&outputs),
			),
		)
		if err := form.Run(); err != nil {
			log.Fatal("%s", err)
		}

		def := tasks.Definition{
			Name:        strings.TrimSpace(name),
			Description: strings.TrimSpace(description),
			System:      strings.TrimSpace(system),
			Template:    util.SafeFilename(strings.TrimSpace(name)) + ".tmpl",
			Inputs:      splitNames(inputs),
			Outputs:     splitNames(outputs),
			Parser:      &tasks.ParserSpec{Format: "json"},
		}
		if err := def.Validate(); err != nil {
			errsystem.New(errsystem.ErrInvalidConfiguration, err).ShowErrorAndExit()
		}
		defs.Tasks = append(defs.Tasks, def)
		if err := writeDefinitions(filename, defs); err != nil {
			errsystem.New(errsystem.ErrWriteOutput, err,
				errsystem.WithUserMessage("Unable to write %s", filename)).ShowErrorAndExit()
		}
		if err := scaffoldTemplate(filepath.Join(filepath.Dir(filename), def.Template)); err != nil {
			errsystem.New(errsystem.ErrWriteOutput, err,
				errsystem.WithUserMessage("Unable to write the starter template %s", def.Template)).ShowErrorAndExit()
		}
		tui.ShowSuccess("Task %q created in %s", def.Name, filename)
		tui.ShowBanner("Next steps", fmt.Sprintf("Edit %s to shape the prompt, then run:\n\n  ultralabel validate --task %s <dataset>", def.Template, def.Name), false)
	},
}

func readOrCreateDefinitions(filename string) *tasks.DefinitionsFile {
	if !util.Exists(filename) {
		return &tasks.DefinitionsFile{}
	}
	defs, err := tasks.LoadDefinitionsFile(filename)
	if err != nil {
		errsystem.New(errsystem.ErrLoadTaskDefinitions, err).ShowErrorAndExit()
	}
	return defs
}

func writeDefinitions(filename string, defs *tasks.DefinitionsFile) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	buf, err := yaml.Marshal(defs)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, buf, 0644)
}

// scaffoldTemplate copies the embedded starter template so the user has
// something concrete to edit.
func scaffoldTemplate(filename string) error {
	if util.Exists(filename) {
		return nil
	}
	buf, err := tasks.Embedded().Load("starter.tmpl")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, buf, 0644)
}

func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskNewCmd)
}
