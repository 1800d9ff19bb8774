package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"taskmaster/internal/config"
	"taskmaster/internal/domain"
	"taskmaster/internal/errors"
	"taskmaster/internal/store"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	config  *config.Config
	factory AppFactory
	out     io.Writer
	errOut  io.Writer

	app     *App
	cleanup func()
}

// NewRootCommand creates the root cobra command with global flags. The App
// is built by factory after flags have been applied to cfg.
func NewRootCommand(cfg *config.Config, factory AppFactory, out, errOut io.Writer) *RootCommand {
	root := &RootCommand{
		config:  cfg,
		factory: factory,
		out:     out,
		errOut:  errOut,
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A command-line personal task manager",
		Long: `Taskmaster (tm) keeps your todos on a task server and edits them from the terminal.

Changes are applied locally first and then sent to the server. If the server
rejects a change, tm reloads everything from the server.

EXAMPLES:
  tm login me@example.com "Jane Doe"       # Start a session
  tm add "Write report" --priority high --due 2024-06-01
  tm list --filter pending --sort dueDate  # Pending todos, earliest due first
  tm list --group                          # Grouped by category
  tm status 3f2a completed                 # Ids may be shortened to a unique prefix
  tm subtask add 3f2a "Outline"
  tm category add Work --color "bg-blue-100 text-blue-800"
  tm categorize 3f2a Work
  tm clear-completed

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file: $TM_CONFIG or ~/.config/taskmaster/config.toml

  TM_REMOTE_URL                            Task server origin (default: http://localhost:8080)
  TM_REMOTE_TIMEOUT                        Request timeout (default: 10s)
  TM_CONFIG_DIR                            Session directory (default: ~/.config/taskmaster)
  TM_TIME_DISPLAY_FORMAT                   Due date format (default: 2006-01-02 15:04)
  TM_DEFAULT_CATEGORY_COLOR                Color for new categories
  TM_LIST_DEFAULT_FORMAT                   table, json or yaml (default: table)
  TM_LOG_LEVEL, TM_LOG_FORMAT              Logging (default: warn, text)
  TM_APP_TIMEOUT                           Command timeout (default: 60s)
  TM_DEBUG                                 Print debug output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}
	root.cmd.SetOut(out)
	root.cmd.SetErr(errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases the App afterwards
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with a parent context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides the arguments, for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

func (r *RootCommand) close() {
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
}

// setup applies flag overrides and builds the App
func (r *RootCommand) setup() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}
	r.config.ApplyOverrides(r.getOverridesFromFlags())
	if err := r.config.Validate(); err != nil {
		return err
	}

	app, cleanup, err := r.factory(r.config, r.out, r.errOut)
	if err != nil {
		return err
	}
	r.app, r.cleanup = app, cleanup
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("remote-url", "", "Task server origin (overrides TM_REMOTE_URL)")
	flags.Duration("remote-timeout", 0, "Request timeout (overrides TM_REMOTE_TIMEOUT)")
	flags.String("config-dir", "", "Session directory (overrides TM_CONFIG_DIR)")
	flags.String("time-format", "", "Due date display format (overrides TM_TIME_DISPLAY_FORMAT)")
	flags.String("list-format", "", "Default list format (overrides TM_LIST_DEFAULT_FORMAT)")
	flags.String("log-level", "", "Log level (overrides TM_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text, json or logfmt (overrides TM_LOG_FORMAT)")
	flags.Duration("app-timeout", 0, "Command timeout (overrides TM_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TM_APP_VERBOSE)")
}

// getOverridesFromFlags collects the global flags that were set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	o.RemoteURL = stringFlag("remote-url")
	o.RemoteTimeout = durationFlag("remote-timeout")
	o.ConfigDir = stringFlag("config-dir")
	o.TimeFormat = stringFlag("time-format")
	o.ListDefaultFormat = stringFlag("list-format")
	o.LogLevel = stringFlag("log-level")
	o.LogFormat = stringFlag("log-format")
	o.Timeout = durationFlag("app-timeout")
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	return o
}

// run wraps a handler with the command timeout
func (r *RootCommand) run(handler func(ctx context.Context, app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, cancel := context.WithTimeout(parent, r.getAppTimeout())
		defer cancel()
		return handler(ctx, r.app, args)
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	loginCmd := &cobra.Command{
		Use:   "login <email> <name>",
		Short: "Start a session",
		Long:  "Log in with an email and display name. No password is checked.",
		Args:  cobra.MinimumNArgs(2),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewLoginCommand(app).Execute(ctx, args)
		}),
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewLogoutCommand(app).Execute(ctx, args)
		}),
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewWhoamiCommand(app).Execute(ctx, args)
		}),
	}

	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo",
		Long: `Add a todo. The due date accepts YYYY-MM-DD or an RFC3339 timestamp.

Examples:
  tm add "Pay rent" --due 2024-07-01 --priority high
  tm add "Plan trip" --category Home --category Fun`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewAddCommand(app, addOpts).Execute(ctx, args)
		}),
	}
	addCmd.Flags().StringVarP(&addOpts.Description, "description", "d", "", "Description")
	addCmd.Flags().StringVarP(&addOpts.Priority, "priority", "p", "", "low, medium or high (default medium)")
	addCmd.Flags().StringVarP(&addOpts.Status, "status", "s", "", "pending, in-progress or completed (default pending)")
	addCmd.Flags().StringVar(&addOpts.Due, "due", "", "Due date")
	addCmd.Flags().StringArrayVarP(&addOpts.Categories, "category", "c", nil, "Category id or name (repeatable)")

	var listOpts ListOptions
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos",
		Long: `List todos, filtered by status and sorted.

Filters: all, pending, completed (in-progress todos only show with all)
Sort keys: createdAt (newest first), dueDate (undated last), priority`,
		Args: cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewListCommand(app, listOpts).Execute(ctx, args)
		}),
	}
	listCmd.Flags().StringVarP(&listOpts.Filter, "filter", "f", string(domain.FilterAll), "all, pending or completed")
	listCmd.Flags().StringVar(&listOpts.SortBy, "sort", string(domain.SortByCreatedAt), "createdAt, dueDate or priority")
	listCmd.Flags().BoolVarP(&listOpts.Group, "group", "g", false, "Group by category")
	listCmd.Flags().StringVarP(&listOpts.Format, "format", "o", "", "table, json or yaml")

	var showFormat string
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a todo with its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewShowCommand(app, showFormat).Execute(ctx, args)
		}),
	}
	showCmd.Flags().StringVarP(&showFormat, "format", "o", FormatTable, "table, json or yaml")

	statusCmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set the status of a todo",
		Args:  cobra.ExactArgs(2),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewStatusCommand(app).Execute(ctx, args)
		}),
	}

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo completed",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewStatusCommand(app).Execute(ctx, []string{args[0], string(domain.StatusCompleted)})
		}),
	}

	var editTitle, editDescription, editPriority, editDue string
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit the title, description, priority or due date of a todo",
		Long:  "Edit a todo. Pass --due \"\" to remove the due date.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch store.TodoPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &editTitle
			}
			if flags.Changed("description") {
				patch.Description = &editDescription
			}
			if flags.Changed("priority") {
				p, err := domain.ParsePriority(editPriority)
				if err != nil {
					return errors.NewInvalidInputError("priority", editPriority, err.Error())
				}
				patch.Priority = &p
			}
			if flags.Changed("due") {
				patch.DueDate = &editDue
			}
			return r.run(func(ctx context.Context, app *App, args []string) error {
				return NewEditCommand(app, patch).Execute(ctx, args)
			})(cmd, args)
		},
	}
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "low, medium or high")
	editCmd.Flags().StringVar(&editDue, "due", "", "New due date; empty removes it")

	rmCmd := &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete todos",
		Args:    cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewRemoveCommand(app).Execute(ctx, args)
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed todo",
		Long: `Delete every completed todo. The todos disappear at once; the server
receives one delete per todo, in list order.`,
		Args: cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewClearCompletedCommand(app).Execute(ctx, args)
		}),
	}

	r.cmd.AddCommand(
		loginCmd,
		logoutCmd,
		whoamiCmd,
		addCmd,
		listCmd,
		showCmd,
		statusCmd,
		doneCmd,
		editCmd,
		rmCmd,
		clearCmd,
		r.subtaskCommand(),
		r.categoryCommand(),
		r.categorizeCommand(),
	)
}

func (r *RootCommand) subtaskCommand() *cobra.Command {
	subtaskCmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage the checklist of a todo",
	}
	subtaskCmd.AddCommand(
		&cobra.Command{
			Use:   "add <todo> <title>",
			Short: "Add a subtask",
			Args:  cobra.MinimumNArgs(2),
			RunE: r.run(func(ctx context.Context, app *App, args []string) error {
				return NewSubtaskCommand(app).Add(ctx, args)
			}),
		},
		&cobra.Command{
			Use:   "toggle <todo> <subtask>",
			Short: "Check or uncheck a subtask (id, id prefix or number)",
			Args:  cobra.ExactArgs(2),
			RunE: r.run(func(ctx context.Context, app *App, args []string) error {
				return NewSubtaskCommand(app).Toggle(ctx, args)
			}),
		},
		&cobra.Command{
			Use:     "rm <todo> <subtask>",
			Aliases: []string{"delete"},
			Short:   "Delete a subtask (id, id prefix or number)",
			Args:    cobra.ExactArgs(2),
			RunE: r.run(func(ctx context.Context, app *App, args []string) error {
				return NewSubtaskCommand(app).Remove(ctx, args)
			}),
		},
	)
	return subtaskCmd
}

func (r *RootCommand) categoryCommand() *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	var color string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewCategoryCommand(app).Add(ctx, args, color)
		}),
	}
	addCmd.Flags().StringVar(&color, "color", "", "Display color (default from TM_DEFAULT_CATEGORY_COLOR)")

	rmCmd := &cobra.Command{
		Use:     "rm <id or name>",
		Aliases: []string{"delete"},
		Short:   "Delete a category; its todos are kept",
		Args:    cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewCategoryCommand(app).Remove(ctx, args)
		}),
	}

	var format string
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewCategoryCommand(app).List(ctx, format)
		}),
	}
	listCmd.Flags().StringVarP(&format, "format", "o", "", "table, json or yaml")

	categoryCmd.AddCommand(addCmd, rmCmd, listCmd)
	return categoryCmd
}

func (r *RootCommand) categorizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <todo> [category...]",
		Short: "Set the categories of a todo; none clears them",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewCategoryCommand(app).Categorize(ctx, args)
		}),
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}
