package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"coreselect/internal/recclient"
	"coreselect/internal/shared/telemetry"
	"coreselect/internal/wizard"
)

// Execute runs the coreselect command line.
func Execute(ctx context.Context) error {
	return NewRootCmd(huhPrompter{}).ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Screens are collected through p.
func NewRootCmd(p Prompter) *cobra.Command {
	a := &cliApp{v: viper.New(), prompter: p}

	root := &cobra.Command{
		Use:   "coreselect",
		Short: "CoreSelect - find a PC build for your budget",
		Long: `CoreSelect walks you through a short questionnaire (budget, priorities and
games) and asks the recommendation server for a complete parts list.

Example:
  coreselect wizard --backend http://127.0.0.1:5000`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .coreselect.yaml)")
	flags.String("backend", defaultBackend, "recommendation server base address")
	flags.String("state-dir", "", "directory for the saved recommendation (local state store)")
	flags.String("state-store", "local", "where to keep the saved recommendation: local or s3")
	flags.String("s3-bucket", "", "bucket for the s3 state store")
	flags.String("s3-prefix", "", "key prefix for the s3 state store")
	flags.String("aws-region", "", "AWS region for the s3 state store")
	flags.Duration("timeout", defaultTimeout, "recommendation request timeout")
	flags.Bool("verbose", false, "enable verbose output")
	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		a.wizardCmd(),
		a.resultsCmd(),
		a.resetCmd(),
		a.usersCmd(),
		a.partsCmd(),
	)
	return root
}

type cliApp struct {
	v        *viper.Viper
	cfgFile  string
	prompter Prompter
	opts     Options
}

func (a *cliApp) init(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if cwd, err := os.Getwd(); err == nil {
			a.v.AddConfigPath(cwd)
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".coreselect")
	}
	a.v.SetEnvPrefix("CORESELECT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	} else if a.v.GetBool("verbose") {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", a.v.ConfigFileUsed())
	}

	opts, err := loadOptions(a.v)
	if err != nil {
		return err
	}
	a.opts = opts
	return nil
}

func (a *cliApp) client() *recclient.Client {
	return recclient.New(a.opts.Backend, a.opts.Timeout)
}

func (a *cliApp) store(ctx context.Context) (*wizard.Store, error) {
	objects, err := openObjectStore(ctx, a.opts)
	if err != nil {
		return nil, err
	}
	return wizard.NewStore(ctx, wizard.NewObjectPersister(objects)), nil
}

func (a *cliApp) wizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Answer a few questions and get a recommended build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.store(ctx)
			if err != nil {
				return err
			}
			session := wizard.NewSession(store, nil, a.client())
			defer session.Close()

			sessionID := uuid.NewString()
			if a.opts.Verbose {
				telemetry.Info("wizard.start", map[string]any{"session_id": sessionID, "backend": a.opts.Backend})
			}
			runner := &wizardRunner{session: session, prompter: a.prompter, out: cmd.OutOrStdout()}
			if err := runner.run(ctx); err != nil {
				return err
			}
			if a.opts.Verbose {
				telemetry.Info("wizard.finish", map[string]any{"session_id": sessionID, "location": session.Location()})
			}
			return nil
		},
	}
}

func (a *cliApp) resultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show the last saved recommendation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			res, ok := store.Recommendation()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved recommendation. Run `coreselect wizard` to get one.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderResult(res))
			return nil
		},
	}
}

func (a *cliApp) resetCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "reset --all",
		Short: "Remove the saved recommendation",
		Long: `Answers and completed steps only live for one wizard run, so there is
nothing else to clear between runs. --all removes the saved recommendation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !all {
				fmt.Fprintln(out, "Nothing to reset: answers are kept only while `coreselect wizard` runs.")
				fmt.Fprintln(out, "Use `coreselect reset --all` to remove the saved recommendation.")
				return nil
			}
			ctx := cmd.Context()
			store, err := a.store(ctx)
			if err != nil {
				return err
			}
			if err := store.ClearRecommendation(ctx); err != nil {
				return fmt.Errorf("remove saved recommendation: %w", err)
			}
			fmt.Fprintln(out, "Saved recommendation removed.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "remove the saved recommendation")
	return cmd
}

func (a *cliApp) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users on the recommendation server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.client().ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderUsers(users))
			return nil
		},
	}

	var name, major string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.client().CreateUser(cmd.Context(), name, major)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s)\n", u.ID, u.Name)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "user name")
	add.Flags().StringVar(&major, "major", "", "user major")
	_ = add.MarkFlagRequired("name")
	cmd.AddCommand(add)
	return cmd
}

func (a *cliApp) partsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parts <type>",
		Short: "List catalog parts of one type (cpu, gpu, memory, ...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := a.client().ListParts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range parts {
				price, _ := p["price"].(float64)
				fmt.Fprintf(out, "%-48v %s\n", p["name"], formatMoney(price))
			}
			return nil
		},
	}
}

func isClientError(err error) bool {
	var cErr *recclient.Error
	return errors.As(err, &cErr)
}
