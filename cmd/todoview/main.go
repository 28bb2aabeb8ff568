// Command todoview loads todos from the todo API and prints the derived
// views: the active list, the sidebar, and the view after a mutation.
package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/todoview/api/transport"
	"github.com/fastygo/todoview/domain"
	"github.com/fastygo/todoview/internal/config"
	"github.com/fastygo/todoview/internal/infrastructure/httpclient"
	"github.com/fastygo/todoview/pkg/logger"
	"github.com/fastygo/todoview/repository/httpapi"
	todoUC "github.com/fastygo/todoview/usecase/todo"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		writeEnvelope(os.Stdout, transport.NewErrorFrom(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "todoview",
	Short:             "Inspect and edit todos through their date-grouped views",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: openSession,
}

var (
	viewTitle     string
	viewCompleted bool

	session   *todoUC.UseCase
	zapLogger *zap.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&viewTitle, "view", domain.AllTodosView, "View held by the session before a mutation")
	rootCmd.PersistentFlags().BoolVar(&viewCompleted, "completed-view", false, "Restrict the held view to completed todos")
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if zapLogger != nil {
			_ = zapLogger.Sync()
		}
	}
}

// openSession builds the session for this invocation and loads the collection.
func openSession(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zapLogger, err = logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		return err
	}

	client := httpclient.NewClient(cfg.API, cfg.AppName)
	repo := httpapi.NewTodoRepository(client, cfg.API.BaseURL, cfg.API.Timeout, zapLogger)
	session = todoUC.New(repo, zapLogger.With(zap.String("app", cfg.AppName)))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := session.Load(ctx); err != nil {
		return err
	}
	session.Select(viewTitle, viewCompleted)
	return nil
}

func writeEnvelope(w io.Writer, env transport.Envelope) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(env)
}

func printSuccess(cmd *cobra.Command, data interface{}) error {
	writeEnvelope(cmd.OutOrStdout(), transport.NewSuccess(data, nil))
	return nil
}
