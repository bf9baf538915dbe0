package cli

import (
	"errors"
	"io"
	"os"
	"studentrecords/internal/config"
	"studentrecords/internal/database"
	"studentrecords/internal/logger"
	"studentrecords/internal/service"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg *config.Config
	fs  afero.Fs
	in  io.Reader
	log logger.Logger
}

type flags struct {
	file     string
	logLevel string
	logJSON  bool
}

// RootCmd builds the command tree. Without a subcommand it runs the
// interactive shell.
func RootCmd() *cobra.Command {
	return newRootCmd(config.Load(), afero.NewOsFs(), os.Stdin)
}

func newRootCmd(cfg *config.Config, fs afero.Fs, in io.Reader) *cobra.Command {
	a := &app{cfg: cfg, fs: fs, in: in}
	var f flags

	root := &cobra.Command{
		Use:           "studentrecords",
		Short:         "Manage student records from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Flags().Changed("file") {
				a.cfg.DataFile = f.file
			}
			if cmd.Flags().Changed("log-level") {
				a.cfg.LogLevel = f.logLevel
			}
			if cmd.Flags().Changed("log-json") {
				a.cfg.LogJSON = f.logJSON
			}
			a.log = logger.NewLogger(&logger.Config{
				Level:      logger.ParseLevel(a.cfg.LogLevel),
				Output:     cmd.ErrOrStderr(),
				JSON:       a.cfg.LogJSON,
				TimeFormat: "15:04:05",
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, a)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.file, "file", "f", cfg.DataFile, "student data file")
	pf.StringVar(&f.logLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&f.logJSON, "log-json", cfg.LogJSON, "log as JSON")

	root.AddCommand(
		shellCmd(a),
		serveCmd(a),
		listCmd(a),
		averageCmd(a),
		importCmd(a),
		pushCmd(a),
		pullCmd(a),
	)
	return root
}

// newService builds the service and, when a driver is configured, its
// database mirror.
func (a *app) newService(withDB bool) (*service.StudentService, error) {
	opts := []service.Option{service.WithFs(a.fs), service.WithLogger(a.log)}
	if withDB {
		db, err := database.Open(a.cfg)
		switch {
		case errors.Is(err, database.ErrDisabled):
		case err != nil:
			return nil, err
		default:
			opts = append(opts, service.WithDB(db))
		}
	}
	return service.NewStudentService(a.cfg.DataFile, opts...), nil
}

// loadExisting fills svc from the data file when it exists.
func (a *app) loadExisting(svc *service.StudentService) error {
	exists, err := afero.Exists(a.fs, svc.DataFile())
	if err != nil || !exists {
		return err
	}
	_, err = svc.Load("")
	return err
}
