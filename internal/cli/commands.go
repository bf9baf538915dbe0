package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"studentrecords/internal/handler"
	"studentrecords/internal/render"
	"studentrecords/internal/shell"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func shellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive record menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, a)
		},
	}
}

func runShell(cmd *cobra.Command, a *app) error {
	svc, err := a.newService(false)
	if err != nil {
		return err
	}
	return shell.New(svc, a.in, cmd.OutOrStdout()).Run()
}

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the records over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.newService(true)
			if err != nil {
				return err
			}
			if err := a.loadExisting(svc); err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			router := handler.NewRouter(svc, a.log)
			srv := &http.Server{
				Addr:              addr,
				Handler:           handler.Wrap(router, a.cfg.CORSOrigin, cmd.ErrOrStderr()),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("server running", "addr", addr, "file", svc.DataFile())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $HTTP_ADDR)")
	return cmd
}

func listCmd(a *app) *cobra.Command {
	var sortBy, order string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the records in the data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.newService(false)
			if err != nil {
				return err
			}
			if err := a.loadExisting(svc); err != nil {
				return err
			}
			students, err := svc.ListStudents(sortBy, order)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Table(students))
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "sort key: marks, roll_number or name")
	cmd.Flags().StringVar(&order, "order", "", "sort order: asc or desc")
	return cmd
}

func averageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "average",
		Short: "Print the average marks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.newService(false)
			if err != nil {
				return err
			}
			if err := a.loadExisting(svc); err != nil {
				return err
			}
			avg, err := svc.Average()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", avg)
			return nil
		},
	}
}

func importCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.csv...",
		Short: "Import CSV files (name,roll_number,marks) into the data file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService(false)
			if err != nil {
				return err
			}
			if err := a.loadExisting(svc); err != nil {
				return err
			}
			for _, path := range args {
				res, err := svc.ImportCSVFile(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: imported %d, skipped %d\n", res.FileName, res.Imported, res.Skipped)
			}
			_, err = svc.Save("")
			return err
		},
	}
}

func pushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Copy the data file into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.newService(true)
			if err != nil {
				return err
			}
			if err := a.loadExisting(svc); err != nil {
				return err
			}
			n, err := svc.PushToDB(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %d records\n", n)
			return nil
		},
	}
}

func pullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Replace the data file with the database contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.newService(true)
			if err != nil {
				return err
			}
			n, err := svc.PullFromDB(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := svc.Save(""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pulled %d records\n", n)
			return nil
		},
	}
}
