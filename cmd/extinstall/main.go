// Command extinstall installs, verifies, and prints extension installation
// scripts against a live PostgreSQL server.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/pgext/go-extension-spec/extpg"
	"github.com/pgext/go-extension-spec/extreader"
	"github.com/pgext/go-extension-spec/extsql"
)

func main() {
	// Load .env if present so EXTINSTALL_DB_URL can live next to the
	// manifest during development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "extinstall",
		Usage: "Install and verify declarative extension manifests",
		Commands: []*cli.Command{
			installCommand(),
			verifyCommand(),
			scriptCommand(),
		},
	}
	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func manifestFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "manifest",
		Usage:    "Path to manifest directory containing extension.yml",
		Required: true,
	}
}

func dbURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Sources:  cli.EnvVars("EXTINSTALL_DB_URL"),
		Usage:    "PostgreSQL connection URL",
		Required: true,
	}
}

func installCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Apply the generated installation statements in one transaction",
		Flags: []cli.Flag{
			manifestFlag(),
			dbURLFlag(),
			&cli.BoolFlag{
				Name:  "if-not-exists",
				Usage: "Emit re-runnable DDL with existence guards",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ext, err := extreader.Read(cmd.String("manifest"))
			if err != nil {
				return err
			}

			var opts []extsql.Option
			if cmd.Bool("if-not-exists") {
				opts = append(opts, extsql.WithIfNotExists())
			}
			stmts, err := extsql.GenerateInstall(ext, opts...)
			if err != nil {
				return err
			}

			db, err := sql.Open("pgx", cmd.String("db-url"))
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			log.Info("Installing extension", "name", ext.Name, "version", ext.Version, "statements", len(stmts))
			progress := extsql.WithProgress(func(s extsql.Statement) {
				log.Debug("Applying statement", "kind", s.Kind, "object", s.Object)
			})
			if err := extsql.Apply(ctx, db, stmts, progress); err != nil {
				return err
			}
			log.Info("Installation complete", "name", ext.Name, "version", ext.Version)
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check an installed extension against its manifest",
		Flags: []cli.Flag{
			manifestFlag(),
			dbURLFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ext, err := extreader.Read(cmd.String("manifest"))
			if err != nil {
				return err
			}

			conn, err := pgx.Connect(ctx, cmd.String("db-url"))
			if err != nil {
				return fmt.Errorf("connecting: %w", err)
			}
			defer conn.Close(ctx)

			if err := extpg.Verify(ctx, conn, ext); err != nil {
				return err
			}
			log.Info("Verified", "name", ext.Name, "version", ext.Version)
			return nil
		},
	}
}

func scriptCommand() *cli.Command {
	return &cli.Command{
		Name:  "script",
		Usage: "Print the installation script to stdout",
		Flags: []cli.Flag{
			manifestFlag(),
			&cli.BoolFlag{
				Name:  "if-not-exists",
				Usage: "Emit re-runnable DDL with existence guards",
			},
			&cli.BoolFlag{
				Name:  "git-metadata",
				Usage: "Record the manifest repository's HEAD commit in the script header",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var readOpts []extreader.Option
			if cmd.Bool("git-metadata") {
				readOpts = append(readOpts, extreader.WithGitMetadata())
			}
			ext, err := extreader.Read(cmd.String("manifest"), readOpts...)
			if err != nil {
				return err
			}

			var opts []extsql.Option
			if cmd.Bool("if-not-exists") {
				opts = append(opts, extsql.WithIfNotExists())
			}
			script, err := extsql.Script(ext, opts...)
			if err != nil {
				return err
			}
			fmt.Print(script)
			return nil
		},
	}
}
