package main

import (
	"log"
	"os"

	"github.com/dtnitsch/helpcenter-sync/internal/history"
	"github.com/dtnitsch/helpcenter-sync/internal/syncer"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "helpcenter-sync",
		Usage: "mirror help-center articles locally and sync changes to a vector store",
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "fetch articles, detect changes, and upload the delta",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to YAML config file",
						Value: "config.yaml",
					},
					&cli.StringFlag{
						Name:  "feed-url",
						Usage: "help-center article feed URL",
					},
					&cli.StringFlag{
						Name:  "store-name",
						Usage: "vector store name to find or create",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "directory for articles, ledger and run log",
						Value: "output",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "number of parallel upload workers",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum number of articles to fetch",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "distill",
						Usage: "run a readability pass over article bodies before cleaning",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: syncer.SyncAction,
			},
			{
				Name:  "log",
				Usage: "print the append-only run log",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Value: "output",
					},
				},
				Action: syncer.LogAction,
			},
			{
				Name:  "history",
				Usage: "inspect past sync runs",
				Subcommands: []*cli.Command{
					{
						Name:  "runs",
						Usage: "list recent runs",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "output-dir",
								Value: "output",
							},
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
							},
						},
						Action: history.RunsAction,
					},
					{
						Name:  "show",
						Usage: "show per-article results for a run",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "output-dir",
								Value: "output",
							},
						},
						Action: history.ShowAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
