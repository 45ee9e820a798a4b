package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"github.com/royalket/demo-file-merger/log"
	"github.com/royalket/demo-file-merger/merger/constants"
	"github.com/royalket/demo-file-merger/merger/intake"
	"github.com/royalket/demo-file-merger/merger/models"
	"github.com/royalket/demo-file-merger/merger/output"
	"github.com/royalket/demo-file-merger/merger/pipeline"
	"github.com/royalket/demo-file-merger/merger/reference"
	"github.com/royalket/demo-file-merger/merger/utils"
	"github.com/royalket/demo-file-merger/merger/web"
)

func main() {
	app := setUpApp()
	if err := app.Run(os.Args); err != nil {
		log.API.Fatal(err)
	}
}

func setUpApp() *cli.App {
	app := cli.NewApp()
	app.Name = "merger"
	app.Usage = "Consolidates medical billing files into one row per claim"
	app.Version = constants.Version

	var httpPort int
	var inputDir, outFile, outputFormat, dateFormat string

	app.Commands = []cli.Command{
		{
			Name:  "start-api",
			Usage: "Start the claims processing API",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:        "http-port",
					Usage:       "Port to listen on",
					Value:       utils.GetEnvInt("MERGER_HTTP_PORT", 3000),
					Destination: &httpPort,
				},
			},
			Action: func(c *cli.Context) error {
				return startAPI(httpPort)
			},
		},
		{
			Name:  "process",
			Usage: "Consolidate billing files from a directory into a report file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "dir",
					Usage:       "Directory holding the records/patients/reference files",
					Destination: &inputDir,
				},
				cli.StringFlag{
					Name:        "out",
					Usage:       "Path of the report to write",
					Value:       constants.CSVFileName,
					Destination: &outFile,
				},
				cli.StringFlag{
					Name:        "output-format",
					Usage:       "csv, excel, or json",
					Value:       constants.DefaultOutputFormat,
					Destination: &outputFormat,
				},
				cli.StringFlag{
					Name:        "date-format",
					Usage:       "YYYY-MM-DD, MM/DD/YYYY, or DD/MM/YYYY",
					Value:       constants.DefaultDateFormat,
					Destination: &dateFormat,
				},
			},
			Action: func(c *cli.Context) error {
				return processDir(inputDir, outFile, outputFormat, dateFormat)
			},
		},
	}
	return app
}

func startAPI(port int) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      web.NewRouter(),
		ReadTimeout:  time.Duration(utils.GetEnvInt("MERGER_READ_TIMEOUT_SECONDS", 10)) * time.Second,
		WriteTimeout: time.Duration(utils.GetEnvInt("MERGER_WRITE_TIMEOUT_SECONDS", 20)) * time.Second,
		IdleTimeout:  time.Duration(utils.GetEnvInt("MERGER_IDLE_TIMEOUT_SECONDS", 120)) * time.Second,
	}
	log.API.Infof("Starting claims merger API on port %d", port)
	return srv.ListenAndServe()
}

func processDir(dir, outFile, outputFormat, dateFormat string) error {
	if dir == "" {
		return fmt.Errorf("--dir is required")
	}

	files, err := readDir(dir)
	if err != nil {
		return err
	}

	refs := reference.Load(files)
	records, patients := intake.BuildTables(files)
	claims, err := pipeline.Consolidate(records, patients, refs, dateFormat)
	if err != nil {
		return err
	}

	var write func(w *os.File, claims []models.ConsolidatedClaim) error
	switch outputFormat {
	case "csv":
		write = func(w *os.File, claims []models.ConsolidatedClaim) error { return output.WriteCSV(w, claims) }
	case "excel":
		write = func(w *os.File, claims []models.ConsolidatedClaim) error { return output.WriteXLSX(w, claims) }
	case "json":
		write = func(w *os.File, claims []models.ConsolidatedClaim) error { return output.WriteJSON(w, claims) }
	default:
		return errors.New(constants.InvalidOutputFormatErr)
	}

	f, err := os.Create(filepath.Clean(outFile))
	if err != nil {
		return err
	}
	if err := write(f, claims); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.API.Infof("Wrote %d consolidated claims to %s", len(claims), outFile)
	return nil
}

func readDir(dir string) (map[string][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files[entry.Name()] = data
	}
	return files, nil
}
