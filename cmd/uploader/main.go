package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/minio-uploader/internal/config"
	"github.com/andresuchdata/minio-uploader/internal/storage"
	"github.com/andresuchdata/minio-uploader/internal/uploader"
	"github.com/andresuchdata/minio-uploader/pkg/logger"
)

// newUploader wires config, gateway and orchestrator for a command run.
func newUploader() (*uploader.Uploader, error) {
	cfg := config.Load()
	logger.SetLevel(cfg.Log.Level)

	client, err := storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Secure:    cfg.Minio.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	return uploader.New(client, cfg.Minio.Bucket, cfg.Upload.BasePrefix, cfg.Upload.Workers, logger.Log), nil
}

func runSingle(c *cli.Context) error {
	up, err := newUploader()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if !up.EnsureBucket(c.Context) {
		return cli.Exit("bucket check failed", 1)
	}

	if !up.UploadOne(c.Context, c.String("file"), c.String("relative")) {
		return cli.Exit("upload failed", 1)
	}
	return nil
}

func runBatch(c *cli.Context) error {
	items, err := uploader.ParseMappings(c.StringSlice("files"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	up, err := newUploader()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if !up.EnsureBucket(c.Context) {
		return cli.Exit("bucket check failed", 1)
	}

	if result := up.UploadBatch(c.Context, items); !result.Ok() {
		return cli.Exit(fmt.Sprintf("%d of %d files failed", result.Failed, result.Total), 1)
	}
	return nil
}

func runDirectory(c *cli.Context) error {
	dir := c.String("directory")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return cli.Exit(fmt.Sprintf("not a directory: %s", dir), 1)
	}

	up, err := newUploader()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if !up.EnsureBucket(c.Context) {
		return cli.Exit("bucket check failed", 1)
	}

	if result := up.UploadDirectory(c.Context, dir, c.String("base-relative")); !result.Ok() {
		return cli.Exit(fmt.Sprintf("%d of %d files failed", result.Failed, result.Total), 1)
	}
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug().Msg("no .env file found, using environment")
	}

	app := &cli.App{
		Name:  "uploader",
		Usage: "Upload local files to MinIO under date-partitioned hashed keys",
		Commands: []*cli.Command{
			{
				Name:  "single",
				Usage: "Upload a single file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Local path of the file to upload",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "relative",
						Usage:    "Relative path used to derive the object key",
						Required: true,
					},
				},
				Action: runSingle,
			},
			{
				Name:  "batch",
				Usage: "Upload an explicit list of files",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "files",
						Usage:    "File mapping in the form local_path:relative_path (repeatable)",
						Required: true,
					},
				},
				Action: runBatch,
			},
			{
				Name:  "directory",
				Usage: "Recursively upload every file under a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "directory",
						Usage:    "Directory to upload",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "base-relative",
						Usage: "Prefix for each discovered relative path",
					},
				},
				Action: runDirectory,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Error().Err(err).Msg("uploader failed")
		os.Exit(1)
	}
}
