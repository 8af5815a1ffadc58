package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	err := godotenv.Load()
	if os.IsNotExist(err) {
		log.Printf("no .env file found, skipping")
	} else if err != nil {
		log.Fatalf("failed loading .env file: %s", err)
	}

	app := cli.NewApp()
	app.Name = "songbook"
	app.Usage = "Song, lyrics and chords catalog server."
	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Value:   3000,
			Usage:   "port to run server on",
			EnvVars: []string{"SONGBOOK_PORT"},
		},
		&cli.StringFlag{
			Name:    "database",
			Usage:   "path of the sqlite file holding the songs and tags collections",
			EnvVars: []string{"SONGBOOK_DATABASE"},
		},
		&cli.StringFlag{
			Name:    "gemini-api-key",
			Usage:   "api key of the gemini model used to transcribe sheet photos",
			EnvVars: []string{"GEMINI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "gemini-model",
			Value:   "gemini-2.5-flash",
			Usage:   "gemini model used to transcribe sheet photos",
			EnvVars: []string{"SONGBOOK_GEMINI_MODEL"},
		},
		&cli.Float64Flag{
			Name:    "ocr-rate",
			Value:   1,
			Usage:   "transcription requests per second sent to gemini",
			EnvVars: []string{"SONGBOOK_OCR_RATE"},
		},
		&cli.StringFlag{
			Name:    "static-dir",
			Usage:   "directory of the built web client to serve",
			EnvVars: []string{"SONGBOOK_STATIC_DIR"},
		},
		&cli.StringSliceFlag{
			Name:    "cors-origin",
			Usage:   "allowed cross origin or comma-separated origins",
			EnvVars: []string{"SONGBOOK_CORS_ORIGINS"},
		},
	}
	app.Action = func(ctx *cli.Context) error {
		// A nil store or transcriber leaves that part unconfigured; the
		// requests needing it answer with a configuration error.
		var store documentStore
		if path := ctx.String("database"); path != "" {
			db, err := newDatabase(path)
			if err != nil {
				return err
			}
			defer db.Close()
			store = db
		} else {
			slog.Warn("no database configured, song and tag requests will fail")
		}

		var tr transcriber
		if key := ctx.String("gemini-api-key"); key != "" {
			if ctx.Float64("ocr-rate") <= 0 {
				return fmt.Errorf("ocr-rate must be positive, got %v", ctx.Float64("ocr-rate"))
			}
			gt, err := newGeminiTranscriber(ctx.Context, key, ctx.String("gemini-model"), ctx.Float64("ocr-rate"))
			if err != nil {
				return err
			}
			tr = gt
		} else {
			slog.Warn("no gemini api key configured, transcription requests will fail")
		}

		handler := newServer(newSongbook(store, tr), serverOptions{
			CORSOrigins: ctx.StringSlice("cors-origin"),
			StaticDir:   ctx.String("static-dir"),
		})

		// Start HTTP handler.
		quit := make(chan os.Signal, 2)
		var wg sync.WaitGroup
		wg.Add(1)

		server := &http.Server{
			Addr:              ":" + strconv.Itoa(ctx.Int("port")),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			defer wg.Done()

			slog.Info("serving", "address", server.Addr)

			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "failed to start server: %s\n", err)
				quit <- os.Interrupt
			}
		}()

		signal.Notify(
			quit,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGHUP,
		)
		<-quit

		slog.Info("Server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.Error("shutdown", "error", err)
		}

		wg.Wait()
		return nil
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
