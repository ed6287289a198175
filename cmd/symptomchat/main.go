// Command symptomchat runs the scripted symptom interview in a terminal and
// asks the API for the final prediction.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/predictor"
	"github.com/Ayash-Bera/medipredict/pkg/chatflow"
	"github.com/Ayash-Bera/medipredict/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	apiURL  = flag.String("api", "", "API base URL (default $API_URL or http://localhost:5000)")
	timeout = flag.Duration("timeout", predictor.DefaultTimeout, "prediction request timeout")
	outDir  = flag.String("out", ".", "directory for exported summaries")
	verbose = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	logger := utils.GetLogger()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	base := *apiURL
	if base == "" {
		base = os.Getenv("API_URL")
	}
	if base == "" {
		base = "http://localhost:5000"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The gateway mounts its routes under /api, so the HTTP predictor client
	// can talk to it directly.
	client := predictor.NewClient(strings.TrimRight(base, "/")+"/api", *timeout, logger)

	s := &session{
		predictor: client,
		out:       os.Stdout,
		outDir:    *outDir,
		now:       time.Now,
	}
	if err := s.run(ctx, os.Stdin); err != nil {
		logger.WithError(err).Fatal("Chat ended with an error")
	}
}

type session struct {
	predictor predictor.Predictor
	out       io.Writer
	outDir    string
	now       func() time.Time
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	state, effects := chatflow.Start()
	state = s.apply(ctx, state, effects)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		state, effects = chatflow.Step(state, scanner.Text())
		state = s.apply(ctx, state, effects)
	}
}

// apply runs effects in order. A Predict effect is resolved synchronously and
// its follow-up effects are applied in turn.
func (s *session) apply(ctx context.Context, state chatflow.State, effects []chatflow.Effect) chatflow.State {
	for len(effects) > 0 {
		effect := effects[0]
		effects = effects[1:]

		switch e := effect.(type) {
		case chatflow.Say:
			fmt.Fprintf(s.out, "bot> %s\n", e.Text)
		case chatflow.Predict:
			outcome := chatflow.Outcome{At: s.now()}
			result, err := s.predictor.Predict(ctx, e.Symptoms)
			if err != nil {
				outcome.Err = err
			} else {
				outcome.Prediction = result.Prediction
			}
			var more []chatflow.Effect
			state, more = chatflow.Resolve(state, outcome)
			effects = append(more, effects...)
		case chatflow.Export:
			path := filepath.Join(s.outDir, e.Filename)
			if err := os.WriteFile(path, []byte(e.Document), 0o644); err != nil {
				fmt.Fprintf(s.out, "bot> Could not save the summary: %v\n", err)
				continue
			}
			fmt.Fprintf(s.out, "bot> Summary saved to %s\n", path)
		}
	}
	return state
}
