package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/citypulse/citypoints-api/queue"
	"github.com/citypulse/citypoints-api/schema"
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)
	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file. Read config from env.")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("citypoints")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("queue.db", "./submissions.db")
	viper.SetDefault("queue.endpoint", "http://localhost:8080/api/submissions")
}

// newSender posts a queued payload to the submissions endpoint. A 4xx
// answer (other than timeout and rate limiting) means the server rejected
// the submission for good; everything else is worth retrying.
func newSender(endpoint, token string) queue.SendFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, payload schema.SubmissionPayload, opts queue.SendOptions) error {
		body, err := json.Marshal(payload)
		if err != nil {
			return queue.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return queue.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", opts.IdempotencyKey)

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode < 300:
			return nil
		case resp.StatusCode == http.StatusRequestTimeout,
			resp.StatusCode == http.StatusTooManyRequests,
			resp.StatusCode >= 500:
			return fmt.Errorf("server answered %d", resp.StatusCode)
		default:
			return queue.Permanent(fmt.Errorf("server rejected submission with %d", resp.StatusCode))
		}
	}
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)
	initLog()

	store, err := queue.OpenSQLiteStore(viper.GetString("queue.db"))
	if err != nil {
		log.Panic(err)
	}

	q := queue.New(store)
	send := newSender(viper.GetString("queue.endpoint"), viper.GetString("queue.token"))

	summary, err := q.Flush(context.Background(), send)

	// close before any Fatal exit so the queue database is not left with a
	// stale WAL
	if cerr := store.Close(); cerr != nil {
		log.Error(cerr)
	}
	if err != nil {
		log.Fatal(err)
	}

	log.WithFields(log.Fields{
		"prefix":    "sync",
		"synced":    summary.Synced,
		"failed":    summary.Failed,
		"permanent": summary.Permanent,
		"remaining": summary.Remaining,
	}).Info("flush finished")
}
