package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mesra-labs/mesra-agent/agent/agents/orchestrator"
	catalogx "github.com/mesra-labs/mesra-agent/agent/catalog"
	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	statex "github.com/mesra-labs/mesra-agent/agent/state"
	configx "github.com/mesra-labs/mesra-agent/pkg/config"
	logx "github.com/mesra-labs/mesra-agent/pkg/logger"
)

type AppConfig struct {
	SessionID           string  `envconfig:"SESSION_ID" default:"local-session"`
	ConfidenceThreshold float64 `envconfig:"CONFIDENCE_THRESHOLD" default:"0.3"`
	CatalogDSN          string  `envconfig:"CATALOG_DSN"`
	RedisURL            string  `envconfig:"UPSTASH_REDIS_URL"`
	Debug               bool    `envconfig:"DEBUG" default:"false"`
	PrettyFormat        bool    `envconfig:"PRETTY_FORMAT" default:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")
	logx.Init(logx.Config{Debug: appCfg.Debug, PrettyFormat: appCfg.PrettyFormat})

	store := buildStore(appCfg)
	provider := buildProvider(appCfg)

	svc, err := orchestrator.New(store, provider, orchestrator.Config{
		ConfidenceThreshold: appCfg.ConfidenceThreshold,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("orchestrator init failed")
	}

	fmt.Println("Mesra agent ready. Type a message, or 'exit' to quit.")
	runREPL(svc, appCfg.SessionID)
}

func buildStore(cfg *AppConfig) statex.Store {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return statex.NewMemoryStore()
	}
	redisCfg := configx.MustNew[statex.UpstashRedisConfig]("UPSTASH_REDIS")
	store, err := statex.NewUpstashRedisStore(*redisCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("redis store init failed")
	}
	return store
}

func buildProvider(cfg *AppConfig) contractx.CatalogProvider {
	if strings.TrimSpace(cfg.CatalogDSN) == "" {
		return catalogx.NewStaticProvider()
	}
	pgCfg := configx.MustNew[catalogx.PostgresConfig]("CATALOG")
	return catalogx.NewPostgresProvider(*pgCfg)
}

func runREPL(svc *orchestrator.Orchestrator, sessionID string) {
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			return
		}

		resp, err := svc.HandleMessage(ctx, sessionID, text)
		if err != nil {
			log.Error().Err(err).Msg("handle message failed")
			continue
		}
		fmt.Println(resp.Reply)
	}
}
