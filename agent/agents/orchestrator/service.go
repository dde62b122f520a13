package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	intentx "github.com/mesra-labs/mesra-agent/agent/intent"
	nodex "github.com/mesra-labs/mesra-agent/agent/nodes"
	plannerx "github.com/mesra-labs/mesra-agent/agent/planner"
	statex "github.com/mesra-labs/mesra-agent/agent/state"
	toolx "github.com/mesra-labs/mesra-agent/agent/tool"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

type Config struct {
	// ConfidenceThreshold below which a classified intent becomes unknown.
	// Zero falls back to the classifier default.
	ConfidenceThreshold float64
}

// Orchestrator composes the full handle-message pipeline. The catalog is
// loaded once at construction; a failed load is fatal, not degraded, because
// every search would be wrong afterwards.
type Orchestrator struct {
	store      statex.Store
	classifier *intentx.Classifier
	planner    *plannerx.Planner
	exec       toolx.Executor
	toolInfos  []*schema.ToolInfo

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

func New(store statex.Store, provider contractx.CatalogProvider, cfg Config) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if provider == nil {
		return nil, errors.New("catalog provider is required")
	}

	ctx := context.Background()
	products, err := provider.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	outlets, err := provider.LoadOutlets(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().Int("products", len(products)).Int("outlets", len(outlets)).Msg("catalog loaded")

	infos, exec := toolx.BuildToolset(products, outlets)

	o := &Orchestrator{
		store:      store,
		classifier: intentx.NewClassifier(cfg.ConfidenceThreshold),
		planner:    plannerx.New(),
		exec:       exec,
		toolInfos:  infos,
		locks:      make(map[string]*sync.Mutex),
		now:        time.Now,
	}

	graphRunner, err := o.compileHandleMessageGraph(ctx)
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Tools exposes the bound tool descriptors, mainly for introspection.
func (o *Orchestrator) Tools() []*schema.ToolInfo {
	return o.toolInfos
}

// HandleMessage runs one user message through the pipeline. Turns for the
// same session are serialized; different sessions run concurrently.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID string, text string) (contractx.AgentResponse, error) {
	lock := o.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	return out.Response, nil
}

func (o *Orchestrator) sessionLock(sessionID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		o.locks[sessionID] = lock
	}
	return lock
}
