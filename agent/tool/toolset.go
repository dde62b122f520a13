package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	searchx "github.com/mesra-labs/mesra-agent/agent/search"
)

const (
	ToolMathEvaluate  = "math.evaluate"
	ToolCatalogSearch = "catalog.search"
)

// Executor runs one tool request. Tool-level failures come back as a
// user-safe ToolResult.Error string; the error return is for broken requests
// only.
type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// BuildToolset exposes the deterministic engines behind the same tool-info +
// executor surface an agent would bind. The catalog snapshots are captured
// once; executors never reload them.
func BuildToolset(products, outlets []contractx.Entity) ([]*schema.ToolInfo, Executor) {
	return toolInfos(), NewExecutor(products, outlets)
}

func NewExecutor(products, outlets []contractx.Entity) Executor {
	productCfg := searchx.ProductConfig()
	outletCfg := searchx.OutletConfig()

	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolMathEvaluate:
			return executeMathTool(tool, args)
		case ToolCatalogSearch:
			return executeSearchTool(tool, args, products, outlets, productCfg, outletCfg)
		default:
			return contractx.ToolResult{
				Tool:  tool,
				Error: fmt.Sprintf("tool=%s is not available", tool),
			}, nil
		}
	}
}

func executeMathTool(tool string, args map[string]any) (contractx.ToolResult, error) {
	rawExpression, ok := args["expression"]
	if !ok {
		return contractx.ToolResult{Tool: tool, Error: "expression is required"}, nil
	}
	expression, ok := rawExpression.(string)
	if !ok {
		return contractx.ToolResult{Tool: tool, Error: "expression must be a string"}, nil
	}

	result, err := Evaluate(expression)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: FailureMessage(err)}, nil
	}
	return contractx.ToolResult{Tool: tool, Result: result}, nil
}

func executeSearchTool(
	tool string,
	args map[string]any,
	products, outlets []contractx.Entity,
	productCfg, outletCfg searchx.Config,
) (contractx.ToolResult, error) {
	query, _ := args["query"].(string)
	domain, _ := args["domain"].(string)
	slots, _ := args["slots"].(contractx.Slots)

	var (
		catalog []contractx.Entity
		cfg     searchx.Config
	)
	switch contractx.EntityKind(domain) {
	case contractx.EntityProduct:
		catalog, cfg = products, productCfg
	case contractx.EntityOutlet:
		catalog, cfg = outlets, outletCfg
	default:
		return contractx.ToolResult{Tool: tool, Error: fmt.Sprintf("unknown search domain %q", domain)}, nil
	}

	q := searchx.BuildQuery(query, cfg.Relevant(slots))
	results := searchx.Search(q, catalog, cfg)
	return contractx.ToolResult{Tool: tool, Result: results}, nil
}

func toolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolCatalogSearch,
			Desc: "Search the product or outlet catalog with weighted relevance ranking.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query":  {Type: schema.String, Desc: "Natural language query", Required: true},
				"domain": {Type: schema.String, Desc: "Catalog domain: product or outlet", Required: true},
			}),
		},
		{
			Name: ToolMathEvaluate,
			Desc: "Evaluate an arithmetic expression, including N% of M percentage syntax.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"expression": {Type: schema.String, Desc: "Expression to evaluate", Required: true},
			}),
		},
	}
}
