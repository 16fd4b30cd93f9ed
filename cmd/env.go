package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/pipeline"
	"github.com/nexus-group/quote-intel/internal/scoring"
	"github.com/nexus-group/quote-intel/internal/store"
)

// analysisEnv holds the initialized store and analyzer shared by the
// analyze/compare/samples/serve commands.
type analysisEnv struct {
	Store    store.Store
	Analyzer *pipeline.Analyzer
}

// Close releases resources held by the environment.
func (ae *analysisEnv) Close() {
	if ae.Store != nil {
		_ = ae.Store.Close()
	}
}

// initAnalysis validates config for the given mode, opens the store, and
// builds the analyzer. Callers should defer env.Close().
func initAnalysis(ctx context.Context, mode string) (*analysisEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	path := policyPath
	if path == "" {
		path = cfg.Scoring.PolicyPath
	}
	policy := scoring.DefaultPolicy()
	if path != "" {
		policy, err = scoring.LoadPolicy(path)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		zap.L().Info("loaded scoring policy", zap.String("path", path))
	}

	return &analysisEnv{
		Store:    st,
		Analyzer: pipeline.NewAnalyzer(nil, policy),
	}, nil
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		return store.NewMemory(), nil
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "quote-intel.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

var policyPath string

// priorityFlags registers the four buyer priority weights plus the scoring
// policy override. The default weights sum to 1.0; overrides must too,
// partial overrides are rejected at scoring time.
func priorityFlags(cmd *cobra.Command) {
	def := scoring.DefaultPriorities()
	f := cmd.Flags()
	f.Float64("cost-weight", def.Cost, "buyer priority weight for cost")
	f.Float64("quality-weight", def.Quality, "buyer priority weight for quality")
	f.Float64("speed-weight", def.Speed, "buyer priority weight for speed")
	f.Float64("risk-weight", def.Risk, "buyer priority weight for risk")
	f.StringVar(&policyPath, "policy", "", "scoring policy YAML file (overrides config)")
}

func prioritiesFromFlags(cmd *cobra.Command) model.BuyerPriorities {
	cost, _ := cmd.Flags().GetFloat64("cost-weight")
	quality, _ := cmd.Flags().GetFloat64("quality-weight")
	speed, _ := cmd.Flags().GetFloat64("speed-weight")
	risk, _ := cmd.Flags().GetFloat64("risk-weight")
	return model.BuyerPriorities{Cost: cost, Quality: quality, Speed: speed, Risk: risk}
}

// loadQuotations reads a JSON file holding either a single quotation object
// or an array of them.
func loadQuotations(path string) ([]model.Quotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read quotations file %s", path)
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var quotes []model.Quotation
		if err := json.Unmarshal(data, &quotes); err != nil {
			return nil, eris.Wrapf(err, "parse quotations file %s", path)
		}
		return quotes, nil
	}

	var q model.Quotation
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, eris.Wrapf(err, "parse quotation file %s", path)
	}
	return []model.Quotation{q}, nil
}

func loadMarket(path string) (*model.MarketIntelligence, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read market file %s", path)
	}
	var intel model.MarketIntelligence
	if err := json.Unmarshal(data, &intel); err != nil {
		return nil, eris.Wrapf(err, "parse market file %s", path)
	}
	return &intel, nil
}
