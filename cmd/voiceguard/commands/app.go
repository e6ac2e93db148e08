package commands

import (
	"errors"
	"path/filepath"

	"github.com/voiceguard/voiceguard/pkg/identity"
	"github.com/voiceguard/voiceguard/pkg/journal"
	"github.com/voiceguard/voiceguard/pkg/policy"
	"github.com/voiceguard/voiceguard/pkg/voiceprint"
	"github.com/voiceguard/voiceguard/pkg/workflow"
)

const (
	usersFile  = "users.json"
	policyFile = "config.json"
	journalDir = "journal"
)

// app bundles the opened stores and the workflow engine for one command
// invocation.
type app struct {
	dir     string
	store   *identity.Store
	policy  policy.Policy
	journal *journal.Journal
	engine  *workflow.Engine
}

// openApp opens the data directory. withEngine also constructs the
// extractor and workflow engine, which enroll/verify need and the
// administrative commands do not.
func openApp(withEngine bool) (*app, error) {
	dir, err := DataDir()
	if err != nil {
		return nil, err
	}
	logger := Logger()

	store, err := identity.Open(filepath.Join(dir, usersFile), logger)
	if err != nil {
		return nil, err
	}
	pol, err := policy.Load(filepath.Join(dir, policyFile))
	if err != nil {
		return nil, err
	}
	jnl, err := journal.Open(journal.Options{Dir: filepath.Join(dir, journalDir)})
	if err != nil {
		return nil, err
	}

	a := &app{dir: dir, store: store, policy: pol, journal: jnl}
	if !withEngine {
		return a, nil
	}

	if extractorCmd == "" {
		jnl.Close()
		return nil, errors.New("no extractor configured, use --extractor to name the embedding helper")
	}
	extractor, err := voiceprint.NewCommandExtractor(extractorCmd, nil, extractorDim)
	if err != nil {
		jnl.Close()
		return nil, err
	}
	engine, err := workflow.New(workflow.Options{
		Store:     store,
		Extractor: extractor,
		Journal:   jnl,
		Logger:    logger,
	})
	if err != nil {
		jnl.Close()
		return nil, err
	}
	a.engine = engine
	return a, nil
}

func (a *app) Close() error {
	return a.journal.Close()
}
