package ctl

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/patronus-sdwan/patronus-go/internal/configsync"
)

// SyncRule applies one rule and writes the result as indented JSON,
// mirroring the structured output automation tooling expects:
// {changed, message, rule}.
func SyncRule(syncer *configsync.Syncer, rule configsync.Rule, state configsync.State, out io.Writer) error {
	result, err := syncer.Apply(rule, state)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
