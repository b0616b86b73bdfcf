package ctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	patronus "github.com/patronus-sdwan/patronus-go"
)

// TunnelStatus fetches one tunnel's live status and writes it as JSON.
func TunnelStatus(ctx context.Context, client *patronus.Client, id string, out io.Writer) error {
	status, err := client.Tunnels.GetStatus(ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(out, status)
}

// DeployModel deploys an ML model and writes the resulting record as JSON.
func DeployModel(ctx context.Context, client *patronus.Client, id string, out io.Writer) error {
	model, err := client.MLModels.Deploy(ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(out, model)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
