package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	patronus "github.com/patronus-sdwan/patronus-go"
	"github.com/patronus-sdwan/patronus-go/internal/config"
	"github.com/patronus-sdwan/patronus-go/internal/configsync"
	"github.com/patronus-sdwan/patronus-go/internal/ctl"
	"github.com/patronus-sdwan/patronus-go/internal/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "apply":
		fs := flag.NewFlagSet("apply", flag.ExitOnError)
		file := fs.String("f", "", "Path to topology YAML file (required)")
		apiURL := fs.String("api", cfg.APIURL, "Control-plane API base URL")
		fs.Parse(os.Args[2:])

		if *file == "" {
			fmt.Fprintln(os.Stderr, "Error: -f flag is required")
			fs.Usage()
			os.Exit(1)
		}

		logger := logging.NewLogger(cfg)
		client := patronus.NewClient(*apiURL, cfg.APIKey, patronus.WithTimeout(cfg.Timeout))
		summary, err := ctl.ApplyTopology(context.Background(), logger, client, *file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Applied: %d site(s) and %d tunnel(s) created\n", summary.SitesCreated, summary.TunnelsCreated)

	case "firewall-rule":
		fs := flag.NewFlagSet("firewall-rule", flag.ExitOnError)
		var rule configsync.FirewallRule
		var sourcePorts, destPorts, state, configPath string
		var check bool
		fs.StringVar(&rule.Name, "name", "", "Rule name (required)")
		fs.StringVar(&rule.Description, "description", "", "Rule description")
		fs.StringVar(&rule.Action, "action", "", "Action: allow, deny, or reject (required)")
		fs.StringVar(&rule.Interface, "interface", "", "Interface name (e.g. wan0)")
		fs.StringVar(&rule.Direction, "direction", "", "Direction: inbound or outbound")
		fs.StringVar(&rule.Protocol, "protocol", "", "Protocol (tcp, udp, icmp, any)")
		fs.StringVar(&rule.SourceAddr, "source-address", "", "Source address or CIDR")
		fs.StringVar(&sourcePorts, "source-ports", "", "Comma-separated source ports")
		fs.StringVar(&rule.DestAddr, "dest-address", "", "Destination address or CIDR")
		fs.StringVar(&destPorts, "dest-ports", "", "Comma-separated destination ports")
		fs.BoolVar(&rule.Log, "log", false, "Log matching traffic")
		fs.BoolVar(&rule.Enabled, "enabled", true, "Whether the rule is enabled")
		fs.StringVar(&state, "state", "present", "Desired state: present or absent")
		fs.BoolVar(&check, "check", false, "Report the outcome without writing")
		fs.StringVar(&configPath, "config-path", cfg.ConfigPath, "Rule document directory")
		fs.Parse(os.Args[2:])

		if rule.SourcePorts, err = parsePorts(sourcePorts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: -source-ports: %v\n", err)
			os.Exit(1)
		}
		if rule.DestPorts, err = parsePorts(destPorts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: -dest-ports: %v\n", err)
			os.Exit(1)
		}

		syncer := configsync.NewSyncer(configPath)
		syncer.CheckMode = check
		if err := ctl.SyncRule(syncer, rule, configsync.State(state), os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "nat-rule":
		fs := flag.NewFlagSet("nat-rule", flag.ExitOnError)
		var rule configsync.NATRule
		var state, configPath string
		var check bool
		fs.StringVar(&rule.Name, "name", "", "Rule name (required)")
		fs.StringVar(&rule.Description, "description", "", "Rule description")
		fs.StringVar(&rule.NATType, "nat-type", "", "NAT type: source, destination, or port_forward (required)")
		fs.StringVar(&rule.Interface, "interface", "", "Interface name (required)")
		fs.StringVar(&rule.SourceAddr, "source-address", "", "Source address or CIDR")
		fs.StringVar(&rule.DestAddr, "dest-address", "", "Destination address or CIDR")
		fs.StringVar(&rule.TranslationAddr, "translation-address", "", "Translation address")
		fs.IntVar(&rule.TranslationPort, "translation-port", 0, "Translation port")
		fs.StringVar(&rule.Protocol, "protocol", "", "Protocol (tcp, udp)")
		fs.IntVar(&rule.DestPort, "dest-port", 0, "Destination port")
		fs.BoolVar(&rule.Enabled, "enabled", true, "Whether the rule is enabled")
		fs.StringVar(&state, "state", "present", "Desired state: present or absent")
		fs.BoolVar(&check, "check", false, "Report the outcome without writing")
		fs.StringVar(&configPath, "config-path", cfg.ConfigPath, "Rule document directory")
		fs.Parse(os.Args[2:])

		syncer := configsync.NewSyncer(configPath)
		syncer.CheckMode = check
		if err := ctl.SyncRule(syncer, rule, configsync.State(state), os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "tunnel":
		if len(os.Args) < 4 || os.Args[2] != "status" {
			fmt.Fprintln(os.Stderr, "Usage: patronusctl tunnel status <tunnel-id>")
			os.Exit(1)
		}
		client := patronus.NewClient(cfg.APIURL, cfg.APIKey, patronus.WithTimeout(cfg.Timeout))
		if err := ctl.TunnelStatus(context.Background(), client, os.Args[3], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "model":
		if len(os.Args) < 4 || os.Args[2] != "deploy" {
			fmt.Fprintln(os.Stderr, "Usage: patronusctl model deploy <model-id>")
			os.Exit(1)
		}
		client := patronus.NewClient(cfg.APIURL, cfg.APIKey, patronus.WithTimeout(cfg.Timeout))
		if err := ctl.DeployModel(context.Background(), client, os.Args[3], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func parsePorts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ports := make([]int, 0, len(parts))
	for _, p := range parts {
		port, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid port %q", p)
		}
		ports = append(ports, port)
	}
	return ports, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
  patronusctl apply -f <topology.yaml> [-api URL]
  patronusctl firewall-rule -name NAME -action ACTION [flags]
  patronusctl nat-rule -name NAME -nat-type TYPE -interface IFACE [flags]
  patronusctl tunnel status <tunnel-id>
  patronusctl model deploy <model-id>

Commands:
  apply           Converge sites and tunnels to a YAML topology
  firewall-rule   Manage one declarative firewall rule document
  nat-rule        Manage one declarative NAT rule document
  tunnel status   Show live status for a tunnel
  model deploy    Deploy an ML model

Environment:
  PATRONUS_API_URL      Control-plane API base URL (default http://localhost:8080)
  PATRONUS_API_KEY      API key for bearer authentication
  PATRONUS_CONFIG_PATH  Rule document directory (default /etc/patronus/config)
  LOG_LEVEL             Log level (default info)`)
}
