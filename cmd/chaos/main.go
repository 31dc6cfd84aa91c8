package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	connk8s "github.com/autoserve/autoserve/pkg/conn/k8s"
	chaosk8s "github.com/autoserve/autoserve/pkg/domain/chaos/k8s"
)

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM,
	)
	defer cancel()

	var namespace string
	var dryRun bool
	var report string

	var monkey *Monkey

	cmd := &cobra.Command{
		Use:          "chaos",
		Short:        "chaos experiments against the cluster",
		SilenceUsage: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			monkey = &Monkey{
				Cluster:   chaosk8s.New(connk8s.WrapK8sClient(connk8s.ConnectToK8s())),
				Namespace: namespace,
				DryRun:    dryRun,
				Logger:    logger,
			}
		},
		PersistentPostRunE: func(c *cobra.Command, args []string) error {
			monkey.PrintSummary()
			if len(monkey.Events()) == 0 {
				return nil
			}
			path := report
			if path == "" {
				path = fmt.Sprintf("chaos_report_%s.json", time.Now().Format("20060102_150405"))
			}
			return monkey.ExportReport(path)
		},
	}
	cmd.PersistentFlags().StringVarP(
		&namespace, "namespace", "n", "autoserve", "kubernetes namespace",
	)
	cmd.PersistentFlags().BoolVar(
		&dryRun, "dry-run", false, "show what would be done without executing",
	)
	cmd.PersistentFlags().StringVar(
		&report, "report", "", "path of the JSON report (default: chaos_report_<timestamp>.json)",
	)

	var service string
	kill := &cobra.Command{
		Use:   "kill",
		Short: "kill a random pod",
		RunE: func(c *cobra.Command, args []string) error {
			return monkey.KillRandomPod(c.Context(), service)
		},
	}
	kill.Flags().StringVar(&service, "service", "", "restrict victims to pods of the service")
	cmd.AddCommand(kill)

	var duration time.Duration
	var interval time.Duration
	random := &cobra.Command{
		Use:   "random",
		Short: "run random chaos experiments",
		RunE: func(c *cobra.Command, args []string) error {
			monkey.Random(c.Context(), duration, interval)
			return nil
		},
	}
	random.Flags().DurationVar(&duration, "duration", 10*time.Minute, "how long to run")
	random.Flags().DurationVar(&interval, "interval", 30*time.Second, "pause between chaos events")
	cmd.AddCommand(random)

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
