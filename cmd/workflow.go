package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atlan-sdk/feature/workflow"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for workflow commands
	workflowFile     string
	workflowWait     bool
	workflowInterval time.Duration
	workflowLimit    int
)

// crawlerBuilder is implemented by every crawler package.
type crawlerBuilder interface {
	ToWorkflow() (*workflow.Workflow, error)
}

// crawlers maps a short package name to a decoder for its settings file.
var crawlers = map[string]func([]byte) (crawlerBuilder, error){
	"snowflake": decodeCrawler[workflow.SnowflakeCrawler],
	"postgres":  decodeCrawler[workflow.PostgresCrawler],
	"bigquery":  decodeCrawler[workflow.BigQueryCrawler],
	"tableau":   decodeCrawler[workflow.TableauCrawler],
}

var packageNames = map[string]string{
	"snowflake": workflow.SnowflakePackage,
	"postgres":  workflow.PostgresPackage,
	"bigquery":  workflow.BigQueryPackage,
	"tableau":   workflow.TableauPackage,
}

func decodeCrawler[T crawlerBuilder](data []byte) (crawlerBuilder, error) {
	var c T
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// workflowCmd is the parent command for crawler workflows.
var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Run and monitor crawler workflows",
}

var workflowRunCmd = &cobra.Command{
	Use:   "run <snowflake|postgres|bigquery|tableau>",
	Short: "Create a connection and start its crawler",
	Long: `Builds a crawler workflow from a JSON settings file and submits it.
The file holds the crawler's fields, for example:

  {
    "connection": {"name": "production", "adminRoles": ["<role-guid>"]},
    "credential": {"authType": "basic", "username": "svc", "password": "..."},
    "hostname": "acme.snowflakecomputing.com",
    "role": "CRAWLER",
    "warehouse": "COMPUTE_WH",
    "include": {"ANALYTICS": ["PUBLIC"]}
  }

With --wait the command polls the run until it finishes and fails when the
run does not succeed.`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkflow,
}

var workflowListCmd = &cobra.Command{
	Use:   "list <snowflake|postgres|bigquery|tableau>",
	Short: "List workflows of a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkflowList,
}

var workflowStatusCmd = &cobra.Command{
	Use:   "status <workflow-name>",
	Short: "Show the latest run of a workflow",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkflowStatus,
}

var workflowStopCmd = &cobra.Command{
	Use:   "stop <run-name>",
	Short: "Stop a running workflow run",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkflowStop,
}

func init() {
	workflowRunCmd.Flags().StringVar(&workflowFile, "file", "", "JSON file with the crawler settings")
	workflowRunCmd.Flags().BoolVar(&workflowWait, "wait", false, "Wait for the run to finish")
	workflowRunCmd.Flags().DurationVar(&workflowInterval, "interval", 10*time.Second, "Polling interval with --wait")
	_ = workflowRunCmd.MarkFlagRequired("file")

	workflowListCmd.Flags().IntVar(&workflowLimit, "limit", 10, "Maximum number of workflows")

	workflowCmd.AddCommand(workflowRunCmd, workflowListCmd, workflowStatusCmd, workflowStopCmd)
	RootCmd.AddCommand(workflowCmd)
}

func workflowService() (*workflow.Service, *zap.Logger, error) {
	cfg, l, err := setup()
	if err != nil {
		return nil, nil, err
	}
	api, err := newAPI(cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return workflow.NewService(api, l), l, nil
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	decode, ok := crawlers[args[0]]
	if !ok {
		return fmt.Errorf("unknown crawler package %q", args[0])
	}
	data, err := os.ReadFile(workflowFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", workflowFile, err)
	}
	builder, err := decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", workflowFile, err)
	}
	wf, err := builder.ToWorkflow()
	if err != nil {
		return err
	}

	svc, l, err := workflowService()
	if err != nil {
		return err
	}
	defer l.Sync()

	// Ctrl+C stops waiting; the run itself keeps going.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	submitted, err := svc.Run(ctx, wf)
	if err != nil {
		return err
	}
	fmt.Println(submitted.Metadata.Name)

	if !workflowWait {
		return nil
	}
	run, err := svc.Monitor(ctx, submitted.Metadata.Name, workflowInterval)
	if err != nil {
		return err
	}
	if run.Status.Phase != workflow.PhaseSucceeded {
		return fmt.Errorf("run %s finished with phase %s: %s", run.Metadata.Name, run.Status.Phase, run.Status.Message)
	}
	return nil
}

func runWorkflowList(cmd *cobra.Command, args []string) error {
	pkg, ok := packageNames[args[0]]
	if !ok {
		return fmt.Errorf("unknown crawler package %q", args[0])
	}
	svc, l, err := workflowService()
	if err != nil {
		return err
	}
	defer l.Sync()

	list, err := svc.FindByType(context.Background(), pkg, workflowLimit)
	if err != nil {
		return err
	}
	for _, wf := range list {
		fmt.Println(wf.Metadata.Name)
	}
	return nil
}

func runWorkflowStatus(cmd *cobra.Command, args []string) error {
	svc, l, err := workflowService()
	if err != nil {
		return err
	}
	defer l.Sync()

	run, err := svc.FindLatestRun(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\t%s\n", run.Metadata.Name, run.Status.Phase, run.Status.StartedAt)
	return nil
}

func runWorkflowStop(cmd *cobra.Command, args []string) error {
	svc, l, err := workflowService()
	if err != nil {
		return err
	}
	defer l.Sync()

	run, err := svc.Stop(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\n", run.Metadata.Name, run.Status.Phase)
	return nil
}
