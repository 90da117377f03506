package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/calimero-network/calimero-sdk-js/application/config"
	"github.com/calimero-network/calimero-sdk-js/host"
	"github.com/calimero-network/calimero-sdk-js/hostfuncs"
	hostmodule "github.com/calimero-network/calimero-sdk-js/infrastructure/wazero"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(fsys afero.Fs) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "shimhost",
		Short:        "Run guest modules against the calimero host imports",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "host configuration file (YAML)")

	load := func() (*config.Config, error) {
		if configPath == "" {
			return config.Default(), nil
		}
		return config.Load(fsys, configPath)
	}

	root.AddCommand(
		newRunCmd(fsys, load),
		newSchemaCmd(),
		newFunctionsCmd(),
	)
	return root
}

type runFlags struct {
	wasm   string
	method string
	input  string
}

func newRunCmd(fsys afero.Fs, load func() (*config.Config, error)) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Call one method of a guest module and print the outcome as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runGuest(cmd, fsys, cfg, flags)
		},
	}
	cmd.Flags().StringVar(&flags.wasm, "wasm", "", "path to the guest module")
	cmd.Flags().StringVar(&flags.method, "method", "", "exported method to call")
	cmd.Flags().StringVar(&flags.input, "input", "", "call input, available through the input import")
	_ = cmd.MarkFlagRequired("wasm")
	_ = cmd.MarkFlagRequired("method")
	return cmd
}

func runGuest(cmd *cobra.Command, fsys afero.Fs, cfg *config.Config, flags runFlags) error {
	ctx := cmd.Context()

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	hostfuncs.SetLogger(logger)

	contextID, err := cfg.ContextID()
	if err != nil {
		return err
	}
	executorID, err := cfg.ExecutorID()
	if err != nil {
		return err
	}

	stores, err := cfg.OpenStores(fsys)
	if err != nil {
		return err
	}

	adapterOpts := []hostmodule.AdapterOption{hostmodule.WithMaxBufferSize(cfg.Host.MaxBufferSize)}
	if cfg.Host.TraceCalls {
		adapterOpts = append(adapterOpts, hostmodule.WithMiddleware(hostmodule.TraceCalls(logger)))
	}

	executor, err := host.NewExecutor(ctx,
		host.WithStore(stores.KV),
		host.WithBlobStore(stores.Blobs),
		host.WithLogger(logger),
		host.WithModuleName(cfg.Host.ModuleName),
		host.WithAdapterOptions(adapterOpts...),
		host.WithRuntimeOptions(
			hostfuncs.WithContextID(contextID),
			hostfuncs.WithExecutorID(executorID),
			hostfuncs.WithMaxRegisterSize(cfg.Host.MaxRegisterSize),
			hostfuncs.WithMaxBlobSize(cfg.Host.MaxBlobSize),
		),
	)
	if err != nil {
		return err
	}
	defer executor.Close(ctx) //nolint:errcheck

	wasmBytes, err := afero.ReadFile(fsys, flags.wasm)
	if err != nil {
		return fmt.Errorf("failed to read guest module: %w", err)
	}

	instance, err := executor.LoadModule(ctx, wasmBytes)
	if err != nil {
		return err
	}
	defer instance.Close(ctx) //nolint:errcheck

	outcome, callErr := instance.Call(ctx, flags.method, []byte(flags.input))
	logger.Debug("guest call finished",
		zap.String("method", flags.method),
		zap.Int("events", len(outcome.Events)),
		zap.Bool("failed", outcome.Failed()))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome); err != nil {
		return fmt.Errorf("failed to encode outcome: %w", err)
	}

	// Writes made before a failure are kept.
	if err := stores.Flush(); err != nil {
		return err
	}
	return callErr
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the host configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newFunctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the functions of the host import module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(hostmodule.Functions(), "\n"))
			return err
		},
	}
}
