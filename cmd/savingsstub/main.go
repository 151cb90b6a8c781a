package main

import (
	"os"

	"autosave/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		addr      string
		failFirst int
	)
	cmd := &cobra.Command{
		Use:   "savingsstub",
		Short: "Serve a local savings API with sample packages and cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.GetLogger()
			stub := NewStub(SeedPackages(), SeedCards(), failFirst)
			logger.Info("savings stub listening", zap.String("addr", addr), zap.Int("failFirst", failFirst))
			return stub.Router(logger).Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:9000", "listen address")
	cmd.Flags().IntVar(&failFirst, "fail-first", 0, "reject this many create-schedule calls with a network error")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
