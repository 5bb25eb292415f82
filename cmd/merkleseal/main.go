// Command merkleseal creates, verifies, and seals block-addressable data
// using the merkle, merklestore, and rootlog packages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	storeDir string
	logger   *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "merkleseal",
	Short: "Build, verify, and seal block-addressable Merkle trees",
	Long: `merkleseal builds and verifies the node-aligned Merkle tree structure
defined by the merkle package, seals block manifests into COSE_Sign1
envelopes, and maintains an append-only log of published block roots.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zl, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = zl.Sugar()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeDir, "store", ".merkleseal", "directory backing the local object store")
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(logCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
