package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/benvalle33/blockmerkle/merkle"
	"github.com/benvalle33/blockmerkle/rootlog"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Maintain the append-only log of published block roots",
}

// persistedLog is the on-disk shape of a rootlog.Log: since rootlog.Log
// itself only lives in memory, the CLI keeps its own record of every leaf
// appended so far and rebuilds a fresh Log by replaying them on each
// invocation.
type persistedLog struct {
	Roots []string `json:"roots"`
}

func logPath() string {
	return filepath.Join(storeDir, "rootlog.json")
}

func loadPersistedLog() (persistedLog, error) {
	raw, err := os.ReadFile(logPath())
	if os.IsNotExist(err) {
		return persistedLog{}, nil
	}
	if err != nil {
		return persistedLog{}, fmt.Errorf("read log: %w", err)
	}
	var pl persistedLog
	if err := json.Unmarshal(raw, &pl); err != nil {
		return persistedLog{}, fmt.Errorf("parse log: %w", err)
	}
	return pl, nil
}

func (pl persistedLog) save() error {
	raw, err := json.MarshalIndent(pl, "", "  ")
	if err != nil {
		return fmt.Errorf("encode log: %w", err)
	}
	if err := os.MkdirAll(storeDir, 0o755); err != nil {
		return fmt.Errorf("mkdir store: %w", err)
	}
	return os.WriteFile(logPath(), raw, 0o644)
}

func (pl persistedLog) rebuild() (*rootlog.Log, error) {
	l := rootlog.New(sha256.New)
	for i, hexRoot := range pl.Roots {
		d, err := merkle.ParseDigest(hexRoot)
		if err != nil {
			return nil, fmt.Errorf("leaf %d: %w", i, err)
		}
		if _, err := l.Append(d); err != nil {
			return nil, fmt.Errorf("replay leaf %d: %w", i, err)
		}
	}
	return l, nil
}

var logAppendCmd = &cobra.Command{
	Use:   "append <root-hex>",
	Short: "Append a block root to the log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := merkle.ParseDigest(args[0])
		if err != nil {
			return fmt.Errorf("parse root: %w", err)
		}

		pl, err := loadPersistedLog()
		if err != nil {
			return err
		}
		l, err := pl.rebuild()
		if err != nil {
			return err
		}
		leafIndex, err := l.Append(root)
		if err != nil {
			return fmt.Errorf("append: %w", err)
		}
		pl.Roots = append(pl.Roots, root.String())
		if err := pl.save(); err != nil {
			return err
		}

		acc, err := l.Root()
		if err != nil {
			return err
		}
		logger.Infow("root appended", "leafIndex", leafIndex, "accumulator", acc.String())
		fmt.Println(leafIndex)
		return nil
	},
}

var logProveCmd = &cobra.Command{
	Use:   "prove <leaf-index>",
	Short: "Print an inclusion proof for a leaf as hex-encoded siblings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var leafIndex uint64
		if _, err := fmt.Sscanf(args[0], "%d", &leafIndex); err != nil {
			return fmt.Errorf("parse leaf index: %w", err)
		}

		pl, err := loadPersistedLog()
		if err != nil {
			return err
		}
		l, err := pl.rebuild()
		if err != nil {
			return err
		}
		proof, err := l.InclusionProof(leafIndex)
		if err != nil {
			return fmt.Errorf("inclusion proof: %w", err)
		}
		for _, sib := range proof {
			fmt.Println(hex.EncodeToString(sib))
		}
		return nil
	},
}

var logVerifyCmd = &cobra.Command{
	Use:   "verify <leaf-index> <leaf-root-hex>",
	Short: "Recompute a leaf's inclusion proof and verify it against the log's accumulator root",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var leafIndex uint64
		if _, err := fmt.Sscanf(args[0], "%d", &leafIndex); err != nil {
			return fmt.Errorf("parse leaf index: %w", err)
		}
		leafRoot, err := merkle.ParseDigest(args[1])
		if err != nil {
			return fmt.Errorf("parse leaf root: %w", err)
		}

		pl, err := loadPersistedLog()
		if err != nil {
			return err
		}
		l, err := pl.rebuild()
		if err != nil {
			return err
		}

		proof, err := l.InclusionProof(leafIndex)
		if err != nil {
			return fmt.Errorf("inclusion proof: %w", err)
		}
		accRoot, err := l.Root()
		if err != nil {
			return err
		}

		if err := rootlog.VerifyInclusion(sha256.New, l.Size(), leafRoot, leafIndex, proof, accRoot); err != nil {
			logger.Errorw("inclusion verification failed", "leafIndex", leafIndex, "leafRoot", leafRoot.String(), "err", err)
			return fmt.Errorf("verify inclusion: %w", err)
		}

		logger.Infow("inclusion verified", "leafIndex", leafIndex, "leafRoot", leafRoot.String(), "accumulator", accRoot.String())
		fmt.Println("OK")
		return nil
	},
}

func init() {
	logCmd.AddCommand(logAppendCmd)
	logCmd.AddCommand(logProveCmd)
	logCmd.AddCommand(logVerifyCmd)
}
