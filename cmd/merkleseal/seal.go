package main

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/veraison/go-cose"

	"github.com/benvalle33/blockmerkle/merklestore"
	"github.com/benvalle33/blockmerkle/nodecache"
)

// verifiedCacheExpectedNodes sizes the persisted VerifiedSet: it only ever
// holds one folded (root, range) element per manifest opened, so this is a
// generous default rather than a tight fit.
const verifiedCacheExpectedNodes = 4096

func verifiedCachePath() string {
	return filepath.Join(storeDir, "verifiedcache.bin")
}

func loadVerifiedCache() (*nodecache.VerifiedSet, error) {
	raw, err := os.ReadFile(verifiedCachePath())
	if os.IsNotExist(err) {
		return nodecache.NewVerifiedSet(verifiedCacheExpectedNodes)
	}
	if err != nil {
		return nil, fmt.Errorf("read verified cache: %w", err)
	}
	return nodecache.LoadVerifiedSet(raw), nil
}

func saveVerifiedCache(cache *nodecache.VerifiedSet) error {
	if err := os.MkdirAll(storeDir, 0o755); err != nil {
		return fmt.Errorf("mkdir store: %w", err)
	}
	return os.WriteFile(verifiedCachePath(), cache.Bytes(), 0o644)
}

var sealCmd = &cobra.Command{
	Use:   "seal",
	Short: "Seal or open block manifests as COSE_Sign1 envelopes",
}

var (
	sealKeyPath string
	sealKeyID   string
)

var sealCreateCmd = &cobra.Command{
	Use:   "create <input-file> <manifest-key>",
	Short: "Build a block's tree, store it, and seal its manifest",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		key, err := loadPrivateKey(sealKeyPath)
		if err != nil {
			return err
		}
		signer, err := cose.NewSigner(cose.AlgorithmES256, key)
		if err != nil {
			return fmt.Errorf("build signer: %w", err)
		}

		store := merklestore.NewFileStore(storeDir)
		manifestKey := args[1]
		m, err := merklestore.SealBlock(
			cmd.Context(), store, signer, sealKeyID, sha256.New,
			manifestKey, manifestKey+".data", manifestKey+".tree",
			data, time.Now().UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("seal block: %w", err)
		}

		logger.Infow("block sealed", "manifest", manifestKey, "root", m.Root.String(), "id", m.ID)
		fmt.Println(m.Root.String())
		return nil
	},
}

var sealOpenCmd = &cobra.Command{
	Use:   "open <manifest-key>",
	Short: "Verify a sealed manifest's signature and its data against its root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pub, err := loadPublicKey(sealKeyPath)
		if err != nil {
			return err
		}
		verifier, err := cose.NewVerifier(cose.AlgorithmES256, pub)
		if err != nil {
			return fmt.Errorf("build verifier: %w", err)
		}

		cache, err := loadVerifiedCache()
		if err != nil {
			return err
		}

		store := merklestore.NewFileStore(storeDir)
		m, err := merklestore.OpenAndVerify(cmd.Context(), store, verifier, sha256.New, args[0], 0, merklestore.FullRange, cache)
		if err != nil {
			return fmt.Errorf("open and verify: %w", err)
		}
		if err := saveVerifiedCache(cache); err != nil {
			return err
		}

		logger.Infow("manifest verified", "manifest", args[0], "root", m.Root.String())
		fmt.Println(m.Root.String())
		return nil
	},
}

func init() {
	sealCmd.PersistentFlags().StringVar(&sealKeyPath, "key", "", "PEM encoded EC key (private for create, public for open)")
	sealCmd.PersistentFlags().StringVar(&sealKeyID, "key-id", "", "key identifier recorded in the sealed manifest's headers")
	_ = sealCmd.MarkPersistentFlagRequired("key")
	sealCmd.AddCommand(sealCreateCmd)
	sealCmd.AddCommand(sealOpenCmd)
}

func loadPrivateKey(path string) (*ecdsa.PrivateKey, error) {
	block, err := readPEMBlock(path)
	if err != nil {
		return nil, err
	}
	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse EC private key: %w", err)
	}
	return key, nil
}

func loadPublicKey(path string) (*ecdsa.PublicKey, error) {
	block, err := readPEMBlock(path)
	if err != nil {
		return nil, err
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse EC public key: %w", err)
	}
	ecPub, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key at %s is not an EC public key", path)
	}
	return ecPub, nil
}

func readPEMBlock(path string) (*pem.Block, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %s", path)
	}
	return block, nil
}
