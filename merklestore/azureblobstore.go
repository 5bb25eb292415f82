package merklestore

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureBlobStore is an ObjectReaderWriter backed by a single Azure Blob
// Storage container, one object per blob, keyed by blob name.
type AzureBlobStore struct {
	client    *azblob.Client
	container string
}

// NewAzureBlobStore returns an AzureBlobStore that reads and writes blobs in
// container via client.
func NewAzureBlobStore(client *azblob.Client, container string) *AzureBlobStore {
	return &AzureBlobStore{client: client, container: container}
}

// NewAzureBlobStoreFromConnectionString dials Azure Blob Storage using a
// connection string, the way local development and CI against the Azurite
// emulator typically configure it.
func NewAzureBlobStoreFromConnectionString(connectionString, container string) (*AzureBlobStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("merklestore: connect azure blob store: %w", err)
	}
	return NewAzureBlobStore(client, container), nil
}

func (s *AzureBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("merklestore: download %s: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("merklestore: read %s: %w", key, err)
	}
	return data, nil
}

func (s *AzureBlobStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.UploadBuffer(ctx, s.container, key, data, nil)
	if err != nil {
		return fmt.Errorf("merklestore: upload %s: %w", key, err)
	}
	return nil
}

// EnsureContainer creates the store's backing container if it does not
// already exist, ignoring the ContainerAlreadyExists error so it is safe to
// call on every startup.
func (s *AzureBlobStore) EnsureContainer(ctx context.Context) error {
	_, err := s.client.CreateContainer(ctx, s.container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return fmt.Errorf("merklestore: ensure container %s: %w", s.container, err)
	}
	return nil
}
