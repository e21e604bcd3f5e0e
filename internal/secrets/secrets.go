package secrets

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	vaultapi "github.com/hashicorp/vault/api"

	"github.com/dealflow-labs/sponsorship-board/internal/config"
)

const (
	keyData = "data"
	keyDSN  = "dsn"
)

// Reader is the part of the vault logical client used here.
type Reader interface {
	Read(path string) (*vaultapi.Secret, error)
}

var (
	ErrUnableToCastData = errors.New("failed to cast data")
	ErrSecretNotFound   = errors.New("secret not found")
)

func NewVaultClient(cfg config.Vault) (*vaultapi.Client, error) {
	vc := vaultapi.DefaultConfig()
	vc.Address = cfg.Address

	cli, err := vaultapi.NewClient(vc)
	if err != nil {
		return nil, fmt.Errorf("vault client: %w", err)
	}
	cli.SetToken(cfg.Token)

	return cli, nil
}

// Repo reads KV v2 secrets and keeps them in memory for the process lifetime.
type Repo struct {
	cli      Reader
	basePath string

	cache map[string]string
	mux   sync.Mutex
}

func NewRepo(cli Reader, basePath string) *Repo {
	return &Repo{
		cli:      cli,
		basePath: basePath,
		cache:    make(map[string]string),
	}
}

func (r *Repo) getPath(path string) string {
	return strings.TrimPrefix(fmt.Sprintf("%s%s", r.basePath, path), "/")
}

// Get returns one field of the secret stored at path.
func (r *Repo) Get(path, field string) (string, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	key := path + "#" + field
	if val, ok := r.cache[key]; ok {
		return val, nil
	}

	sec, err := r.cli.Read(r.getPath(path))
	if err != nil {
		return "", err
	}

	if sec == nil {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, path)
	}

	data, ok := sec.Data[keyData].(map[string]interface{})
	if !ok {
		return "", ErrUnableToCastData
	}

	val, ok := data[field].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnableToCastData, field)
	}

	r.cache[key] = val

	return val, nil
}

// ResolveDSN keeps an explicit DSN and otherwise reads it from Vault when Vault is configured.
func ResolveDSN(db config.DB, vault config.Vault, newReader func(config.Vault) (Reader, error)) (string, error) {
	if db.DSN != "" || !vault.Enabled() {
		return db.DSN, nil
	}

	cli, err := newReader(vault)
	if err != nil {
		return "", err
	}

	dsn, err := NewRepo(cli, vault.BasePath).Get(vault.DBPath, keyDSN)
	if err != nil {
		return "", fmt.Errorf("read dsn from vault: %w", err)
	}

	return dsn, nil
}

// VaultReader builds the logical client used by ResolveDSN.
func VaultReader(cfg config.Vault) (Reader, error) {
	cli, err := NewVaultClient(cfg)
	if err != nil {
		return nil, err
	}

	return cli.Logical(), nil
}
